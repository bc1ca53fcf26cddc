package serverapp

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/mrklmrrr/TODOIST/internal/clock"
	"github.com/mrklmrrr/TODOIST/internal/config"
	"github.com/mrklmrrr/TODOIST/internal/httpmw"
	"github.com/mrklmrrr/TODOIST/internal/server"
	"github.com/mrklmrrr/TODOIST/internal/task"
	"github.com/mrklmrrr/TODOIST/internal/tasklist"
	"github.com/mrklmrrr/TODOIST/internal/telemetry"
	"github.com/mrklmrrr/TODOIST/internal/ui/page"
	staticfiles "github.com/mrklmrrr/TODOIST/static"
)

type Options struct {
	Config *config.Config
	Logger *logrus.Logger
	// Store defaults to a fresh in-memory store seeded from Config.
	Store *tasklist.Store
	Clock clock.Clock
	IDs   task.IDGenerator
	// Telemetry defaults to an in-memory activity log fed by Store.
	Telemetry telemetry.Repository
}

func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.IDs == nil {
		opts.IDs = task.UUIDGenerator{}
	}
	if opts.Store == nil {
		opts.Store = opts.Config.NewStore(tasklist.Env{IDs: opts.IDs, Clock: opts.Clock}, opts.Logger)
	}
	if opts.Telemetry == nil {
		opts.Telemetry = telemetry.NewMemoryRepository(opts.Clock, 0)
	}
	opts.Store.Observe(telemetry.NewRecorder(opts.Telemetry, opts.Logger))
	cfg := opts.Config

	r := mux.NewRouter()
	rr := &server.RouteRegistry{}

	staticHandler := http.FileServer(http.FS(staticfiles.EmbeddedFS()))
	if cfg.Server.DevStatic {
		staticHandler = http.FileServer(http.Dir(cfg.Server.StaticDir))
	}
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", staticHandler)).Methods(http.MethodGet)

	server.Handle(r, rr, http.MethodGet, "/healthz", "liveness", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "todoist",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})
	server.Handle(r, rr, http.MethodGet, "/readyz", "readiness", "", func(w http.ResponseWriter, r *http.Request) {
		v := opts.Store.View()
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "todoist",
			"tasks":   v.Total,
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})
	server.Handle(r, rr, http.MethodGet, "/api/config", "effective configuration", "", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cfg); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})

	taskHandler := server.NewTaskHandler(opts.Store, page.Settings{
		Title:         cfg.UI.Title,
		TimeFormat:    cfg.UI.TimeFormat,
		GenerateCount: cfg.UI.GenerateCount,
		HumanizeAges:  cfg.UI.HumanizeAges,
	})
	taskHandler.SetClock(opts.Clock)
	taskHandler.SetLogger(opts.Logger)
	taskHandler.Register(r, rr)

	server.NewStatsHandler(opts.Telemetry).Register(r, rr)

	server.RegisterAdminUI(r, rr, cfg.Server.Addr)

	return httpmw.Chain(
		r,
		httpmw.WithRequestID,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRecover(opts.Logger),
	), nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
