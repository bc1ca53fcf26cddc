package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/mrklmrrr/TODOIST/internal/telemetry"
)

// StatsHandler exposes the activity log.
type StatsHandler struct {
	repo telemetry.Repository
}

func NewStatsHandler(repo telemetry.Repository) *StatsHandler {
	return &StatsHandler{repo: repo}
}

func (h *StatsHandler) Register(r *mux.Router, rr *RouteRegistry) {
	Handle(r, rr, http.MethodGet, "/api/stats", "usage stats, optionally ?since=RFC3339", "", h.Stats)
	Handle(r, rr, http.MethodGet, "/api/events", "activity log, optionally ?since=RFC3339&type=task_added,task_completed", "", h.Events)
	Handle(r, rr, http.MethodDelete, "/api/events", "clear the activity log", "", h.Clear)
}

func parseSince(r *http.Request) (time.Time, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("since"))
	if raw == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func parseEventTypes(r *http.Request) ([]telemetry.EventType, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("type"))
	if raw == "" {
		return nil, true
	}
	var out []telemetry.EventType
	for _, part := range strings.Split(raw, ",") {
		et, ok := telemetry.ParseEventType(strings.TrimSpace(part))
		if !ok {
			return nil, false
		}
		out = append(out, et)
	}
	return out, true
}

// GET /api/stats
func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	since, ok := parseSince(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "since must be RFC3339")
		return
	}
	events, err := h.repo.GetEvents(since, nil)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, telemetry.CalculateStats(events, since))
}

// GET /api/events
func (h *StatsHandler) Events(w http.ResponseWriter, r *http.Request) {
	since, ok := parseSince(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "since must be RFC3339")
		return
	}
	types, ok := parseEventTypes(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "unknown event type")
		return
	}
	events, err := h.repo.GetEvents(since, types)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events, "count": len(events)})
}

// DELETE /api/events
func (h *StatsHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Clear(); err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
