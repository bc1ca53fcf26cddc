package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/mrklmrrr/TODOIST/internal/clock"
	"github.com/mrklmrrr/TODOIST/internal/task"
	"github.com/mrklmrrr/TODOIST/internal/tasklist"
	"github.com/mrklmrrr/TODOIST/internal/ui/page"
)

// TaskHandler serves the page and the JSON API over one Store.
type TaskHandler struct {
	store    *tasklist.Store
	settings page.Settings
	clock    clock.Clock
	log      logrus.FieldLogger
}

func NewTaskHandler(store *tasklist.Store, settings page.Settings) *TaskHandler {
	if settings.GenerateCount <= 0 {
		settings.GenerateCount = 1000
	}
	return &TaskHandler{
		store:    store,
		settings: settings,
		clock:    clock.RealClock{},
		log:      logrus.StandardLogger(),
	}
}

func (h *TaskHandler) SetClock(c clock.Clock) {
	if c != nil {
		h.clock = c
	}
}

func (h *TaskHandler) SetLogger(l logrus.FieldLogger) {
	if l != nil {
		h.log = l
	}
}

func (h *TaskHandler) Register(r *mux.Router, rr *RouteRegistry) {
	Handle(r, rr, http.MethodGet, "/", "task list page", "", h.Index)
	Handle(r, rr, http.MethodPost, "/tasks", "add a task from the input panel", "title=Buy+milk&description=&severity=low", h.CreateForm)
	Handle(r, rr, http.MethodPost, "/tasks/generate", "bulk generate tasks", "count=1000", h.GenerateForm)
	Handle(r, rr, http.MethodPost, "/tasks/{id}/toggle", "flip a task's done flag", "", h.ToggleForm)
	Handle(r, rr, http.MethodGet, "/filters", "apply filters from the query string", "", h.FiltersForm)
	Handle(r, rr, http.MethodPost, "/filters", "apply filters from the filter panel", "q=bug&severity=all&show_done=1", h.FiltersForm)

	Handle(r, rr, http.MethodGet, "/api/tasks", "visible tasks and counts", "", h.ListAPI)
	Handle(r, rr, http.MethodGet, "/api/state", "full state: tasks, drafts, filters", "", h.StateAPI)
	Handle(r, rr, http.MethodPost, "/api/tasks", "add a task", `{"title":"Buy milk","description":"","severity":"low"}`, h.CreateAPI)
	Handle(r, rr, http.MethodPost, "/api/tasks/generate", "bulk generate tasks", `{"count":1000}`, h.GenerateAPI)
	Handle(r, rr, http.MethodPost, "/api/tasks/{id}/toggle", "flip a task's done flag", "", h.ToggleAPI)
	Handle(r, rr, http.MethodPut, "/api/filters", "update any of the filters", `{"search":"bug","severity":"high","show_done":false}`, h.FiltersAPI)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

func backToList(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// draftActions turns submitted input panel values into draft updates. An unknown severity
// keeps the current draft.
func draftActions(title, description, severity string) []tasklist.Action {
	out := []tasklist.Action{
		tasklist.SetTitleDraft{Title: title},
		tasklist.SetDescriptionDraft{Description: description},
	}
	if sev, err := task.ParseSeverity(severity); err == nil {
		out = append(out, tasklist.SetSeverityDraft{Severity: sev})
	}
	return out
}

// GET /
func (h *TaskHandler) Index(w http.ResponseWriter, r *http.Request) {
	data := page.NewData(h.store.View(), h.settings, h.clock.Now())
	templ.Handler(page.TaskListPage(data)).ServeHTTP(w, r)
}

// POST /tasks
func (h *TaskHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.log.WithError(err).WithField("path", r.URL.Path).Warn("bad_form")
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	actions := draftActions(r.PostFormValue("title"), r.PostFormValue("description"), r.PostFormValue("severity"))
	h.store.DispatchAll(r.Context(), append(actions, tasklist.AddTask{})...)
	backToList(w, r)
}

func (h *TaskHandler) generateCount(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return h.settings.GenerateCount, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > tasklist.MaxGenerateCount {
		return 0, false
	}
	return n, true
}

// POST /tasks/generate
func (h *TaskHandler) GenerateForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.log.WithError(err).WithField("path", r.URL.Path).Warn("bad_form")
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	n, ok := h.generateCount(r.PostFormValue("count"))
	if !ok {
		http.Error(w, "count must be between 1 and "+strconv.Itoa(tasklist.MaxGenerateCount), http.StatusBadRequest)
		return
	}
	h.store.Dispatch(r.Context(), tasklist.GenerateTasks{Count: n})
	backToList(w, r)
}

// POST /tasks/{id}/toggle
func (h *TaskHandler) ToggleForm(w http.ResponseWriter, r *http.Request) {
	h.store.Dispatch(r.Context(), tasklist.ToggleDone{ID: mux.Vars(r)["id"]})
	backToList(w, r)
}

// GET|POST /filters
func (h *TaskHandler) FiltersForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.log.WithError(err).WithField("path", r.URL.Path).Warn("bad_form")
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	sev, err := task.ParseSeverityFilter(r.Form.Get("severity"))
	if err != nil {
		sev = h.store.Snapshot().Filters.Severity
	}
	h.store.Dispatch(r.Context(), tasklist.SetFilters{Filters: tasklist.Filters{
		Search:   r.Form.Get("q"),
		Severity: sev,
		ShowDone: parseBool(r.Form.Get("show_done")),
	}})
	backToList(w, r)
}

type listResponse struct {
	Tasks   []task.Task      `json:"tasks"`
	Visible int              `json:"visible"`
	Total   int              `json:"total"`
	Done    int              `json:"done"`
	Filters tasklist.Filters `json:"filters"`
}

// GET /api/tasks
func (h *TaskHandler) ListAPI(w http.ResponseWriter, r *http.Request) {
	v := h.store.View()
	writeJSON(w, http.StatusOK, listResponse{
		Tasks:   v.Visible,
		Visible: len(v.Visible),
		Total:   v.Total,
		Done:    v.Done,
		Filters: v.State.Filters,
	})
}

// GET /api/state
func (h *TaskHandler) StateAPI(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Snapshot())
}

type createRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// POST /api/tasks
func (h *TaskHandler) CreateAPI(w http.ResponseWriter, r *http.Request) {
	var in createRequest
	if err := decodeJSON(r, &in); err != nil {
		h.log.WithError(err).WithField("path", r.URL.Path).Warn("bad_json")
		writeErr(w, http.StatusBadRequest, "bad json")
		return
	}
	if in.Severity != "" {
		if _, err := task.ParseSeverity(in.Severity); err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	actions := draftActions(in.Title, in.Description, in.Severity)
	st := h.store.DispatchAll(r.Context(), append(actions, tasklist.AddTask{})...)

	// A blank title is silently ignored.
	if !task.ValidTitle(in.Title) || len(st.Tasks) == 0 {
		writeJSON(w, http.StatusOK, map[string]any{"added": false})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"added": true,
		"task":  st.Tasks[len(st.Tasks)-1],
	})
}

type generateRequest struct {
	Count int `json:"count"`
}

// POST /api/tasks/generate
func (h *TaskHandler) GenerateAPI(w http.ResponseWriter, r *http.Request) {
	var in generateRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &in); err != nil {
			h.log.WithError(err).WithField("path", r.URL.Path).Warn("bad_json")
			writeErr(w, http.StatusBadRequest, "bad json")
			return
		}
	}
	n := in.Count
	if n == 0 {
		n = h.settings.GenerateCount
	}
	if n < 1 || n > tasklist.MaxGenerateCount {
		writeErr(w, http.StatusBadRequest, "count must be between 1 and "+strconv.Itoa(tasklist.MaxGenerateCount))
		return
	}
	st := h.store.Dispatch(r.Context(), tasklist.GenerateTasks{Count: n})
	writeJSON(w, http.StatusCreated, map[string]any{
		"generated": n,
		"total":     len(st.Tasks),
	})
}

// POST /api/tasks/{id}/toggle
func (h *TaskHandler) ToggleAPI(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	st := h.store.Dispatch(r.Context(), tasklist.ToggleDone{ID: id})
	t, ok := st.Find(id)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"toggled": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"toggled": true, "task": t})
}

type filtersRequest struct {
	Search   *string `json:"search"`
	Severity *string `json:"severity"`
	ShowDone *bool   `json:"show_done"`
}

// PUT /api/filters
func (h *TaskHandler) FiltersAPI(w http.ResponseWriter, r *http.Request) {
	var in filtersRequest
	if err := decodeJSON(r, &in); err != nil {
		h.log.WithError(err).WithField("path", r.URL.Path).Warn("bad_json")
		writeErr(w, http.StatusBadRequest, "bad json")
		return
	}

	actions := make([]tasklist.Action, 0, 3)
	if in.Search != nil {
		actions = append(actions, tasklist.SetSearch{Text: *in.Search})
	}
	if in.Severity != nil {
		f, err := task.ParseSeverityFilter(*in.Severity)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		actions = append(actions, tasklist.SetSeverityFilter{Filter: f})
	}
	if in.ShowDone != nil {
		actions = append(actions, tasklist.SetShowDone{Show: *in.ShowDone})
	}

	st := h.store.DispatchAll(r.Context(), actions...)
	writeJSON(w, http.StatusOK, st.Filters)
}
