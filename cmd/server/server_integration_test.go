package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/mrklmrrr/TODOIST/internal/clock"
	"github.com/mrklmrrr/TODOIST/internal/config"
	"github.com/mrklmrrr/TODOIST/internal/serverapp"
	"github.com/mrklmrrr/TODOIST/internal/task"
	"github.com/mrklmrrr/TODOIST/internal/ui/page"
)

func TestServer_HealthAndReadinessExposeRequestID(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		res := app.request(http.MethodGet, path, nil, "")
		if res.Code != http.StatusOK {
			t.Fatalf("%s expected 200, got %d body=%s", path, res.Code, res.Body.String())
		}
		if rid := strings.TrimSpace(res.Header().Get("X-Request-Id")); rid == "" {
			t.Fatalf("%s missing X-Request-Id header", path)
		}
	}
}

func TestServer_EmbeddedStaticAndAdmin(t *testing.T) {
	app := newTestApp(t)

	staticRes := app.request(http.MethodGet, "/static/css/app.css", nil, "")
	if staticRes.Code != http.StatusOK {
		t.Fatalf("embedded static asset expected 200, got %d", staticRes.Code)
	}
	if staticRes.Body.Len() == 0 {
		t.Fatalf("embedded static asset should not be empty")
	}

	routesRes := app.request(http.MethodGet, "/_/admin/routes.json", nil, "")
	if routesRes.Code != http.StatusOK {
		t.Fatalf("routes.json expected 200, got %d", routesRes.Code)
	}
	if !strings.Contains(routesRes.Body.String(), "/tasks/{id}/toggle") {
		t.Fatalf("routes.json missing toggle route: %s", routesRes.Body.String())
	}

	adminRes := app.request(http.MethodGet, "/_/admin", nil, "")
	if adminRes.Code != http.StatusOK || !strings.Contains(adminRes.Body.String(), "/api/filters") {
		t.Fatalf("admin page expected 200 listing routes, got %d", adminRes.Code)
	}
}

func TestServer_FormFlow(t *testing.T) {
	app := newTestApp(t)

	home := app.request(http.MethodGet, "/", nil, "")
	if home.Code != http.StatusOK {
		t.Fatalf("home expected 200, got %d", home.Code)
	}
	if !strings.Contains(home.Body.String(), page.EmptyText) {
		t.Fatalf("empty list should render the placeholder")
	}

	res := app.form("/tasks", url.Values{"title": {"  Buy milk "}, "description": {"2 litres"}, "severity": {"low"}})
	if res.Code != http.StatusSeeOther || res.Header().Get("Location") != "/" {
		t.Fatalf("add expected 303 to /, got %d %q", res.Code, res.Header().Get("Location"))
	}
	app.form("/tasks", url.Values{"title": {"   "}, "description": {"ignored"}, "severity": {"high"}})

	state := app.state(t)
	if len(state.Tasks) != 1 {
		t.Fatalf("expected 1 task after blank add, got %d", len(state.Tasks))
	}
	if state.Tasks[0].Title != "Buy milk" || state.Tasks[0].Severity != task.SeverityLow {
		t.Fatalf("unexpected task %+v", state.Tasks[0])
	}
	if state.Drafts.Severity != task.SeverityHigh {
		t.Fatalf("severity draft should follow the last submission, got %q", state.Drafts.Severity)
	}

	app.form("/tasks/generate", url.Values{"count": {"5"}})
	state = app.state(t)
	if len(state.Tasks) != 6 {
		t.Fatalf("expected 6 tasks after generate, got %d", len(state.Tasks))
	}
	if state.Tasks[5].Title != "Task 5" || state.Tasks[5].Severity != task.SeverityHigh {
		t.Fatalf("unexpected generated task %+v", state.Tasks[5])
	}

	if bad := app.form("/tasks/generate", url.Values{"count": {"many"}}); bad.Code != http.StatusBadRequest {
		t.Fatalf("bad count expected 400, got %d", bad.Code)
	}

	app.form("/tasks/"+state.Tasks[0].ID+"/toggle", nil)
	app.form("/filters", url.Values{"q": {"milk"}, "severity": {"all"}})

	home = app.request(http.MethodGet, "/", nil, "")
	if !strings.Contains(home.Body.String(), page.EmptyText) {
		t.Fatalf("done task hidden by show_done=off should leave the placeholder")
	}

	app.form("/filters", url.Values{"q": {"milk"}, "severity": {"all"}, "show_done": {"1"}})
	home = app.request(http.MethodGet, "/", nil, "")
	body := home.Body.String()
	if !strings.Contains(body, "<strong>Buy milk</strong>") || strings.Contains(body, "Task 1</strong>") {
		t.Fatalf("expected only the milk task, body=%s", body)
	}
	if !strings.Contains(body, "Showing 1 of 6 tasks, 1 done") {
		t.Fatalf("counts line missing, body=%s", body)
	}
}

func TestServer_APIFlow(t *testing.T) {
	app := newTestApp(t)

	res := app.json(http.MethodPost, "/api/tasks", map[string]any{"title": "Buy milk", "severity": "low"})
	if res.Code != http.StatusCreated {
		t.Fatalf("create expected 201, got %d body=%s", res.Code, res.Body.String())
	}
	res = app.json(http.MethodPost, "/api/tasks", map[string]any{"title": "Fix bug", "severity": "high"})
	created := decodeBodyMap(t, res)
	bug, _ := created["task"].(map[string]any)
	bugID, _ := bug["id"].(string)
	if bugID == "" {
		t.Fatalf("created task missing id: %s", res.Body.String())
	}

	blank := app.json(http.MethodPost, "/api/tasks", map[string]any{"title": " "})
	if blank.Code != http.StatusOK || decodeBodyMap(t, blank)["added"] != false {
		t.Fatalf("blank title should be a silent no-op, got %d body=%s", blank.Code, blank.Body.String())
	}

	toggle := app.request(http.MethodPost, "/api/tasks/"+bugID+"/toggle", nil, "")
	if decodeBodyMap(t, toggle)["toggled"] != true {
		t.Fatalf("toggle expected toggled=true, body=%s", toggle.Body.String())
	}

	for _, tc := range []struct {
		filters map[string]any
		want    []string
	}{
		{map[string]any{"search": "bug"}, []string{"Fix bug"}},
		{map[string]any{"show_done": false}, []string{}},
		{map[string]any{"search": "", "show_done": true, "severity": "low"}, []string{"Buy milk"}},
	} {
		res := app.json(http.MethodPut, "/api/filters", tc.filters)
		if res.Code != http.StatusOK {
			t.Fatalf("filters expected 200, got %d body=%s", res.Code, res.Body.String())
		}
		got := app.visibleTitles(t)
		if strings.Join(got, ",") != strings.Join(tc.want, ",") {
			t.Fatalf("filters %v: expected %v, got %v", tc.filters, tc.want, got)
		}
	}

	if bad := app.json(http.MethodPut, "/api/filters", map[string]any{"severity": "urgent"}); bad.Code != http.StatusBadRequest {
		t.Fatalf("bad severity expected 400, got %d", bad.Code)
	}
	if bad := app.request(http.MethodPost, "/api/tasks", strings.NewReader("{"), "application/json"); bad.Code != http.StatusBadRequest {
		t.Fatalf("bad json expected 400, got %d", bad.Code)
	}

	gen := app.request(http.MethodPost, "/api/tasks/generate", nil, "")
	if gen.Code != http.StatusCreated {
		t.Fatalf("generate expected 201, got %d", gen.Code)
	}
	if total := decodeBodyMap(t, gen)["total"]; total != float64(1002) {
		t.Fatalf("expected 1002 tasks after default generate, got %v", total)
	}
}

func TestServer_StatsTrackActivity(t *testing.T) {
	app := newTestApp(t)

	res := app.json(http.MethodPost, "/api/tasks", map[string]any{"title": "Buy milk", "severity": "low"})
	id, _ := decodeBodyMap(t, res)["task"].(map[string]any)["id"].(string)
	app.request(http.MethodPost, "/api/tasks/"+id+"/toggle", nil, "")
	app.json(http.MethodPost, "/api/tasks/generate", map[string]any{"count": 5})

	stats := decodeBodyMap(t, app.request(http.MethodGet, "/api/stats", nil, ""))
	if stats["tasks_added"] != float64(1) || stats["completions"] != float64(1) || stats["tasks_generated"] != float64(5) {
		t.Fatalf("unexpected stats: %v", stats)
	}

	events := decodeBodyMap(t, app.request(http.MethodGet, "/api/events?type=task_completed", nil, ""))
	if events["count"] != float64(1) {
		t.Fatalf("expected one completion event, got %v", events)
	}

	if bad := app.request(http.MethodGet, "/api/events?type=nope", nil, ""); bad.Code != http.StatusBadRequest {
		t.Fatalf("unknown type expected 400, got %d", bad.Code)
	}
	if bad := app.request(http.MethodGet, "/api/stats?since=yesterday", nil, ""); bad.Code != http.StatusBadRequest {
		t.Fatalf("bad since expected 400, got %d", bad.Code)
	}

	if res := app.request(http.MethodDelete, "/api/events", nil, ""); res.Code != http.StatusNoContent {
		t.Fatalf("clear expected 204, got %d", res.Code)
	}
	events = decodeBodyMap(t, app.request(http.MethodGet, "/api/events", nil, ""))
	if events["count"] != float64(0) {
		t.Fatalf("expected empty log after clear, got %v", events)
	}
}

type testApp struct {
	handler http.Handler
	logs    *test.Hook
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg := config.Default()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	h, err := serverapp.NewHandler(serverapp.Options{
		Config: cfg,
		Logger: logger,
		Clock:  clock.NewSteppingClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), time.Millisecond),
		IDs:    task.NewCounterGenerator("task"),
	})
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}

	return &testApp{handler: h, logs: hook}
}

func (a *testApp) json(method, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	return a.request(method, path, bytes.NewReader(b), "application/json")
}

func (a *testApp) form(path string, values url.Values) *httptest.ResponseRecorder {
	return a.request(http.MethodPost, path, strings.NewReader(values.Encode()), "application/x-www-form-urlencoded")
}

func (a *testApp) request(method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

type stateBody struct {
	Tasks  []task.Task `json:"tasks"`
	Drafts struct {
		Severity task.Severity `json:"severity"`
	} `json:"drafts"`
}

func (a *testApp) state(t *testing.T) stateBody {
	t.Helper()
	res := a.request(http.MethodGet, "/api/state", nil, "")
	if res.Code != http.StatusOK {
		t.Fatalf("state expected 200, got %d", res.Code)
	}
	var out stateBody
	if err := json.Unmarshal(res.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	return out
}

func (a *testApp) visibleTitles(t *testing.T) []string {
	t.Helper()
	res := a.request(http.MethodGet, "/api/tasks", nil, "")
	var out struct {
		Tasks []task.Task `json:"tasks"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode tasks: %v", err)
	}
	titles := make([]string, 0, len(out.Tasks))
	for _, tk := range out.Tasks {
		titles = append(titles, tk.Title)
	}
	return titles
}

func decodeBodyMap(t *testing.T, res *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(res.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body: %v body=%s", err, res.Body.String())
	}
	return out
}
