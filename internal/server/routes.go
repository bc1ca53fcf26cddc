package server

import (
	"net/http"
	"sync"

	"github.com/gorilla/mux"
)

type RouteDoc struct {
	Method      string `json:"method"`
	Pattern     string `json:"pattern"`
	Summary     string `json:"summary,omitempty"`
	ExampleBody string `json:"example_body,omitempty"`
}

type RouteRegistry struct {
	mu     sync.RWMutex
	routes []RouteDoc
}

func (rr *RouteRegistry) Add(doc RouteDoc) {
	rr.mu.Lock()
	rr.routes = append(rr.routes, doc)
	rr.mu.Unlock()
}

func (rr *RouteRegistry) List() []RouteDoc {
	rr.mu.RLock()
	defer rr.mu.RUnlock()
	out := make([]RouteDoc, len(rr.routes))
	copy(out, rr.routes)
	return out
}

// Handle registers h on r for one method and records it in rr.
func Handle(r *mux.Router, rr *RouteRegistry, method, pattern, summary, exampleBody string, h http.HandlerFunc) {
	if rr != nil {
		rr.Add(RouteDoc{Method: method, Pattern: pattern, Summary: summary, ExampleBody: exampleBody})
	}
	r.HandleFunc(pattern, h).Methods(method)
}
