package server

import (
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

//go:embed templates/admin.html
var adminTemplatesFS embed.FS

var adminTmpl = template.Must(
	template.New("admin.html").
		Funcs(template.FuncMap{
			"hasPrefix": strings.HasPrefix,
		}).
		ParseFS(adminTemplatesFS, "templates/admin.html"),
)

type adminPageData struct {
	Addr   string
	Routes []RouteDoc
}

func RegisterAdminUI(r *mux.Router, rr *RouteRegistry, addr string) {
	// JSON list (handy for tooling)
	r.HandleFunc("/_/admin/routes.json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, rr.List())
	}).Methods(http.MethodGet)

	r.HandleFunc("/_/admin", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		data := adminPageData{
			Addr:   addr,
			Routes: rr.List(),
		}

		if err := adminTmpl.Execute(w, data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}).Methods(http.MethodGet)
}
