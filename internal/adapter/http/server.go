// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"embed"
	"html/template"
	"net/http"

	"weighttrack/internal/app"

	"github.com/gorilla/mux"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	entries *app.EntryService
	reports *app.ReportService
	goals   *app.GoalService
	auth    *app.AuthService
	oidc    OIDCConfig
	tmpl    *template.Template
}

// New creates a Server wired to the given application services.
func New(es *app.EntryService, rs *app.ReportService, gs *app.GoalService, as *app.AuthService, oidc OIDCConfig) *Server {
	return &Server{
		entries: es,
		reports: rs,
		goals:   gs,
		auth:    as,
		oidc:    oidc,
		tmpl:    template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.loggingMiddleware)

	r.HandleFunc("/", s.handleDashboard).Methods(http.MethodGet)
	r.HandleFunc("/create", s.requireUser(s.handleCreate)).Methods(http.MethodPost)
	r.HandleFunc("/delete/{id:[0-9]+}", s.requireUser(s.handleDelete)).Methods(http.MethodPost)
	r.HandleFunc("/update/{id:[0-9]+}", s.requireUser(s.handleUpdate)).Methods(http.MethodPost)
	r.HandleFunc("/goal", s.requireUser(s.handleGoal)).Methods(http.MethodPost)
	r.HandleFunc("/graph", s.requireUser(s.handleGraphPage)).Methods(http.MethodGet)

	r.HandleFunc("/api/graph", s.requireUserAPI(s.handleGraphData)).Methods(http.MethodGet)
	r.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)

	r.HandleFunc("/login", s.handleLoginPage).Methods(http.MethodGet)
	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/register", s.handleRegisterPage).Methods(http.MethodGet)
	r.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)

	if s.oidc.Enabled {
		r.HandleFunc("/auth/sso/login", s.handleSSOLogin).Methods(http.MethodGet)
		r.HandleFunc("/auth/sso/callback", s.handleSSOCallback).Methods(http.MethodGet)
	}

	return withNoCache(r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
