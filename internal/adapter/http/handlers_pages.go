package adapthttp

import (
	"log"
	"net/http"
	"time"

	"weighttrack/internal/app"
	"weighttrack/internal/domain"
)

// pageData is the view model shared by all templates; fields unused by a
// given template stay zero.
type pageData struct {
	User       *domain.User
	Flash      string
	Today      string
	Entries    []domain.Entry
	Progress   *app.Progress
	Goal       *domain.Goal
	SSOEnabled bool
}

func (s *Server) render(w http.ResponseWriter, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("render %s: %v", name, err)
	}
}

// handleDashboard renders the dashboard for an authenticated user, or the
// landing page otherwise.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user := s.sessionUser(r)
	if user == nil {
		s.render(w, "landing.html", pageData{SSOEnabled: s.oidc.Enabled})
		return
	}

	ctx := r.Context()
	entries, err := s.entries.List(ctx, user.ID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	progress, err := s.entries.GetProgress(ctx, user.ID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	goal, err := s.goals.Target(ctx, user.ID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.render(w, "dashboard.html", pageData{
		User:     user,
		Flash:    takeFlash(w, r),
		Today:    time.Now().Format("2006-01-02"),
		Entries:  entries,
		Progress: progress,
		Goal:     goal,
	})
}

func (s *Server) handleGraphPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "graph.html", pageData{
		User:  userFromContext(r),
		Flash: takeFlash(w, r),
	})
}
