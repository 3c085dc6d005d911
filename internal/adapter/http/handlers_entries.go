package adapthttp

import (
	"errors"
	"net/http"
	"strconv"

	"weighttrack/internal/app"
	"weighttrack/internal/domain"

	"github.com/gorilla/mux"
)

// handleCreate records a weight for a date, updating the existing entry when
// one exists for that date. Validation failures flash a message and redirect
// back without a data change.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)

	_, err := s.entries.CreateOrUpdate(r.Context(), user.ID, r.FormValue("entryDate"), r.FormValue("weight"))
	var verr app.ValidationError
	if errors.As(err, &verr) {
		setFlash(w, verr.Error())
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}

	err = s.entries.UpdateWeight(r.Context(), user.ID, id, r.FormValue("weight"))
	var verr app.ValidationError
	switch {
	case errors.As(err, &verr):
		setFlash(w, verr.Error())
	case errors.Is(err, domain.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	case err != nil:
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}

	err = s.entries.Delete(r.Context(), user.ID, id)
	if errors.Is(err, domain.ErrForbidden) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleGoal sets or clears the user's target weight.
func (s *Server) handleGoal(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)

	err := s.goals.SetTarget(r.Context(), user.ID, r.FormValue("targetWeight"))
	var verr app.ValidationError
	switch {
	case errors.As(err, &verr):
		setFlash(w, verr.Error())
	case err != nil:
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
