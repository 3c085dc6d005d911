package adapthttp

import (
	"errors"
	"net/http"

	"weighttrack/internal/domain"
)

// handleGraphData returns the aggregated weight series for the requested
// window and grain. Unknown parameter values are client errors.
func (s *Server) handleGraphData(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)

	period, err := domain.ParseTimePeriod(r.URL.Query().Get("time_period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	grain, err := domain.ParseGroupBy(r.URL.Query().Get("group_by"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	points, err := s.reports.Series(r.Context(), user.ID, period, grain)
	if err != nil {
		if errors.Is(err, domain.ErrBadPeriod) || errors.Is(err, domain.ErrBadGrouping) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"time_period": period,
		"group_by":    grain,
		"items":       points,
	})
}
