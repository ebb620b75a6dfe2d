package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/mathsprout/internal/errors"
	"github.com/vytor/mathsprout/internal/models"
)

func (s *Server) handleListCriteria(w http.ResponseWriter, r *http.Request) {
	criteria, err := s.ProgressionService.ListCriteria(r.Context(), chi.URLParam(r, "gameType"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, criteria)
}

func (s *Server) handleSetCriterion(w http.ResponseWriter, r *http.Request) {
	level, err := strconv.Atoi(chi.URLParam(r, "level"))
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid level: "+chi.URLParam(r, "level")))
		return
	}

	var req models.SetCriterionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	criterion := models.LevelCriterion{
		GameType:      chi.URLParam(r, "gameType"),
		Level:         level,
		RequiredScore: req.RequiredScore,
	}
	if err := s.ProgressionService.SetCriterion(r.Context(), criterion); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, criterion)
}
