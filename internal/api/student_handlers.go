package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/mathsprout/internal/errors"
	"github.com/vytor/mathsprout/internal/logger"
	"github.com/vytor/mathsprout/internal/models"
	"github.com/vytor/mathsprout/internal/validation"
)

const (
	defaultSessionPageSize = 50
	maxSessionPageSize     = 500
)

type sessionListResponse struct {
	Sessions []models.GameSession `json:"sessions"`
	Total    int                  `json:"total"`
}

func (s *Server) handleStudentStats(w http.ResponseWriter, r *http.Request) {
	studentID := studentIDFromContext(r.Context())

	stats, err := s.StatsService.GetStudentStats(r.Context(), studentID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}

func (s *Server) handleLevelUnlock(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	studentID := studentIDFromContext(r.Context())

	var req models.LevelUnlockRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if fe := validation.First(req); fe != nil {
		handleError(w, r, errors.NewValidationError(fe.Field, fe.Message))
		return
	}

	unlocked, err := s.ProgressionService.CheckLevelUnlock(r.Context(), studentID, req.GameType, *req.Level)
	if err != nil {
		handleError(w, r, err)
		return
	}
	log.Debug("level unlock: game_type=%s, level=%d, unlocked=%t", req.GameType, *req.Level, unlocked)
	writeJSON(w, r, http.StatusOK, models.LevelUnlockResponse{Unlocked: unlocked})
}

func (s *Server) handleLevelProgress(w http.ResponseWriter, r *http.Request) {
	studentID := studentIDFromContext(r.Context())
	gameType := chi.URLParam(r, "gameType")

	views, err := s.ProgressionService.GetLevelProgress(r.Context(), studentID, gameType)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, views)
}

func (s *Server) handleSubmitSession(w http.ResponseWriter, r *http.Request) {
	studentID := studentIDFromContext(r.Context())

	var req models.SubmitSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	session, err := s.SessionService.SubmitSession(r.Context(), studentID, req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, session)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	studentID := studentIDFromContext(r.Context())

	level, err := queryInt(r, "level", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit", defaultSessionPageSize)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if limit == 0 || limit > maxSessionPageSize {
		limit = maxSessionPageSize
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}
	since, err := queryTime(r, "since")
	if err != nil {
		handleError(w, r, err)
		return
	}

	sessions, total, err := s.SessionService.ListSessions(r.Context(), models.SessionFilter{
		StudentID: studentID,
		GameType:  r.URL.Query().Get("gameType"),
		Level:     level,
		Since:     since,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sessionListResponse{Sessions: sessions, Total: total})
}

func (s *Server) handleQuestionAttempts(w http.ResponseWriter, r *http.Request) {
	studentID := studentIDFromContext(r.Context())

	sessionID, err := urlInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	attempts, err := s.SessionService.GetQuestionAttempts(r.Context(), studentID, sessionID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, attempts)
}
