package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/mathsprout/internal/errors"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(securityHeadersMiddleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errors.NewNotFoundError("route", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, &errors.AppError{Code: errors.ErrCodeBadRequest, Message: "method not allowed", Status: http.StatusMethodNotAllowed})
	})

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		// endpoints acting on the calling student
		r.Route("/student", func(r chi.Router) {
			r.Use(studentMiddleware)
			r.Get("/stats", s.handleStudentStats)
			r.Post("/level-unlock", s.handleLevelUnlock)
			r.Get("/levels/{gameType}", s.handleLevelProgress)
			r.Post("/game-stats", s.handleSubmitSession)
			r.Get("/sessions", s.handleListSessions)
			r.Get("/sessions/{id}/questions", s.handleQuestionAttempts)
		})

		r.Get("/students", s.handleListStudents)
		r.Post("/students", s.handleCreateStudent)
		r.Get("/students/{id}", s.handleGetStudent)
		r.Get("/students/{id}/report", s.handleStudentReport)

		r.Get("/class/stats", s.handleClassStats)

		r.Get("/criteria/{gameType}", s.handleListCriteria)
		r.Put("/criteria/{gameType}/{level}", s.handleSetCriterion)
	})
	return r
}
