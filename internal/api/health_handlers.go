package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/vytor/mathsprout/internal/logger"
)

// handleHealth is the liveness check; it always returns 200 OK.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleReady is the readiness check. It returns 503 while the database
// cannot be reached.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.checkDatabase(ctx); err != nil {
		logger.FromContext(ctx).Warn("readiness check failed - database: %v", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("Database unavailable"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Ready"))
}

func (s *Server) checkDatabase(ctx context.Context) error {
	if s.DB == nil {
		return errNoDatabase
	}
	return s.DB.PingContext(ctx)
}

var errNoDatabase = stderrors.New("database not configured")
