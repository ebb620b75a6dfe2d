package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/mathsprout/internal/errors"
	"github.com/vytor/mathsprout/internal/logger"
)

// StudentIDHeader carries the authenticated student's ID. It is set by the
// auth proxy in front of this service and trusted as is.
const StudentIDHeader = "X-Student-ID"

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

type contextKey string

const studentIDContextKey contextKey = "student_id"

func studentIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(studentIDContextKey).(string); ok {
		return v
	}
	return ""
}

// studentMiddleware resolves the caller's identity from StudentIDHeader.
func studentMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.Header.Get(StudentIDHeader))
		if raw == "" {
			handleError(w, r, errors.NewUnauthorizedError("missing "+StudentIDHeader+" header"))
			return
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("invalid "+StudentIDHeader+" header: must be a UUID"))
			return
		}

		studentID := id.String()
		log := logger.FromContext(r.Context()).WithField("student_id", studentID)
		ctx := context.WithValue(r.Context(), studentIDContextKey, studentID)
		ctx = logger.NewContext(ctx, log)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// loggingMiddleware logs HTTP requests with timing, status codes, and request IDs.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		log := logger.Default().WithFields(map[string]any{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
		})
		if r.RemoteAddr != "" {
			log = log.WithField("remote_addr", r.RemoteAddr)
		}

		r = r.WithContext(logger.NewContext(r.Context(), log))
		w.Header().Set("X-Request-ID", requestID)

		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		log.Debug("request started")
		next.ServeHTTP(wrapped, r)

		log = log.WithFields(map[string]any{
			"status":      wrapped.status,
			"size":        wrapped.size,
			"duration_ms": time.Since(start).Milliseconds(),
		})

		if wrapped.status >= 500 {
			log.Error("request completed with server error")
		} else if wrapped.status >= 400 {
			log.Warn("request completed with client error")
		} else {
			log.Info("request completed")
		}
	})
}

// recoveryMiddleware recovers from panics and logs them. It runs inside
// loggingMiddleware so the panic is logged with the request's fields.
func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.FromContext(r.Context()).Error("panic recovered: %v", rec)
				writeJSON(w, r, http.StatusInternalServerError, errorResponse{
					Error: "internal server error",
					Code:  errors.ErrCodeInternal,
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// securityHeadersMiddleware adds security headers to responses.
func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
