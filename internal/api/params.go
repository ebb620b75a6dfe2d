package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vytor/mathsprout/internal/errors"
)

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, errors.NewValidationError(name, "must be a non-negative integer")
	}
	return v, nil
}

// queryTime accepts RFC 3339 timestamps and plain dates (YYYY-MM-DD, UTC).
func queryTime(r *http.Request, name string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, errors.NewValidationError(name, "must be an RFC 3339 timestamp or a YYYY-MM-DD date")
}

func urlInt64(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, errors.NewBadRequestError("invalid " + name + ": " + raw)
	}
	return v, nil
}

// urlUUID parses a UUID path parameter into the canonical lower-case form
// that student IDs are stored in.
func urlUUID(r *http.Request, name string) (string, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", errors.NewBadRequestError("invalid " + name + ": must be a UUID")
	}
	return id.String(), nil
}
