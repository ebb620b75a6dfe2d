package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/vytor/mathsprout/internal/errors"
	"github.com/vytor/mathsprout/internal/logger"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

// decodeJSON reads a single JSON object from the request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if err == io.EOF {
			return errors.NewBadRequestError("request body is empty")
		}
		return errors.NewBadRequestError("invalid JSON body: " + err.Error())
	}
	return nil
}
