package handler

import (
	"encoding/json"
	"net/http"

	apperr "github.com/pastime-app/backend/internal/errors"
	"github.com/pastime-app/backend/internal/logger"
)

// respondJSON writes v as a JSON body with the given status.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

// respondError maps err to an HTTP status and writes the JSON error body.
// Server-side failures keep their detail in the log only.
func respondError(w http.ResponseWriter, err error) {
	status, msg := apperr.Map(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "err", err)
	}
	respondJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON parses the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
