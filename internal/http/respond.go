package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"costmanager/internal/core"
	"costmanager/internal/log"
)

// apiError is the error body every service returns: the id field
// repeats the HTTP status code, the message carries the cause verbatim.
type apiError struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error to its status class and writes the standard
// error body. Invalid requests become 400, a missing user 404, and
// anything else (store failures included) 500.
func (s *Server) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case core.IsInvalidRequest(err):
		status = http.StatusBadRequest
	case errors.Is(err, core.ErrUserNotFound):
		status = http.StatusNotFound
	}

	logger := log.FromContext(ctx)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(ctx, "Request failed", log.FieldError, err)
	} else {
		logger.WarnContext(ctx, "Request rejected",
			log.FieldStatusCode, status,
			log.FieldError, err)
	}

	writeJSON(w, status, apiError{ID: status, Message: err.Error()})
}

// methodNotAllowed writes the 405 response for unmatched methods.
func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	writeJSON(w, http.StatusMethodNotAllowed, apiError{
		ID:      http.StatusMethodNotAllowed,
		Message: "method not allowed",
	})
}
