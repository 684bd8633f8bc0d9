// Package apperr holds the errors that carry an HTTP status and renders
// them as {"error": message} bodies.
package apperr

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"doctrone-backend/internal/models"
)

type ValidationError struct{ Message string }

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "Validation error"
}

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

type UnauthorizedError struct{ Message string }

func (e *UnauthorizedError) Error() string { return e.Message }

type ForbiddenError struct{ Message string }

func (e *ForbiddenError) Error() string { return e.Message }

type RateLimitError struct{ Message string }

func (e *RateLimitError) Error() string { return e.Message }

func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// classify returns the status and message of the typed error in err's
// chain, or ok=false for an untyped error.
func classify(err error) (status int, message string, ok bool) {
	var (
		validation   *ValidationError
		notFound     *NotFoundError
		unauthorized *UnauthorizedError
		forbidden    *ForbiddenError
		rateLimited  *RateLimitError
	)

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, validation.Error(), true
	case errors.As(err, &notFound):
		return http.StatusNotFound, notFound.Message, true
	case errors.As(err, &unauthorized):
		return http.StatusUnauthorized, unauthorized.Message, true
	case errors.As(err, &forbidden):
		return http.StatusForbidden, forbidden.Message, true
	case errors.As(err, &rateLimited):
		return http.StatusTooManyRequests, rateLimited.Message, true
	}
	return http.StatusInternalServerError, "", false
}

// Write renders a typed error as JSON. Anything else is logged and answered
// with an opaque plain-text 500.
func Write(w http.ResponseWriter, r *http.Request, err error) {
	if status, message, ok := classify(err); ok {
		WriteJSON(w, status, models.ErrorResponse{Error: message})
		return
	}

	slog.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", r.Header.Get("X-Request-ID"),
		"error", err,
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
