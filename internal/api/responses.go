package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	app_errors "blinkchat/backend/internal/errors"
)

// Shared DTOs for API responses and helpers for sending consistent HTTP
// responses.

// ErrorResponse defines the standard JSON structure for error messages.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse defines a generic success response for operations that do
// not return a resource.
type StatusResponse struct {
	Status string `json:"status"`
}

// respondWithError maps engine-layer errors to HTTP status codes and writes
// a standard JSON error body.
func respondWithError(w http.ResponseWriter, err error) {
	var statusCode int
	var message string

	switch {
	case errors.Is(err, app_errors.ErrEmptyInput), errors.Is(err, app_errors.ErrValidation):
		statusCode = http.StatusBadRequest
		// Validation messages are already descriptive and safe to expose.
		message = err.Error()
	case errors.Is(err, app_errors.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "The requested resource was not found."
	case errors.Is(err, app_errors.ErrExchangeInFlight):
		statusCode = http.StatusConflict
		message = "An exchange is already in flight for this session."
	case errors.Is(err, app_errors.ErrCompletion):
		statusCode = http.StatusBadGateway
		message = "The completion service failed to respond."
	case errors.Is(err, app_errors.ErrSubscription):
		statusCode = http.StatusServiceUnavailable
		message = "The live update channel dropped; please retry."
	default:
		// Unhandled errors, ErrPersistence included, stay generic so no
		// storage details leak to the client.
		statusCode = http.StatusInternalServerError
		message = "An unexpected internal server error occurred."
	}

	slog.Warn("Responding with error", "status_code", statusCode, "client_message", message, "internal_error", err)

	respondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondWithJSON marshals a payload and writes it with the given status.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}
