package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"petmatch-backend/internal/services"
)

// ErrorResponse represents an error response.
// Non-2xx responses carry a message field the client surfaces verbatim.
type ErrorResponse struct {
	Message string `json:"message"`
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, statusCode, ErrorResponse{Message: message})
}

// respondServiceError maps service error kinds to HTTP status codes.
// The error text is surfaced as the response message, so validation
// failures reach the user with the evaluator's reason intact.
func respondServiceError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation):
		statusCode = http.StatusBadRequest
	case errors.Is(err, services.ErrForbidden):
		statusCode = http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		statusCode = http.StatusNotFound
	case errors.Is(err, services.ErrBadState), errors.Is(err, services.ErrConflict):
		statusCode = http.StatusConflict
	}

	message := err.Error()
	if statusCode == http.StatusInternalServerError {
		message = "Internal server error"
	}
	respondError(w, message, statusCode)
}
