package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/urtzih/Lorapp/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// Helper functions for responding

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to the buffer first
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Log the error - we can't write to response at this point since headers are sent
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	// Write the buffer to the response
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
// These messages are derived from domain errors and provide helpful guidance to users
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgUserNotFoundError         = "User not found"
	ErrMsgSeedLotNotFoundError      = "Seed lot not found"
	ErrMsgVarietyNotFoundError      = "Variety not found"
	ErrMsgPlantingNotFoundError     = "Planting not found"
	ErrMsgSubscriptionNotFoundError = "Subscription not found"
	ErrMsgInvalidMonthError         = "Month must be between 1 and 12"
	ErrMsgInvalidInputError         = "Invalid request. Please check your inputs."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
// This function converts internal service errors to appropriate HTTP status codes and messages
// that users can understand and act upon.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	// Check for specific domain errors
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrSeedLotNotFound):
		return http.StatusNotFound, ErrMsgSeedLotNotFoundError
	case errors.Is(err, domain.ErrVarietyNotFound):
		return http.StatusNotFound, ErrMsgVarietyNotFoundError
	case errors.Is(err, domain.ErrPlantingNotFound):
		return http.StatusNotFound, ErrMsgPlantingNotFoundError
	case errors.Is(err, domain.ErrSubscriptionNotFound):
		return http.StatusNotFound, ErrMsgSubscriptionNotFoundError
	case errors.Is(err, domain.ErrInvalidMonth):
		return http.StatusBadRequest, ErrMsgInvalidMonthError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	}

	// For wrapped errors with domain errors as the base, try unwrapping
	unwrapped := errors.Unwrap(err)
	if unwrapped != nil && unwrapped != err {
		// Recursively check the unwrapped error
		return mapServiceErrorToUserMessage(unwrapped)
	}

	// Default to generic message so internal details never leak to clients
	return http.StatusInternalServerError, ErrMsgGenericServerError
}
