package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/urtzih/Lorapp/internal/logger"
)

// dateParamLayout is the wire format for date query parameters.
const dateParamLayout = "2006-01-02"

// DecodeAndValidateRequest decodes a JSON request body, validates it, and returns appropriate errors.
// It logs the operation and returns a standardized error response to the client.
//
// If this function returns an error, the HTTP response has already been written and the handler should return.
//
// Example usage:
//
//	var req SubscribeRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Subscribe"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	// Decode JSON body
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Error(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		http.Error(w, ErrMsgInvalidRequest, http.StatusBadRequest)
		return err
	}

	// Log the decoded request at debug level
	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	// Validate the request struct
	if err := GetValidator().ValidateStruct(req); err != nil {
		validationErrs := FormatValidationError(err)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: validationErrs,
		})
		return err
	}

	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// GetQueryParam retrieves and validates a required query parameter from the request.
// If the parameter is missing or empty, it writes an error response and returns false.
//
// If ok is false, the HTTP response has already been written and the handler should return.
func GetQueryParam(r *http.Request, w http.ResponseWriter, paramName string) (string, bool) {
	log := logger.FromContext(r.Context())
	value := r.URL.Query().Get(paramName)
	if value == "" {
		log.Warn(fmt.Sprintf("Missing %s query parameter", paramName))
		http.Error(w, fmt.Sprintf(ErrMsgMissingQueryParam, paramName), http.StatusBadRequest)
		return "", false
	}
	return value, true
}

// GetOptionalQueryParam retrieves an optional query parameter from the request.
// Unlike GetQueryParam, this does not write an error response if the parameter is missing.
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetDateParam parses an optional YYYY-MM-DD query parameter, returning def
// when the parameter is absent. A malformed value writes a 400 response and
// returns ok=false.
func GetDateParam(r *http.Request, w http.ResponseWriter, paramName string, def time.Time) (time.Time, bool) {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return def, true
	}

	parsed, err := time.Parse(dateParamLayout, value)
	if err != nil {
		log := logger.FromContext(r.Context())
		log.Warn(fmt.Sprintf("Invalid %s query parameter", paramName), "value", value)
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidDateParam, paramName))
		return time.Time{}, false
	}
	return parsed, true
}

// GetIntParam parses an optional integer query parameter, returning def when
// the parameter is absent. A malformed value writes a 400 response and
// returns ok=false.
func GetIntParam(r *http.Request, w http.ResponseWriter, paramName string, def int) (int, bool) {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return def, true
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		log := logger.FromContext(r.Context())
		log.Warn(fmt.Sprintf("Invalid %s query parameter", paramName), "value", value)
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidIntParam, paramName))
		return 0, false
	}
	return parsed, true
}

// respondServiceError logs a failed service call and writes the mapped user
// facing error response.
func respondServiceError(w http.ResponseWriter, r *http.Request, actionName string, err error) {
	log := logger.FromContext(r.Context())
	log.Error(fmt.Sprintf("%s failed", actionName), "error", err)

	statusCode, userMsg := mapServiceErrorToUserMessage(err)
	respondError(w, statusCode, userMsg)
}
