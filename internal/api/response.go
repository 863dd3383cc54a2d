package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/andyphuawc114/boardgamewhiz/internal/application/handlers"
	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
	"github.com/andyphuawc114/boardgamewhiz/internal/domain/services"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/catalog/bucket"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/logging"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/validation"
)

// errBadParam marks a malformed query or path parameter.
var errBadParam = errors.New("invalid parameter")

// errSearchDisabled is returned when no vector index is configured.
var errSearchDisabled = errors.New("review search is not configured")

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

// SuccessResponse represents a successful API response with data.
type SuccessResponse struct {
	Data any `json:"data"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Err(err).Msg("Failed to encode response")
	}
}

func success(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, SuccessResponse{Data: data})
}

// writeError maps err to a status code and writes it as an ErrorResponse.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
	}
	writeJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: err.Error(),
		Code:    status,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, entities.ErrGameNotFound):
		return http.StatusNotFound
	case validation.IsValidationError(err),
		errors.Is(err, errBadParam),
		errors.Is(err, entities.ErrInvalidSelection),
		errors.Is(err, services.ErrEmptyQuery),
		errors.Is(err, handlers.ErrUnknownChart):
		return http.StatusBadRequest
	case errors.Is(err, entities.ErrEmptyCatalog),
		errors.Is(err, bucket.ErrObjectNotFound),
		errors.Is(err, errSearchDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
