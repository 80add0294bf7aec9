// Package response centralizes HTTP response shapes and helpers.
// Handlers rely on it to keep controllers thin and uniform.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/survey-pdf-service/internal/pathsafe"
	"github.com/maxviazov/survey-pdf-service/internal/service"
)

// ErrorPayload is the canonical error envelope returned by the API.
type ErrorPayload struct {
	Error       string               `json:"error"`
	Message     string               `json:"message,omitempty"`
	FieldErrors []service.FieldError `json:"field_errors,omitempty"`
}

// MapError converts a domain error into an HTTP status and payload.
// Messages are the short reasons callers of the document API already rely on.
func MapError(err error) (int, ErrorPayload) {
	switch {
	case err == nil:
		return http.StatusOK, ErrorPayload{Error: "ok"}
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, ErrorPayload{Error: "unauthorized", Message: "Invalid API Key"}
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, ErrorPayload{
			Error:       "invalid_input",
			Message:     "one or more fields are invalid",
			FieldErrors: service.FieldErrors(err),
		}
	case errors.Is(err, service.ErrForbiddenRegion):
		return http.StatusForbidden, ErrorPayload{Error: "forbidden", Message: "Invalid State"}
	case errors.Is(err, pathsafe.ErrAccessDenied):
		return http.StatusForbidden, ErrorPayload{Error: "forbidden", Message: "Access denied"}
	case errors.Is(err, service.ErrRecordNotFound):
		return http.StatusNotFound, ErrorPayload{Error: "not_found", Message: "GUID not found"}
	case errors.Is(err, service.ErrFileNotFound):
		return http.StatusNotFound, ErrorPayload{Error: "not_found", Message: "PDF file not found"}
	default:
		return http.StatusInternalServerError, ErrorPayload{Error: "internal_error"}
	}
}

// WriteError writes an error response and aborts the context.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	c.AbortWithStatusJSON(status, payload)
}

// WriteData writes a successful JSON response.
func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}
