package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/maxviazov/survey-pdf-service/internal/pathsafe"
	"github.com/maxviazov/survey-pdf-service/internal/service"
	"github.com/maxviazov/survey-pdf-service/pkg/response"
)

// fakeInvalid mimics the service's aggregated validation error without reaching into internals.
type fakeInvalid struct{ fe []service.FieldError }

func (f *fakeInvalid) Error() string                { return service.ErrInvalidInput.Error() }
func (f *fakeInvalid) Unwrap() error                { return service.ErrInvalidInput }
func (f *fakeInvalid) Fields() []service.FieldError { return f.fe }

func TestMapError(t *testing.T) {
	cases := []struct {
		name        string
		in          error
		wantCode    int
		wantErr     string
		wantMessage string
	}{
		{"ok", nil, http.StatusOK, "ok", ""},
		{"unauthorized", service.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "Invalid API Key"},
		{"invalid_input", &fakeInvalid{fe: []service.FieldError{{Field: "guid", Message: "is required"}}}, http.StatusBadRequest, "invalid_input", "one or more fields are invalid"},
		{"region", service.ErrForbiddenRegion, http.StatusForbidden, "forbidden", "Invalid State"},
		{"traversal", fmt.Errorf("%w: escape", pathsafe.ErrAccessDenied), http.StatusForbidden, "forbidden", "Access denied"},
		{"guid", service.ErrRecordNotFound, http.StatusNotFound, "not_found", "GUID not found"},
		{"file", service.ErrFileNotFound, http.StatusNotFound, "not_found", "PDF file not found"},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "internal_error", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, payload := response.MapError(tc.in)
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantErr, payload.Error)
			assert.Equal(t, tc.wantMessage, payload.Message)
			if tc.wantErr == "invalid_input" {
				assert.Len(t, payload.FieldErrors, 1)
			}
		})
	}
}

func TestWriteHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	response.WriteData(c, http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"unavailable"}`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	response.WriteError(c, service.ErrRecordNotFound)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.True(t, c.IsAborted())
	assert.JSONEq(t, `{"error":"not_found","message":"GUID not found"}`, w.Body.String())
}
