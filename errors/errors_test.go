package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New(ValidationError, "invalid input", "field required")
	assert.Equal(t, ValidationError, err.Type)
	assert.Equal(t, "invalid input", err.Message)
	assert.Equal(t, "field required", err.Detail)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
}

func TestWrap(t *testing.T) {
	originalErr := fmt.Errorf("original error")
	wrappedErr := Wrap(originalErr, StorageError, "storage operation failed")

	assert.Equal(t, StorageError, wrappedErr.Type)
	assert.Equal(t, "storage operation failed", wrappedErr.Message)
	assert.Equal(t, originalErr.Error(), wrappedErr.Detail)
	assert.Equal(t, http.StatusInternalServerError, wrappedErr.HTTPStatus)
	assert.True(t, stderrors.Is(wrappedErr, originalErr))

	assert.Nil(t, Wrap(nil, StorageError, "nothing"))
}

func TestValidationFields(t *testing.T) {
	err := ValidationFields("Validation error", map[string][]string{
		"rating_stars": {"Must be between 1 and 5."},
	})
	assert.Equal(t, http.StatusBadRequest, err.GetHTTPStatus())
	assert.Equal(t, map[string]interface{}{
		"rating_stars": []string{"Must be between 1 and 5."},
	}, err.Details())
}

func TestDetails(t *testing.T) {
	assert.Nil(t, NotFound("Endpoint not found").Details())

	err := StorageFailure("Failed to store feedback", fmt.Errorf("connection reset"))
	assert.Equal(t, map[string]interface{}{"error": "connection reset"}, err.Details())
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		status int
	}{
		{"not found", NotFound("x"), http.StatusNotFound},
		{"method not allowed", MethodNotAllowed("x"), http.StatusMethodNotAllowed},
		{"unavailable", ServiceUnavailable("x", ""), http.StatusServiceUnavailable},
		{"rate limited", RateLimitExceeded("x", 60), http.StatusTooManyRequests},
		{"storage", StorageFailure("x", nil), http.StatusInternalServerError},
		{"internal", InternalServerError("x", nil), http.StatusInternalServerError},
		{"zero status falls back to type", &AppError{Type: ValidationError}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.GetHTTPStatus())
		})
	}
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "NOT_FOUND: Endpoint not found", NotFound("Endpoint not found").Error())
	assert.Equal(t, "SERVICE_UNAVAILABLE: down (ping failed)", ServiceUnavailable("down", "ping failed").Error())
}

func TestWithDetails(t *testing.T) {
	err := ServiceUnavailable("Service is unhealthy", "ping failed").
		WithDetails(map[string]interface{}{"status": "unhealthy"})
	assert.Equal(t, map[string]interface{}{"status": "unhealthy"}, err.Details())
	assert.Equal(t, http.StatusServiceUnavailable, err.GetHTTPStatus())
}
