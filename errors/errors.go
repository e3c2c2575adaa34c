package errors

import (
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ValidationError         ErrorType = "VALIDATION_ERROR"
	NotFoundError           ErrorType = "NOT_FOUND"
	MethodNotAllowedError   ErrorType = "METHOD_NOT_ALLOWED"
	StorageError            ErrorType = "STORAGE_ERROR"
	ServiceUnavailableError ErrorType = "SERVICE_UNAVAILABLE"
	RateLimitError          ErrorType = "RATE_LIMIT_EXCEEDED"
	ServerError             ErrorType = "SERVER_ERROR"
)

// AppError represents a structured application error. Message becomes the
// envelope's "error" field; Fields (or Detail) becomes "details".
type AppError struct {
	Type       ErrorType           `json:"type"`
	Message    string              `json:"message"`
	Detail     string              `json:"detail,omitempty"`
	Fields     map[string][]string `json:"fields,omitempty"`
	HTTPStatus int                 `json:"-"`
	Raw        error               `json:"-"`

	// Extra replaces the generated details object when set.
	Extra map[string]interface{} `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the underlying error to errors.Is / errors.As.
func (e *AppError) Unwrap() error {
	return e.Raw
}

// GetHTTPStatus returns the status the error renders with.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus == 0 {
		return getHTTPStatus(e.Type)
	}
	return e.HTTPStatus
}

// Details builds the envelope's details object, or nil when there is nothing to add.
func (e *AppError) Details() map[string]interface{} {
	if len(e.Extra) > 0 {
		return e.Extra
	}
	if len(e.Fields) > 0 {
		details := make(map[string]interface{}, len(e.Fields))
		for field, msgs := range e.Fields {
			details[field] = msgs
		}
		return details
	}
	if e.Detail != "" {
		return map[string]interface{}{"error": e.Detail}
	}
	return nil
}

// WithDetails attaches a details object and returns the same error.
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Extra = details
	return e
}

// New creates a new AppError
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: getHTTPStatus(errType),
	}
}

// Wrap wraps a raw error with AppError context
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: getHTTPStatus(errType),
		Raw:        err,
	}
}

func ValidationFailed(message string, details string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    message,
		Detail:     details,
		HTTPStatus: http.StatusBadRequest,
	}
}

// ValidationFields reports field-level validation problems.
func ValidationFields(message string, fields map[string][]string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    message,
		Fields:     fields,
		HTTPStatus: http.StatusBadRequest,
	}
}

func NotFound(message string) *AppError {
	return &AppError{
		Type:       NotFoundError,
		Message:    message,
		HTTPStatus: http.StatusNotFound,
	}
}

func MethodNotAllowed(message string) *AppError {
	return &AppError{
		Type:       MethodNotAllowedError,
		Message:    message,
		HTTPStatus: http.StatusMethodNotAllowed,
	}
}

func ServiceUnavailable(message string, detail string) *AppError {
	return &AppError{
		Type:       ServiceUnavailableError,
		Message:    message,
		Detail:     detail,
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// StorageFailure reports a failed write; the raw error text is surfaced as detail.
func StorageFailure(message string, err error) *AppError {
	appErr := &AppError{
		Type:       StorageError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
	if err != nil {
		appErr.Detail = err.Error()
	}
	return appErr
}

func RateLimitExceeded(message string, retryAfterSeconds int) *AppError {
	return &AppError{
		Type:       RateLimitError,
		Message:    message,
		Detail:     fmt.Sprintf("retry after %d seconds", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

func InternalServerError(message string, err error) *AppError {
	appErr := &AppError{
		Type:       ServerError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
	if err != nil {
		appErr.Detail = err.Error()
	}
	return appErr
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError:
		return http.StatusBadRequest
	case NotFoundError:
		return http.StatusNotFound
	case MethodNotAllowedError:
		return http.StatusMethodNotAllowed
	case ServiceUnavailableError:
		return http.StatusServiceUnavailable
	case RateLimitError:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
