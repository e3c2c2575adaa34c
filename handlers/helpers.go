package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"

	apperrors "github.com/envgov/feedback-api/errors"
	"github.com/envgov/feedback-api/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const msgNoJSON = "No JSON data provided"

// bindJSONOrError decodes a JSON object body into obj. An empty, malformed or
// non-object body is rejected as a whole; a value of the wrong JSON type is
// reported against its field. Binding rule failures are left to the payload's
// own Validate so every field is reported with its message.
func bindJSONOrError(c *gin.Context, obj interface{}) bool {
	raw, err := c.GetRawData()
	if err != nil {
		_ = c.Error(apperrors.ValidationFailed(msgNoJSON, err.Error()))
		return false
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		_ = c.Error(apperrors.ValidationFailed(msgNoJSON, ""))
		return false
	}

	if err := binding.JSON.BindBody(trimmed, obj); err != nil {
		var ruleErrs validator.ValidationErrors
		if errors.As(err, &ruleErrs) {
			return true
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			_ = c.Error(apperrors.ValidationFields("Validation error", map[string][]string{
				typeErr.Field: {typeMismatchMessage(typeErr.Type)},
			}))
			return false
		}
		_ = c.Error(apperrors.ValidationFailed(msgNoJSON, err.Error()))
		return false
	}
	return true
}

func typeMismatchMessage(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "Not a valid integer."
	case reflect.String:
		return "Not a valid string."
	case reflect.Slice, reflect.Array:
		return "Not a valid list."
	default:
		return "Invalid value."
	}
}

// queryIntInRange reads an optional integer query parameter. A missing value
// yields def; a malformed or out-of-range value records a 400 and returns false.
func queryIntInRange(c *gin.Context, name string, def, min, max int) (int, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, true
	}
	rangeMsg := fmt.Sprintf("%s parameter must be between %d and %d", capitalize(name), min, max)

	v, err := strconv.Atoi(raw)
	if err != nil {
		_ = c.Error(apperrors.ValidationFailed(rangeMsg, fmt.Sprintf("%s must be an integer, got %q", name, raw)))
		return 0, false
	}
	if v < min || v > max {
		_ = c.Error(apperrors.ValidationFailed(rangeMsg, ""))
		return 0, false
	}
	return v, true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}

// respondOK writes the success envelope.
func respondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, types.NewSuccessResponse(message, data))
}
