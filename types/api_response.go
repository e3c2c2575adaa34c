package types

import "time"

// SuccessResponse is the envelope returned by every successful endpoint.
type SuccessResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Timestamp string      `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// ErrorResponse is the envelope returned by every failed request.
type ErrorResponse struct {
	Success   bool                   `json:"success"`
	Error     string                 `json:"error"`
	Timestamp string                 `json:"timestamp"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// NowTimestamp formats the current UTC time the way envelopes carry it.
func NowTimestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// NewSuccessResponse builds a success envelope stamped with the current time.
func NewSuccessResponse(message string, data interface{}) SuccessResponse {
	return SuccessResponse{
		Success:   true,
		Message:   message,
		Timestamp: NowTimestamp(),
		Data:      data,
	}
}

// NewErrorResponse builds a failure envelope stamped with the current time.
func NewErrorResponse(message string, details map[string]interface{}) ErrorResponse {
	return ErrorResponse{
		Success:   false,
		Error:     message,
		Timestamp: NowTimestamp(),
		Details:   details,
	}
}
