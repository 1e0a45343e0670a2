package dto

import "time"

// APIResponse is the standard envelope for all API responses
type APIResponse struct {
	Data      interface{}    `json:"data,omitempty"`
	Error     *ErrorResponse `json:"error,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// NewSuccessResponse wraps payload data in the standard envelope
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewErrorResponse wraps an error payload in the standard envelope
func NewErrorResponse(err *ErrorResponse) APIResponse {
	return APIResponse{
		Error:     err,
		Timestamp: time.Now(),
	}
}
