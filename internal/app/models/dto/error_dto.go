package dto

// ErrorCode defines machine-readable error codes
type ErrorCode string

// Error code constants
const (
	ErrorCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrorCodeUnauthorized  ErrorCode = "UNAUTHORIZED"
	ErrorCodeForbidden     ErrorCode = "FORBIDDEN"
	ErrorCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrorCodeConflict      ErrorCode = "CONFLICT"
	ErrorCodeRoleViolation ErrorCode = "ROLE_VIOLATION"
	ErrorCodeInternal      ErrorCode = "INTERNAL_ERROR"
)

// ErrorDetail describes a single field-level problem
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ErrorResponse is the error payload carried in the response envelope
type ErrorResponse struct {
	Code    ErrorCode     `json:"code"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// NewErrorDetail builds an ErrorResponse with a single code and message
func NewErrorDetail(code ErrorCode, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}
