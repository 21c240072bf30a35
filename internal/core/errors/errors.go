package errors

const (
	HttpInternalError       = "internal_error"
	HttpInvalidJsonError    = "invalid_json"
	HttpInvalidEventError   = "invalid_event"
	HttpDuplicateEventError = "duplicate_event"
	HttpUnavailableError    = "unavailable"
	HttpNotFoundError       = "not_found"
)

// ErrorResponse is the error response body for every HTTP endpoint.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
