package common

// ErrorResponse is the error body returned by every API endpoint.
type ErrorResponse struct {
	// Error is always true
	Error bool `json:"error"`

	// Message describes what went wrong
	Message string `json:"message"`
}

// NewErrorResponse builds an ErrorResponse with the given message.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: true, Message: message}
}
