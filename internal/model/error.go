package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeMalformedPayload   = "MALFORMED_PAYLOAD"
	ErrCodeTestOrderExcluded  = "TEST_ORDER_EXCLUDED"
	ErrCodeOrderNotFound      = "ORDER_NOT_FOUND"
	ErrCodePersistenceFailure = "PERSISTENCE_FAILURE"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// DomainError carries a stable code alongside the message so handlers can map
// business failures to HTTP statuses without string matching.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrMalformedPayload   = NewDomainError(ErrCodeMalformedPayload, "Order payload could not be extracted")
	ErrTestOrderExcluded  = NewDomainError(ErrCodeTestOrderExcluded, "Order number is on the test-order exclusion list")
	ErrOrderNotFound      = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrPersistenceFailure = NewDomainError(ErrCodePersistenceFailure, "No records could be persisted")
)
