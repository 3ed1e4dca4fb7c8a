package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
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
	ErrNotFound           = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput       = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnknownCollection  = NewDomainError("UNKNOWN_COLLECTION", "Unknown content collection")
	ErrBackendUnavailable = NewDomainError("BACKEND_UNAVAILABLE", "Content backend is unavailable")
	ErrBackendRejected    = NewDomainError("BACKEND_REJECTED", "Content backend rejected the request")
	ErrCommerceFailure    = NewDomainError("COMMERCE_UNAVAILABLE", "Commerce service is unavailable")
	ErrTooManyRequests    = NewDomainError("TOO_MANY_REQUESTS", "Too many requests, please try again later")
)
