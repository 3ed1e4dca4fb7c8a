package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	ErrCodeValidation         = "ERR_VALIDATION"
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	ErrCodeValidationFormat   = "ERR_VALIDATION_FORMAT"
	ErrCodeValidationLength   = "ERR_VALIDATION_LENGTH"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeProductNotFound is used when the commerce vertical has no such product
	ErrCodeProductNotFound = "ERR_PRODUCT_NOT_FOUND"
	// ErrCodeCollectionNotFound is used when the commerce vertical has no such collection
	ErrCodeCollectionNotFound = "ERR_COLLECTION_NOT_FOUND"
	// ErrCodeUnknownCollection is used for content collections outside the known set
	ErrCodeUnknownCollection = "ERR_UNKNOWN_COLLECTION"
)

// Input error codes
const (
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"
)

// Upstream error codes
const (
	// ErrCodeBackendUnavailable is used when the content backend cannot be reached
	ErrCodeBackendUnavailable = "ERR_BACKEND_UNAVAILABLE"
	// ErrCodeBackendRejected is used when the content backend answers with an error status
	ErrCodeBackendRejected = "ERR_BACKEND_REJECTED"
	// ErrCodeBackendInvalidResponse is used when the content backend answers with an unreadable or oversized body
	ErrCodeBackendInvalidResponse = "ERR_BACKEND_INVALID_RESPONSE"
	// ErrCodeCommerceUnavailable is used when the commerce vertical fails
	ErrCodeCommerceUnavailable = "ERR_COMMERCE_UNAVAILABLE"
)

// Rate limiting error codes
const (
	ErrCodeRateLimited     = "ERR_RATE_LIMITED"
	ErrCodeTooManyRequests = "ERR_TOO_MANY_REQUESTS"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,
	ErrCodeValidationLength:   http.StatusBadRequest,

	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeProductNotFound:    http.StatusNotFound,
	ErrCodeCollectionNotFound: http.StatusNotFound,
	ErrCodeUnknownCollection:  http.StatusBadRequest,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	// Upstream failures -> 502 Bad Gateway
	ErrCodeBackendUnavailable:     http.StatusBadGateway,
	ErrCodeBackendRejected:        http.StatusBadGateway,
	ErrCodeBackendInvalidResponse: http.StatusBadGateway,
	ErrCodeCommerceUnavailable:    http.StatusBadGateway,

	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeTooManyRequests: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":                  ErrCodeNotFound,
	"INVALID_INPUT":              ErrCodeInvalidInput,
	"VALIDATION_ERROR":           ErrCodeValidation,
	"BAD_REQUEST":                ErrCodeBadRequest,
	"INTERNAL_ERROR":             ErrCodeInternal,
	"PRODUCT_NOT_FOUND":          ErrCodeProductNotFound,
	"COLLECTION_NOT_FOUND":       ErrCodeCollectionNotFound,
	"UNKNOWN_COLLECTION":         ErrCodeUnknownCollection,
	"BACKEND_UNAVAILABLE":        ErrCodeBackendUnavailable,
	"BACKEND_REJECTED":           ErrCodeBackendRejected,
	"BACKEND_INVALID_RESPONSE":   ErrCodeBackendInvalidResponse,
	"BACKEND_RESPONSE_TOO_LARGE": ErrCodeBackendInvalidResponse,
	"COMMERCE_UNAVAILABLE":       ErrCodeCommerceUnavailable,
	"TOO_MANY_REQUESTS":          ErrCodeTooManyRequests,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Codes already in the API format or unknown pass through unchanged.
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
