package dto

import (
	"net/http"
	"strings"
)

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
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
	// ErrCodeValidationRange is used when a value is out of range
	ErrCodeValidationRange = "ERR_VALIDATION_RANGE"
	// ErrCodeValidationLength is used when a field length is invalid
	ErrCodeValidationLength = "ERR_VALIDATION_LENGTH"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when credentials are required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the caller lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Rate limiting error codes
const (
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
	// ErrCodeTooManyRequests is an alias for rate limiting
	ErrCodeTooManyRequests = "ERR_TOO_MANY_REQUESTS"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,
	ErrCodeValidationRange:    http.StatusBadRequest,
	ErrCodeValidationLength:   http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodeBusinessRule: http.StatusUnprocessableEntity,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	// Rate limiting -> 429 Too Many Requests
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

// DomainErrorCodeMapping maps raw domain error codes to standardized codes.
// Codes not listed here fall through to the prefix rules in NormalizeErrorCode.
var DomainErrorCodeMapping = map[string]string{
	// Shared sentinels
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_STATE":        ErrCodeInvalidState,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"VALIDATION_ERROR":     ErrCodeValidation,
	"BAD_REQUEST":          ErrCodeBadRequest,
	"INTERNAL_ERROR":       ErrCodeInternal,

	// Nested resource lookups -> 404
	"ITEM_NOT_FOUND":       ErrCodeNotFound,
	"TASK_NOT_FOUND":       ErrCodeNotFound,
	"ATTACHMENT_NOT_FOUND": ErrCodeNotFound,
	"NO_DOCUMENT":          ErrCodeNotFound,
	"NO_LOGO":              ErrCodeNotFound,

	// Uniqueness and locking races -> 409
	"POLL_IN_PROGRESS":       ErrCodeConflict,
	"PO_NUMBER_TAKEN":        ErrCodeConflict,
	"TICKET_NUMBER_TAKEN":    ErrCodeConflict,
	"TICKET_NUMBER_CONFLICT": ErrCodeConflict,
	"NUMBER_CONTENTION":      ErrCodeConflict,
	"IN_USE":                 ErrCodeConflict,
	"ORDER_ACTIVE":           ErrCodeConflict,

	// Lifecycle guards -> 422
	"INVALID_ITEM_STATE": ErrCodeInvalidState,
	"ASSET_CHECKED_OUT":  ErrCodeInvalidState,
	"ASSET_RETIRED":      ErrCodeInvalidState,
	"NOT_CHECKED_OUT":    ErrCodeInvalidState,
	"NOT_CLOSED":         ErrCodeInvalidState,
	"NOT_SNOOZED":        ErrCodeInvalidState,
	"TICKET_CLOSED":      ErrCodeInvalidState,
	"OPEN_TASKS":         ErrCodeInvalidState,
	"EXTERNAL_ID_SET":    ErrCodeInvalidState,
	"RUN_NOT_RUNNING":    ErrCodeInvalidState,
	"POLL_DISABLED":      ErrCodeInvalidState,
	"VENDOR_INACTIVE":    ErrCodeInvalidState,
	"USER_DEACTIVATED":   ErrCodeInvalidState,
	"RESERVED_KEY":       ErrCodeInvalidState,

	// Business rules -> 422
	"NO_ITEMS":              ErrCodeBusinessRule,
	"NO_VENDOR":             ErrCodeBusinessRule,
	"NO_SHIP_TO":            ErrCodeBusinessRule,
	"UNSUPPORTED_FILE_TYPE": ErrCodeBusinessRule,
	"FILE_TOO_LARGE":        ErrCodeBusinessRule,

	// Input problems without the INVALID_ prefix -> 400
	"EMPTY_FILE": ErrCodeInvalidInput,

	// Credentials
	"INVALID_CREDENTIALS": ErrCodeUnauthorized,
	"PASSWORD_HASH_ERROR": ErrCodeInternal,
}

// NormalizeErrorCode converts a raw domain error code to the standardized format.
// Unlisted codes are classified by prefix; anything unrecognized is returned
// as-is and resolves to 500 through GetHTTPStatus.
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	switch {
	case strings.HasPrefix(code, "INVALID_"):
		return ErrCodeInvalidInput
	case strings.HasPrefix(code, "ALREADY_"):
		return ErrCodeInvalidState
	case strings.HasSuffix(code, "_NOT_FOUND"):
		return ErrCodeNotFound
	}
	return code
}
