// Package errors provides the standardized error taxonomy for the bot core.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Slot validation errors. Recovered locally by re-prompting; they never
	// surface as failures to the transport.
	ErrCodeInvalidLocation ErrorCode = "INVALID_LOCATION"
	ErrCodeInvalidCuisine  ErrorCode = "INVALID_CUISINE"
	ErrCodeInvalidPrice    ErrorCode = "INVALID_PRICE"

	// Session store errors.
	ErrCodeSessionNotFound    ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeSessionStoreFailed ErrorCode = "SESSION_STORE_FAILED"

	// Catalog errors. A load failure at startup is fatal; the engine never
	// runs over a partially loaded catalog.
	ErrCodeCatalogLoadFailed     ErrorCode = "CATALOG_LOAD_FAILED"
	ErrCodeCatalogSchemaInvalid  ErrorCode = "CATALOG_SCHEMA_INVALID"
	ErrCodeCatalogSourceUnknown  ErrorCode = "CATALOG_SOURCE_UNKNOWN"
	ErrCodeCatalogRefreshFailed  ErrorCode = "CATALOG_REFRESH_FAILED"
	ErrCodeDatabaseConnectFailed ErrorCode = "DATABASE_CONNECTION_FAILED"

	ErrCodeTransportSendFailed ErrorCode = "TRANSPORT_SEND_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewInvalidLocationError creates a non-retryable slot validation error.
func NewInvalidLocationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidLocation,
		Message:   "Could not resolve a location from the input",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidCuisineError creates a non-retryable slot validation error.
func NewInvalidCuisineError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidCuisine,
		Message:   "No known cuisine tag matched the input",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidPriceError creates a non-retryable slot validation error.
func NewInvalidPriceError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidPrice,
		Message:   "No price tier matched the input",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionNotFoundError marks a state lookup miss. Callers treat this as
// "start a new conversation", never as a crash.
func NewSessionNotFoundError(conversationID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionNotFound,
		Message:   "No dialogue state for conversation",
		Details:   fmt.Sprintf("conversationId: %s", conversationID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionStoreFailedError creates a retryable session backend error.
func NewSessionStoreFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionStoreFailed,
		Message:   "Session store operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogLoadFailedError creates a retryable catalog source error.
func NewCatalogLoadFailedError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogLoadFailed,
		Message:   "Venue catalog load failed",
		Details:   fmt.Sprintf("source: %s, error: %s", source, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogSchemaInvalidError creates a non-retryable dataset schema error.
func NewCatalogSchemaInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogSchemaInvalid,
		Message:   "Venue dataset failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogSourceUnknownError creates a non-retryable configuration error.
func NewCatalogSourceUnknownError(source string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogSourceUnknown,
		Message:   "Unsupported catalog source",
		Details:   fmt.Sprintf("source: %s", source),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewTransportSendFailedError creates a retryable delivery error.
func NewTransportSendFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTransportSendFailed,
		Message:   "Outbound message delivery failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// IsValidation reports whether the error is a slot validation error, i.e.
// one the dialogue recovers from with a re-prompt.
func IsValidation(err error) bool {
	stdErr, ok := err.(*StandardError)
	if !ok {
		return false
	}
	switch stdErr.Code {
	case ErrCodeInvalidLocation, ErrCodeInvalidCuisine, ErrCodeInvalidPrice:
		return true
	}
	return false
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	case strings.Contains(codeStr, "SESSION"):
		return "SESSION"
	case strings.Contains(codeStr, "CATALOG") || strings.Contains(codeStr, "DATABASE"):
		return "CATALOG"
	case strings.Contains(codeStr, "TRANSPORT"):
		return "TRANSPORT"
	default:
		return "OTHER"
	}
}
