// Package errors provides standardized error handling for the briefing HTTP API.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidation        ErrorCode = "VALIDATION_ERROR"
	ErrCodeConfiguration     ErrorCode = "CONFIGURATION_ERROR"
	ErrCodeRateLimited       ErrorCode = "RATE_LIMITED"
	ErrCodeQuotaExceeded     ErrorCode = "QUOTA_EXCEEDED"
	ErrCodeUpstream          ErrorCode = "UPSTREAM_ERROR"
	ErrCodeResponseFormat    ErrorCode = "RESPONSE_FORMAT_ERROR"
	ErrCodeSchemaValidation  ErrorCode = "SCHEMA_VALIDATION_FAILED"
	ErrCodeUnauthorized      ErrorCode = "UNAUTHORIZED"
	ErrCodeSessionStoreError ErrorCode = "SESSION_STORE_UNAVAILABLE"
	ErrCodeInternal          ErrorCode = "INTERNAL_ERROR"
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
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata attaches a diagnostic key/value and returns the same error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. HTTP Response Integration
// ==========================

// ErrorResponse is the JSON body written for every failed API call.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Retryable bool   `json:"retryable"`
}

// ToResponse returns the client-facing body. Details stay in the logs.
func (e *StandardError) ToResponse() ErrorResponse {
	return ErrorResponse{
		Error:     e.Message,
		Code:      string(e.Code),
		Retryable: e.Retryable,
	}
}

// ==========================
// 3. Error Constructors
// ==========================

// NewValidationError creates a non-retryable, user-correctable input error.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidation,
		Message:   "Invalid request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewConfigurationError creates an operator-facing error for missing settings.
func NewConfigurationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfiguration,
		Message:   "Service is not configured correctly",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRateLimitError creates a retryable error for gateway 429 responses.
func NewRateLimitError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRateLimited,
		Message:   "Rate limits exceeded, please try again later.",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQuotaExceededError creates a non-retryable error for gateway 402 responses.
func NewQuotaExceededError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeQuotaExceeded,
		Message:   "Payment required, please add funds to your AI gateway workspace.",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamError creates an error for any other gateway failure. A status of
// 0 means the request never produced an HTTP response.
func NewUpstreamError(status int, bodyExcerpt string, retryable bool) *StandardError {
	details := fmt.Sprintf("status: %d", status)
	if bodyExcerpt != "" {
		details = fmt.Sprintf("status: %d, body: %s", status, bodyExcerpt)
	}
	return &StandardError{
		Code:      ErrCodeUpstream,
		Message:   "Failed to generate briefing",
		Details:   details,
		Retryable: retryable,
		Metadata:  map[string]interface{}{"upstreamStatus": status},
		Timestamp: time.Now().UTC(),
	}
}

// NewResponseFormatError creates an error for model output that is not a JSON object.
func NewResponseFormatError(rawText string, err error) *StandardError {
	details := "model response is not valid JSON"
	if err != nil {
		details = fmt.Sprintf("%s: %s", details, err.Error())
	}
	return &StandardError{
		Code:      ErrCodeResponseFormat,
		Message:   "Failed to parse AI response as JSON",
		Details:   details,
		Retryable: false,
		Metadata:  map[string]interface{}{"rawText": rawText},
		Timestamp: time.Now().UTC(),
	}
}

// NewSchemaValidationError creates an error for parseable JSON that violates the briefing schema.
func NewSchemaValidationError(violations []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSchemaValidation,
		Message:   "AI response did not match the briefing schema",
		Details:   strings.Join(violations, "; "),
		Retryable: false,
		Metadata:  map[string]interface{}{"violations": violations},
		Timestamp: time.Now().UTC(),
	}
}

func NewUnauthorizedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnauthorized,
		Message:   "Sign in required",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewSessionStoreError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionStoreError,
		Message:   "Session check unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion
// ==========================

// HTTPStatusMapping maps internal error codes to response status codes.
var HTTPStatusMapping = map[ErrorCode]int{
	ErrCodeValidation:        http.StatusBadRequest,
	ErrCodeConfiguration:     http.StatusInternalServerError,
	ErrCodeRateLimited:       http.StatusTooManyRequests,
	ErrCodeQuotaExceeded:     http.StatusPaymentRequired,
	ErrCodeUpstream:          http.StatusBadGateway,
	ErrCodeResponseFormat:    http.StatusBadGateway,
	ErrCodeSchemaValidation:  http.StatusBadGateway,
	ErrCodeUnauthorized:      http.StatusUnauthorized,
	ErrCodeSessionStoreError: http.StatusServiceUnavailable,
	ErrCodeInternal:          http.StatusInternalServerError,
}

// HTTPStatus returns the response status for a code, 500 when unmapped.
func HTTPStatus(code ErrorCode) int {
	if status, ok := HTTPStatusMapping[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// AsStandardError unwraps err to a StandardError, normalizing anything else
// to INTERNAL_ERROR.
func AsStandardError(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	return errors.As(err, &stdErr) && stdErr.Code == code
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode reports whether the caller may offer a retry without
// operator intervention.
func IsRetryableErrorCode(code ErrorCode) bool {
	switch code {
	case ErrCodeRateLimited, ErrCodeSessionStoreError:
		return true
	default:
		return false
	}
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeValidation:
		return "USER"
	case ErrCodeConfiguration:
		return "OPERATOR"
	case ErrCodeRateLimited, ErrCodeQuotaExceeded, ErrCodeUpstream:
		return "GATEWAY"
	case ErrCodeResponseFormat, ErrCodeSchemaValidation:
		return "MODEL_OUTPUT"
	case ErrCodeUnauthorized, ErrCodeSessionStoreError:
		return "AUTH"
	default:
		return "OTHER"
	}
}
