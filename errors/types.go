package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigMissing ErrorCode = "CONFIG_MISSING"
	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"

	// Authentication errors
	ErrCodeAuthFailed ErrorCode = "AUTH_FAILED"

	// API request errors
	ErrCodeRequestFailed ErrorCode = "REQUEST_FAILED"

	// Job execution errors
	ErrCodeJobFailed  ErrorCode = "JOB_FAILED"
	ErrCodeJobTimeout ErrorCode = "JOB_TIMEOUT"

	// Source control errors
	ErrCodePullFailed     ErrorCode = "PULL_FAILED"
	ErrCodeRollbackFailed ErrorCode = "ROLLBACK_FAILED"
	ErrCodeObjectNotFound ErrorCode = "OBJECT_NOT_FOUND"

	// General errors
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// PromoteError represents a structured error with context
type PromoteError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *PromoteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PromoteError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *PromoteError) WithDetail(key string, value interface{}) *PromoteError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *PromoteError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new PromoteError
func New(code ErrorCode, message string) *PromoteError {
	return &PromoteError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a PromoteError
func Wrap(err error, code ErrorCode, message string) *PromoteError {
	return &PromoteError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error carries a specific error code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	promoteErr, ok := err.(*PromoteError)
	if !ok {
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return promoteErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	promoteErr, ok := err.(*PromoteError)
	if !ok {
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return promoteErr.Code
}
