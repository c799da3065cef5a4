package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Run setup errors
	ErrDirNotFound ErrorCode = "DIR_NOT_FOUND"
	ErrBackupDir   ErrorCode = "BACKUP_DIR_UNAVAILABLE"

	// Spec file errors
	ErrFileOpen          ErrorCode = "FILE_OPEN"
	ErrLineRead          ErrorCode = "LINE_READ"
	ErrLineNoMatch       ErrorCode = "LINE_NO_MATCH"
	ErrLineTargetMissing ErrorCode = "LINE_TARGET_MISSING"

	// Resolution errors
	ErrSymlinkCreate   ErrorCode = "SYMLINK_CREATE"
	ErrBackupRename    ErrorCode = "BACKUP_RENAME"
	ErrOverwriteRemove ErrorCode = "OVERWRITE_REMOVE"

	// Prompt errors
	ErrPromptIO ErrorCode = "PROMPT_IO"
)

// SlinkError represents a structured error with code and details
type SlinkError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SlinkError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SlinkError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *SlinkError) Is(target error) bool {
	var targetErr *SlinkError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SlinkError with the given code and message
func New(code ErrorCode, message string) *SlinkError {
	return &SlinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SlinkError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SlinkError {
	return &SlinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SlinkError
func Wrap(err error, code ErrorCode, message string) *SlinkError {
	if err == nil {
		return nil
	}
	return &SlinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SlinkError {
	if err == nil {
		return nil
	}
	return &SlinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SlinkError) WithDetail(key string, value interface{}) *SlinkError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *SlinkError) WithDetails(details map[string]interface{}) *SlinkError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var slinkErr *SlinkError
	if errors.As(err, &slinkErr) {
		return slinkErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a SlinkError
func GetErrorCode(err error) ErrorCode {
	var slinkErr *SlinkError
	if errors.As(err, &slinkErr) {
		return slinkErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a SlinkError
func GetErrorDetails(err error) map[string]interface{} {
	var slinkErr *SlinkError
	if errors.As(err, &slinkErr) {
		return slinkErr.Details
	}
	return nil
}
