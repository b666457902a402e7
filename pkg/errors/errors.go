package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyConverted   = errors.New("post already converted")
	ErrNoCandidates       = errors.New("no candidate posts")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrNotEnoughContent   = errors.New("not enough content for a video")
	ErrEmptyText          = errors.New("empty text")
	ErrInvalidInput       = errors.New("invalid input")
	ErrServiceUnavailable = errors.New("service unavailable")
)

// Error carries a machine-readable code next to the wrapped error
type Error struct {
	Code    string
	Message string
	Err     error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// WrapWithCode wraps an error with a code and message
func WrapWithCode(err error, code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// GetCode returns the error code if it exists
func GetCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsNotFound returns true if the error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyConverted returns true if the post already has an output file
func IsAlreadyConverted(err error) bool {
	return errors.Is(err, ErrAlreadyConverted)
}

// IsServiceUnavailable returns true if the error is a service unavailable error
func IsServiceUnavailable(err error) bool {
	return errors.Is(err, ErrServiceUnavailable)
}

// ExitCode maps run errors to process exit codes.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case IsNotFound(err), IsAlreadyConverted(err), errors.Is(err, ErrNoCandidates), errors.Is(err, ErrInvalidSelection):
		return 2
	default:
		return 1
	}
}
