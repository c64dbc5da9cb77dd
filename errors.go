package gipwrap

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnknownProvider is returned for an unrecognized provider tag.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrMissingAPIKey is returned when a provider needs a key and none was resolved.
	ErrMissingAPIKey = errors.New("missing API key")
)

// ErrorCategory classifies provider failures.
type ErrorCategory string

const (
	// ErrorTransient marks a temporary failure such as a rate limit or 5xx.
	ErrorTransient ErrorCategory = "transient"

	// ErrorPermanent marks a failure that will not go away on its own,
	// for example a rejected API key or an unknown model.
	ErrorPermanent ErrorCategory = "permanent"

	// ErrorUserInput marks a request the provider refused as malformed.
	ErrorUserInput ErrorCategory = "user_input"
)

// CategorizedError is an error that carries provider failure metadata.
type CategorizedError interface {
	error
	Category() ErrorCategory
	StatusCode() int          // HTTP status code if applicable, 0 otherwise
	RetryAfter() time.Duration // suggested retry delay from server, 0 if not available
}

// Error is a categorized provider error.
// Nothing in this module retries; the metadata is informational for callers.
type Error struct {
	Msg        string
	Cat        ErrorCategory
	Code       int           // HTTP status code, 0 if not applicable
	RetryDelay time.Duration // from Retry-After header, 0 if not available
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Category returns the error category.
func (e *Error) Category() ErrorCategory {
	return e.Cat
}

// StatusCode returns the HTTP status code, or 0 if not applicable.
func (e *Error) StatusCode() int {
	return e.Code
}

// RetryAfter returns the server-suggested delay, or 0 if not available.
func (e *Error) RetryAfter() time.Duration {
	return e.RetryDelay
}

// NewError builds a categorized error.
func NewError(cat ErrorCategory, msg string, statusCode int, retryAfter time.Duration, cause error) *Error {
	return &Error{
		Msg:        msg,
		Cat:        cat,
		Code:       statusCode,
		RetryDelay: retryAfter,
		Cause:      cause,
	}
}

// CategorizeStatus maps an HTTP status code to an error category.
func CategorizeStatus(code int) ErrorCategory {
	switch {
	case code == 429:
		return ErrorTransient
	case code >= 500 && code < 600:
		return ErrorTransient
	case code == 400 || code == 404 || code == 422:
		return ErrorUserInput
	default:
		return ErrorPermanent
	}
}

// IsTransient returns true if err or any wrapped error is transient.
func IsTransient(err error) bool {
	return categoryOf(err) == ErrorTransient
}

// IsPermanent returns true if err or any wrapped error is permanent.
func IsPermanent(err error) bool {
	return categoryOf(err) == ErrorPermanent
}

// IsUserInput returns true if err or any wrapped error is a user input error.
func IsUserInput(err error) bool {
	return categoryOf(err) == ErrorUserInput
}

// StatusCodeOf returns the HTTP status code from a categorized error, or 0.
func StatusCodeOf(err error) int {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.StatusCode()
	}
	return 0
}

func categoryOf(err error) ErrorCategory {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Category()
	}
	return ""
}

// CallError reports a failed provider call. It is the only failure that
// aborts an agent run.
type CallError struct {
	Provider Provider
	Step     int // agent step, 0 outside the agent loop
	Err      error
}

func (e *CallError) Error() string {
	if e.Step > 0 {
		return fmt.Sprintf("%s call failed at step %d: %v", e.Provider, e.Step, e.Err)
	}
	return fmt.Sprintf("%s call failed: %v", e.Provider, e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// ExitCoder is implemented by errors that choose their own process exit status.
type ExitCoder interface {
	ExitCode() int
}

// ExitCode maps an error to a process exit status: 0 for nil, the code of
// an ExitCoder in the chain, and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ec ExitCoder
	if errors.As(err, &ec) {
		if code := ec.ExitCode(); code != 0 {
			return code
		}
	}
	return 1
}
