// Package errors provides centralized error definitions and error handling
// utilities for the decomposer codebase. It defines the sentinel errors for
// the fallback chain, a ProviderError domain type with context wrapping,
// and error classification helpers.
//
// # Error Kinds
//
// The engine distinguishes four recoverable conditions:
//   - ErrEmptyTask: no task text was given (caller-level, not engine-level)
//   - ErrProviderUnavailable: no credential configured for a provider
//   - ErrProviderCallFailed: the network call errored, timed out, or
//     returned a non-2xx status
//   - ErrProviderUnparseable: the response did not contain a well-formed
//     payload matching the plan schema
//
// All provider errors advance the fallback chain to the next tier; none are
// fatal, because the final heuristic tier cannot fail.
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewProviderError("decomposition request failed", errors.ErrProviderCallFailed).
//		WithProvider("anthropic").WithStatusCode(503)
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrProviderUnavailable) { ... }
//
//	var provErr *errors.ProviderError
//	if errors.As(err, &provErr) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

var (
	// ErrEmptyTask indicates that no task text was given. This is rejected
	// at the CLI boundary; the engine itself accepts empty input.
	ErrEmptyTask = New("no task text given")

	// ErrProviderUnavailable indicates that a provider has no credential
	// configured and was skipped without a network call.
	ErrProviderUnavailable = New("provider unavailable: no credential configured")

	// ErrProviderCallFailed indicates that the provider call errored,
	// timed out, or returned a non-2xx status.
	ErrProviderCallFailed = New("provider call failed")

	// ErrProviderUnparseable indicates that the provider responded but the
	// payload did not match the expected plan schema. A failed parse is a
	// provider failure, never a partial plan.
	ErrProviderUnparseable = New("provider response did not match plan schema")

	// ErrPlanInvalid indicates that a structurally invalid plan was
	// produced or parsed (cycle, unknown dependency, duplicate id).
	ErrPlanInvalid = New("plan is invalid")
)

// -----------------------------------------------------------------------------
// Provider Error
// -----------------------------------------------------------------------------

// ProviderError represents a failure of one assisted decomposition tier.
//
// Example:
//
//	err := errors.NewProviderError("request failed", errors.ErrProviderCallFailed)
//	err = err.WithProvider("openai").WithStatusCode(429)
//	fmt.Println(err) // "provider error [provider=openai, status=429]: request failed: provider call failed"
type ProviderError struct {
	message    string
	cause      error
	Provider   string
	StatusCode int
}

// NewProviderError creates a new ProviderError wrapping one of the
// provider sentinel errors.
func NewProviderError(message string, cause error) *ProviderError {
	return &ProviderError{
		message: message,
		cause:   cause,
	}
}

// WithProvider adds the provider name to the error context.
func (e *ProviderError) WithProvider(name string) *ProviderError {
	e.Provider = name
	return e
}

// WithStatusCode adds the HTTP status code to the error context.
func (e *ProviderError) WithStatusCode(code int) *ProviderError {
	e.StatusCode = code
	return e
}

// Error returns the formatted error message.
func (e *ProviderError) Error() string {
	var parts []string
	if e.Provider != "" {
		parts = append(parts, fmt.Sprintf("provider=%s", e.Provider))
	}
	if e.StatusCode != 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	prefix := "provider error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("provider error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Unwrap returns the underlying sentinel error.
func (e *ProviderError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *ProviderError) Is(target error) bool {
	if _, ok := target.(*ProviderError); ok {
		return true
	}
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// -----------------------------------------------------------------------------
// Classification Helpers
// -----------------------------------------------------------------------------

// IsProviderFailure returns true if the error represents a failed assisted
// tier — the conditions the fallback runner recovers from by advancing to
// the next tier.
func IsProviderFailure(err error) bool {
	return Is(err, ErrProviderUnavailable) ||
		Is(err, ErrProviderCallFailed) ||
		Is(err, ErrProviderUnparseable)
}

// IsUserFacing returns true if the error message is safe to display to end
// users. Provider failures and empty-input errors are expected conditions
// and always user-facing.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return IsProviderFailure(err) || Is(err, ErrEmptyTask) || Is(err, ErrPlanInvalid)
}

// Wrap wraps an error with additional context message.
//
// Example:
//
//	err := errors.Wrap(baseErr, "assisted decomposition failed")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
