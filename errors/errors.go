// Package errors provides the entrypoint's error taxonomy. Every failure is
// fatal and carries a machine-readable code plus the process exit code the
// entrypoint should terminate with; nothing is ever caught and retried.
package errors

import (
	"fmt"
)

// EntrypointError is the unified error type for resolution and supervision
// failures.
type EntrypointError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// ExitCode is the process exit code the entrypoint terminates with.
	ExitCode int `json:"-"`
	// Details contains additional context for the error (patterns searched,
	// candidates found).
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *EntrypointError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *EntrypointError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *EntrypointError) WithCause(cause error) *EntrypointError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *EntrypointError) WithDetail(key string, value any) *EntrypointError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new EntrypointError with the exit code derived from the code.
func New(code ErrorCode, message string) *EntrypointError {
	return &EntrypointError{
		Code:     code,
		Message:  message,
		ExitCode: ExitCodeFor(code),
	}
}

// --- Common Error Constructors ---

// ModuleUnresolved creates an error for a failed module-reference detection.
// The message tells the operator to set the explicit override.
func ModuleUnresolved(reason string) *EntrypointError {
	return &EntrypointError{
		Code:     ErrCodeModuleUnresolved,
		Message:  fmt.Sprintf("could not determine application module: %s. Set APP_MODULE explicitly.", reason),
		ExitCode: ExitConfig,
	}
}

// CertMissing creates an error for zero matches of a certificate/key pattern.
func CertMissing(role, pattern, root string) *EntrypointError {
	return &EntrypointError{
		Code:     ErrCodeCertMissing,
		Message:  fmt.Sprintf("no %s found matching %q under %s", role, pattern, root),
		ExitCode: ExitConfig,
		Details:  map[string]any{"role": role, "pattern": pattern, "root": root},
	}
}

// CertAmbiguous creates an error for multiple matches of a certificate/key
// pattern. Every candidate is enumerated so the operator can pick one via
// the explicit override.
func CertAmbiguous(role, overrideVar string, candidates []string) *EntrypointError {
	return &EntrypointError{
		Code:     ErrCodeCertAmbiguous,
		Message:  fmt.Sprintf("found %d candidate %ss: %v. Set %s to select one.", len(candidates), role, candidates, overrideVar),
		ExitCode: ExitConfig,
		Details:  map[string]any{"role": role, "candidates": candidates},
	}
}

// CertInvalid creates an error for a resolved path that is not a readable
// regular file. Distinct from CertMissing: the path was found or declared,
// but is unusable.
func CertInvalid(role, path string, cause error) *EntrypointError {
	return &EntrypointError{
		Code:     ErrCodeCertInvalid,
		Message:  fmt.Sprintf("%s path %s is not a readable regular file", role, path),
		ExitCode: ExitConfig,
		Details:  map[string]any{"role": role, "path": path},
		Cause:    cause,
	}
}

// InvalidFormat creates an error for a malformed environment value.
func InvalidFormat(field, expectedFormat string) *EntrypointError {
	return &EntrypointError{
		Code:     ErrCodeInvalidFormat,
		Message:  fmt.Sprintf("invalid value for %s, expected %s", field, expectedFormat),
		ExitCode: ExitConfig,
		Details:  map[string]any{"field": field, "expected_format": expectedFormat},
	}
}

// MissingField creates an error for a missing required field.
func MissingField(field string) *EntrypointError {
	return &EntrypointError{
		Code:     ErrCodeMissingField,
		Message:  fmt.Sprintf("missing required field: %s", field),
		ExitCode: ExitConfig,
		Details:  map[string]any{"field": field},
	}
}

// Validation creates an error for struct validation failures.
func Validation(message string) *EntrypointError {
	return &EntrypointError{
		Code:     ErrCodeInvalidInput,
		Message:  message,
		ExitCode: ExitConfig,
	}
}

// ChildStartFailed creates an error for a server process that could not be
// spawned.
func ChildStartFailed(binary string, cause error) *EntrypointError {
	return &EntrypointError{
		Code:     ErrCodeChildStartFailed,
		Message:  fmt.Sprintf("failed to start server process %q", binary),
		ExitCode: ExitSpawn,
		Details:  map[string]any{"binary": binary},
		Cause:    cause,
	}
}

// ChildCrashed creates an error for a server process that exited non-zero
// without a preceding termination signal. Its exit code is propagated
// unchanged.
func ChildCrashed(exitCode int) *EntrypointError {
	return &EntrypointError{
		Code:     ErrCodeChildCrashed,
		Message:  fmt.Sprintf("server process exited with status %d", exitCode),
		ExitCode: exitCode,
		Details:  map[string]any{"exit_code": exitCode},
	}
}
