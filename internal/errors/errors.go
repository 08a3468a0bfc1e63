// Package errors provides structured error types for the gemini-ui installer.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Error codes for installer operations.
const (
	// Packaging errors
	CodeAssetMissing = "PKG_001" // Canonical skill asset not shipped with the binary
	CodeAssetInvalid = "PKG_002" // Canonical skill asset has a broken manifest

	// Credential errors
	CodeSecretRejected    = "CRED_001" // Secret failed remote validation
	CodeSecretInterrupted = "CRED_002" // Secret entry cancelled with Ctrl-C

	// Registration errors
	CodeRegistrationFailed = "REG_001" // Host CLI exited non-zero
	CodeHostLaunchFailed   = "REG_002" // Host CLI could not be started

	// Config errors
	CodeConfigParse        = "CONFIG_001" // Config file could not be decoded
	CodeConfigInvalidValue = "CONFIG_002" // Invalid value

	// IO errors
	CodeIOFileNotFound = "IO_001" // File not found
	CodeIOPermission   = "IO_002" // Permission denied
	CodeIOReadError    = "IO_004" // Read error
	CodeIOWriteError   = "IO_005" // Write error
)

// InstallError is the structured error type for installer operations.
type InstallError struct {
	Code    string         `json:"code"`              // Error code (e.g., "PKG_001")
	Message string         `json:"message"`           // Human-readable message
	Details map[string]any `json:"details,omitempty"` // Context (path, scope, etc.)
	Cause   error          `json:"-"`                 // Wrapped error (not serialized)
}

// Error implements the error interface.
func (e *InstallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *InstallError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error.
func (e *InstallError) WithDetail(key string, value any) *InstallError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause wraps an underlying error.
func (e *InstallError) WithCause(err error) *InstallError {
	e.Cause = err
	return e
}

// MarshalJSON implements json.Marshaler with cause error message.
func (e *InstallError) MarshalJSON() ([]byte, error) {
	type alias InstallError
	aux := struct {
		*alias
		CauseMsg string `json:"cause,omitempty"`
	}{
		alias: (*alias)(e),
	}
	if e.Cause != nil {
		aux.CauseMsg = e.Cause.Error()
	}
	return json.Marshal(aux)
}

// New creates a new InstallError.
func New(code, message string) *InstallError {
	return &InstallError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new InstallError with formatted message.
func Newf(code, format string, args ...any) *InstallError {
	return &InstallError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with an InstallError.
func Wrap(code, message string, err error) *InstallError {
	return &InstallError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// --- Packaging Errors ---

// AssetMissing creates an error for a skill asset that was not packaged.
func AssetMissing(path string, err error) *InstallError {
	return Wrap(CodeAssetMissing, "skill template not found in package", err).
		WithDetail("path", path)
}

// AssetInvalid creates an error for a packaged skill asset with a broken manifest.
func AssetInvalid(path, reason string) *InstallError {
	return Newf(CodeAssetInvalid, "packaged skill template is invalid: %s", reason).
		WithDetail("path", path).
		WithDetail("reason", reason)
}

// --- Credential Errors ---

// SecretRejected creates an error for a secret that could not be confirmed.
func SecretRejected(variable string) *InstallError {
	return Newf(CodeSecretRejected, "%s could not be confirmed as a valid key", variable).
		WithDetail("variable", variable)
}

// SecretInterrupted creates an error for cancelled secret entry.
func SecretInterrupted() *InstallError {
	return New(CodeSecretInterrupted, "secret entry interrupted")
}

// --- Registration Errors ---

// RegistrationFailed creates an error for a host CLI that exited non-zero.
func RegistrationFailed(name string, exitCode int, stderr string) *InstallError {
	return Newf(CodeRegistrationFailed, "host CLI exited with status %d", exitCode).
		WithDetail("integration", name).
		WithDetail("exit_code", exitCode).
		WithDetail("stderr", stderr)
}

// HostLaunchFailed creates an error for a host CLI that could not be started.
func HostLaunchFailed(binary string, err error) *InstallError {
	return Wrap(CodeHostLaunchFailed, "could not start host CLI", err).
		WithDetail("binary", binary)
}

// --- Config Errors ---

// ConfigParse creates an error for an undecodable config file.
func ConfigParse(path string, err error) *InstallError {
	return Wrap(CodeConfigParse, "failed to parse config "+path, err).
		WithDetail("path", path)
}

// ConfigInvalidValue creates an error for invalid config value.
func ConfigInvalidValue(field string, value any, reason string) *InstallError {
	return Newf(CodeConfigInvalidValue, "invalid config value for %s: %s", field, reason).
		WithDetail("field", field).
		WithDetail("value", value).
		WithDetail("reason", reason)
}

// --- IO Errors ---

// IOFileNotFound creates an error for missing file.
func IOFileNotFound(path string) *InstallError {
	return Newf(CodeIOFileNotFound, "file not found: %s", path).
		WithDetail("path", path)
}

// IOPermissionDenied creates an error for permission issues.
func IOPermissionDenied(path string, err error) *InstallError {
	return Wrap(CodeIOPermission, "permission denied: "+path, err).
		WithDetail("path", path)
}

// IOReadError creates an error for read failures.
func IOReadError(path string, err error) *InstallError {
	return Wrap(CodeIOReadError, "failed to read "+path, err).
		WithDetail("path", path)
}

// IOWriteError creates an error for write failures.
func IOWriteError(path string, err error) *InstallError {
	return Wrap(CodeIOWriteError, "failed to write "+path, err).
		WithDetail("path", path)
}

// HasCode checks if an error is an InstallError with the given code.
// It handles wrapped errors by unwrapping to find an InstallError.
func HasCode(err error, code string) bool {
	var ierr *InstallError
	if errors.As(err, &ierr) {
		return ierr.Code == code
	}
	return false
}

// Code returns the error code if err is an InstallError, empty string otherwise.
func Code(err error) string {
	var ierr *InstallError
	if errors.As(err, &ierr) {
		return ierr.Code
	}
	return ""
}

// Report renders err for the terminal. Each InstallError shows its code and
// message; the raw cause follows on an indented line. Joined errors are
// reported one per line.
func Report(err error) string {
	var b strings.Builder
	report(&b, err)
	return strings.TrimRight(b.String(), "\n")
}

func report(b *strings.Builder, err error) {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			report(b, e)
		}
		return
	}

	var ierr *InstallError
	if !errors.As(err, &ierr) {
		b.WriteString(err.Error() + "\n")
		return
	}
	fmt.Fprintf(b, "[%s] %s\n", ierr.Code, ierr.Message)
	if ierr.Cause != nil {
		fmt.Fprintf(b, "  cause: %v\n", ierr.Cause)
	}
}
