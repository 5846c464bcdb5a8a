// Package errors provides domain-specific error types for the keen-tap application.
//
// Every failure surfaced by the tap engine belongs to a closed set of codes. Errors carry
// structured context (interface name, sysctl key) so callers never need to inspect the
// message text to decide what happened.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of error that can occur in the application.
type ErrorCode string

const (
	// ErrCodeTransport indicates a failure on the kernel control channel (netlink).
	ErrCodeTransport ErrorCode = "TRANSPORT_ERROR"

	// ErrCodeSysctl indicates a failure reading or writing a system control key.
	ErrCodeSysctl ErrorCode = "SYSCTL_ERROR"

	// ErrCodeIO indicates a generic operating system failure.
	ErrCodeIO ErrorCode = "IO_ERROR"

	// ErrCodeNotFound indicates that no interface with the given name exists.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeConfig indicates a configuration-related error.
	ErrCodeConfig ErrorCode = "CONFIG_ERROR"

	// ErrCodeValidation indicates a validation error.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
)

// Error represents a domain-specific error with an error code and optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	// Interface is the interface the failing operation targeted, if any.
	Interface string
	// Key is the sysctl key for ErrCodeSysctl errors.
	Key   string
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a new domain error with the specified code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewTransportError creates a netlink transport error for the given interface.
func NewTransportError(iface string, message string, cause error) *Error {
	err := Wrap(ErrCodeTransport, message, cause)
	err.Interface = iface
	return err
}

// NewSysctlError creates a sysctl error carrying the control key name.
func NewSysctlError(key string, message string, cause error) *Error {
	err := Wrap(ErrCodeSysctl, fmt.Sprintf("%s (%s)", message, key), cause)
	err.Key = key
	return err
}

// NewIOError creates a generic OS-level error.
func NewIOError(message string, cause error) *Error {
	return Wrap(ErrCodeIO, message, cause)
}

// NewNotFoundError reports that the named interface does not exist.
func NewNotFoundError(iface string) *Error {
	err := New(ErrCodeNotFound, fmt.Sprintf("interface %s not found", iface))
	err.Interface = iface
	return err
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string, cause error) *Error {
	return Wrap(ErrCodeConfig, message, cause)
}

// NewValidationError creates a new validation error.
func NewValidationError(message string, cause error) *Error {
	return Wrap(ErrCodeValidation, message, cause)
}

// CodeOf returns the code of the outermost domain error in the chain, or "" if there is none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsNotFound reports whether err is an interface not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, &Error{Code: ErrCodeNotFound})
}

// IsSysctl reports whether err is a sysctl error.
func IsSysctl(err error) bool {
	return errors.Is(err, &Error{Code: ErrCodeSysctl})
}

// IsTransport reports whether err is a netlink transport error.
func IsTransport(err error) bool {
	return errors.Is(err, &Error{Code: ErrCodeTransport})
}
