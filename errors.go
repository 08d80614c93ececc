// Package tensorcpu structured error types for configuration-time failures
package tensorcpu

import (
	"fmt"
)

// ErrorType represents categories of configuration errors
type ErrorType int

const (
	// Unsupported dtype/function/hardware combination
	ErrTypeUnsupported ErrorType = iota
	// Invalid argument errors
	ErrTypeInvalidArg
	// Execution setup errors
	ErrTypeExecution
)

// KernelError represents a structured error with context.
// Only configuration-time failures are reported this way; execution-time
// precondition violations are programming errors and panic instead.
type KernelError struct {
	Type    ErrorType
	Op      string // Operation that failed
	Message string // Human-readable message
	Err     error  // Underlying error if any
}

// Error implements the error interface
func (e *KernelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tensorcpu %s error in %s: %s (caused by: %v)",
			e.Type.String(), e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("tensorcpu %s error in %s: %s",
		e.Type.String(), e.Op, e.Message)
}

// Unwrap allows error chain inspection
func (e *KernelError) Unwrap() error {
	return e.Err
}

// String returns the error type as a string
func (t ErrorType) String() string {
	switch t {
	case ErrTypeUnsupported:
		return "UnsupportedConfiguration"
	case ErrTypeInvalidArg:
		return "InvalidArgument"
	case ErrTypeExecution:
		return "Execution"
	default:
		return "Unknown"
	}
}

// Common error constructors

// NewUnsupportedError creates an unsupported-configuration error
func NewUnsupportedError(op string, message string) error {
	return &KernelError{
		Type:    ErrTypeUnsupported,
		Op:      op,
		Message: message,
	}
}

// NewInvalidArgError creates an invalid argument error
func NewInvalidArgError(op string, message string) error {
	return &KernelError{
		Type:    ErrTypeInvalidArg,
		Op:      op,
		Message: message,
	}
}

// NewExecutionError creates an execution setup error
func NewExecutionError(op string, message string, err error) error {
	return &KernelError{
		Type:    ErrTypeExecution,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// IsUnsupportedError checks if an error is an unsupported-configuration error
func IsUnsupportedError(err error) bool {
	if e, ok := err.(*KernelError); ok {
		return e.Type == ErrTypeUnsupported
	}
	return false
}

// IsInvalidArgError checks if an error is an invalid argument error
func IsInvalidArgError(err error) bool {
	if e, ok := err.(*KernelError); ok {
		return e.Type == ErrTypeInvalidArg
	}
	return false
}
