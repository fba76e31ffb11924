// Package errors provides standardized error handling for dndbridge.
// It defines the error kinds, typed errors and helpers used by configuration
// loading, trace files and the command line. The drag-drop controller itself
// never returns errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Config error kinds
	InvalidConfig
	ConfigNotFound
	// Trace error kinds
	InvalidTrace
	TraceNotFound
	UnknownSignal
	// Sink error kinds
	InvalidPattern
)

// Common error constants for frequently occurring errors
var (
	ErrInvalidConfig = NewConfigError("invalid configuration", "", InvalidConfig, nil)
	ErrInvalidTrace  = NewTraceError("invalid trace", -1, InvalidTrace, nil)
	ErrUnknownSignal = NewTraceError("unknown signal", -1, UnknownSignal, nil)
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// TraceError represents errors related to signal trace files. Step is the
// zero-based index of the offending trace entry, or -1 when the error
// concerns the whole file.
type TraceError struct {
	ApplicationError
	step int
}

// NewTraceError creates a new trace error
func NewTraceError(msg string, step int, kind ErrorKind, err error) *TraceError {
	return &TraceError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		step: step,
	}
}

// Error returns the trace error message
func (e *TraceError) Error() string {
	if e.step >= 0 {
		if e.err != nil {
			return fmt.Sprintf("%s: step %d: %v", e.msg, e.step, e.err)
		}
		return fmt.Sprintf("%s: step %d", e.msg, e.step)
	}
	return e.ApplicationError.Error()
}

// Step returns the trace step associated with the error
func (e *TraceError) Step() int {
	return e.step
}

// NewPatternError creates an error for a path pattern that does not compile
func NewPatternError(pattern string, err error) error {
	return &ApplicationError{
		msg:  fmt.Sprintf("invalid pattern %q", pattern),
		err:  err,
		kind: InvalidPattern,
	}
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// KindOf returns the first known kind found in err's chain
func KindOf(err error) ErrorKind {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if k, ok := e.(interface{ Kind() ErrorKind }); ok && k.Kind() != Unknown {
			return k.Kind()
		}
	}
	return Unknown
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}

// IsInvalidTrace checks if the error is an invalid trace error
func IsInvalidTrace(err error) bool {
	var traceErr *TraceError
	if errors.As(err, &traceErr) {
		return traceErr.Kind() == InvalidTrace
	}
	return false
}

// IsUnknownSignal checks if the error reports an unknown signal name
func IsUnknownSignal(err error) bool {
	var traceErr *TraceError
	if errors.As(err, &traceErr) {
		return traceErr.Kind() == UnknownSignal
	}
	return false
}
