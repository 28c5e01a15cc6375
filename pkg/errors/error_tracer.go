package errors

import "github.com/pkg/errors"

// StackTracer is satisfied by errors carrying a recorded stack trace.
type StackTracer interface {
	StackTrace() errors.StackTrace
}

// ErrorTracer labels an underlying error with an operation name while keeping
// its stack trace reachable through Unwrap.
type ErrorTracer struct {
	Message string
	Err     error
}

// NewTracer creates a tracer labelled with the given operation name. The
// underlying error is attached with Wrap.
func NewTracer(message string) *ErrorTracer {
	return &ErrorTracer{Message: message}
}

// TracerFromError labels a tracer with the error's own message.
func TracerFromError(err error) *ErrorTracer {
	return NewTracer(err.Error()).Wrap(err)
}

// Wrap attaches the underlying error, recording a stack trace at the call
// site unless the error already carries one.
func (e *ErrorTracer) Wrap(err error) *ErrorTracer {
	if _, ok := err.(StackTracer); ok {
		e.Err = err
	} else {
		e.Err = errors.WithStack(err)
	}
	return e
}

func (e *ErrorTracer) Error() string {
	return e.Message
}

func (e *ErrorTracer) Unwrap() error {
	return e.Err
}

// StackTrace exposes the underlying error's stack trace, or nil when none
// was recorded.
func (e *ErrorTracer) StackTrace() errors.StackTrace {
	if traced, ok := e.Unwrap().(StackTracer); ok {
		return traced.StackTrace()
	}
	return nil
}
