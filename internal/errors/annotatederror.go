package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// annotatedError includes more context than a plain error that is useful for troubleshooting.
type annotatedError struct {
	// msg is the error message.
	msg string
	// pc is the program counter for the location of the error provided by runtime.Callers.
	pc uintptr
	// attrs are slog attributes that are added to the log event to provide more context for the error.
	attrs []slog.Attr
	// wrapped is the cause, nil for errors created with New.
	wrapped error
}

func newAnnotatedError(msg string, wrapped error, attrs []slog.Attr) *annotatedError {
	var pcs [1]uintptr
	// Skip runtime.Callers, this function and the exported constructor.
	runtime.Callers(3, pcs[:]) //nolint:mnd // see above
	return &annotatedError{
		msg:     msg,
		pc:      pcs[0],
		attrs:   attrs,
		wrapped: wrapped,
	}
}

// New creates a new error annotated with the call site and the given attributes.
func New(msg string, attrs ...slog.Attr) error {
	return newAnnotatedError(msg, nil, attrs)
}

// NewSentinel creates a plain error without other context that can be used as sentinel error that can be
// detected with errors.Is.
func NewSentinel(msg string) error {
	return errors.New(msg)
}

// Wrap adds a message, the call site and attributes to err. Wrap returns nil if err is nil.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	return newAnnotatedError(msg, err, attrs)
}

// Error implements error interface.
func (e *annotatedError) Error() string {
	if e.wrapped == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %s", e.msg, e.wrapped.Error())
}

// Unwrap returns the wrapped error.
func (e *annotatedError) Unwrap() error {
	return e.wrapped
}

func (e *annotatedError) source() string {
	frames := runtime.CallersFrames([]uintptr{e.pc})
	frame, _ := frames.Next()
	return fmt.Sprintf("%s:%d", frame.File, frame.Line)
}

// LogValue formats the error for useful logging.
func (e *annotatedError) LogValue() slog.Value {
	attrs := append(
		[]slog.Attr{slog.String("source", e.source())},
		e.attrs...,
	)
	return slog.GroupValue(attrs...)
}

// SlogError returns an attribute that logs the full error message together with the sources and attributes
// of every annotated error in the chain.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	attrs := []slog.Attr{slog.String("message", err.Error())}
	var trace []string
	walk(err, func(e *annotatedError) {
		trace = append(trace, e.source())
		attrs = append(attrs, e.attrs...)
	})
	if len(trace) > 0 {
		attrs = append(attrs, slog.Any("trace", trace))
	}
	return slog.Attr{Key: "error", Value: slog.GroupValue(attrs...)}
}

// walk visits the annotated errors in the chain of err depth-first, including joined errors.
func walk(err error, visit func(*annotatedError)) {
	for err != nil {
		if e, ok := err.(*annotatedError); ok { //nolint:errorlint // we want exactly this node
			visit(e)
		}
		if joined, ok := err.(interface{ Unwrap() []error }); ok { //nolint:errorlint // see above
			for _, inner := range joined.Unwrap() {
				walk(inner, visit)
			}
			return
		}
		err = errors.Unwrap(err)
	}
}

// As exposes stdlib errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is exposes stdlib errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Unwrap exposes stdlib errors.Unwrap.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Join exposes stdlib errors.Join.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
