// Package errors is a drop-in replacement for the standard library errors package that adds
// structured annotations and source locations for logging with [log/slog].
package errors

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"
	"strconv"
)

// annotatedError carries a message, the source location where it was created, and optional slog attributes.
type annotatedError struct {
	msg    string
	err    error
	attrs  []slog.Attr
	source string
}

func (e *annotatedError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

func (e *annotatedError) Unwrap() error {
	return e.err
}

// New is [errors.New].
func New(text string) error {
	return stderrors.New(text) //nolint:err113 // this is the wrapped constructor.
}

// NewSentinel creates an error meant to be declared as a package level variable and compared with [Is].
func NewSentinel(text string) error {
	return stderrors.New(text) //nolint:err113 // sentinel constructor.
}

// Is is [errors.Is].
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As is [errors.As].
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Unwrap is [errors.Unwrap].
func Unwrap(err error) error {
	return stderrors.Unwrap(err)
}

// Join is [errors.Join].
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}

// Wrap annotates err with msg, the caller's source location and the given attributes.
//
// Wrap returns nil if err is nil.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	return &annotatedError{
		msg:    msg,
		err:    err,
		attrs:  attrs,
		source: callerSource(2), //nolint:mnd // skip Wrap and callerSource.
	}
}

// DecoratePanic converts a recovered panic value to an error pointing at the line that panicked.
//
// It must be called from the deferred function that recovered the panic.
func DecoratePanic(excp any) error {
	if excp == nil {
		return nil
	}
	cause, ok := excp.(error)
	if !ok {
		cause = stderrors.New(fmt.Sprint(excp)) //nolint:err113 // dynamic panic message.
	}
	return &annotatedError{
		msg:    "panic",
		err:    cause,
		attrs:  []slog.Attr{slog.String("stack", string(debug.Stack()))},
		source: panicSource(),
	}
}

// SlogError returns a structured attribute describing err including its annotations and source.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Any("error", nil)
	}

	var (
		annotations []slog.Attr
		source      string
	)
	collectAnnotations(err, &annotations, &source)

	attrs := []any{slog.String("message", err.Error())}
	if len(annotations) > 0 {
		group := make([]any, 0, len(annotations))
		for _, a := range annotations {
			group = append(group, a)
		}
		attrs = append(attrs, slog.Group("annotations", group...))
	}
	if source != "" {
		attrs = append(attrs, slog.String("source", source))
	}
	return slog.Group("error", attrs...)
}

// collectAnnotations walks the error tree. The innermost source location wins.
func collectAnnotations(err error, annotations *[]slog.Attr, source *string) {
	if err == nil {
		return
	}
	if ae, ok := err.(*annotatedError); ok { //nolint:errorlint // walking the tree manually.
		*annotations = append(*annotations, ae.attrs...)
		if ae.source != "" {
			*source = ae.source
		}
		collectAnnotations(ae.err, annotations, source)
		return
	}
	switch x := err.(type) { //nolint:errorlint // walking the tree manually.
	case interface{ Unwrap() []error }:
		for _, e := range x.Unwrap() {
			collectAnnotations(e, annotations, source)
		}
	case interface{ Unwrap() error }:
		collectAnnotations(x.Unwrap(), annotations, source)
	}
}

func callerSource(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return file + ":" + strconv.Itoa(line)
}

// panicSource finds the frame right after runtime.gopanic in the current stack.
func panicSource() string {
	pcs := make([]uintptr, 32) //nolint:mnd // deep enough for any recover chain.
	n := runtime.Callers(1, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	afterPanic := false
	for {
		frame, more := frames.Next()
		if afterPanic {
			return frame.File + ":" + strconv.Itoa(frame.Line)
		}
		if frame.Function == "runtime.gopanic" {
			afterPanic = true
		}
		if !more {
			break
		}
	}
	return callerSource(3) //nolint:mnd // not in a panic, fall back to the caller of DecoratePanic.
}
