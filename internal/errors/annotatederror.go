// Package errors extends the standard library errors with slog annotations and the source location where an error
// was created or wrapped.
//
// Use NewSentinel for package level sentinel values and New or Wrap everywhere else. SlogError turns any error into a
// single slog attribute that carries the message, the collected annotations, and the innermost source location.
package errors

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
)

// annotatedError carries slog attributes and the source location of its creation.
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

// New creates an error annotated with attrs and the caller's source location.
func New(msg string, attrs ...slog.Attr) error {
	return &annotatedError{msg: msg, err: nil, attrs: attrs, source: callerSource(1)}
}

// NewSentinel creates a plain error for comparison with Is. It carries no source location because sentinels are
// declared at package level.
func NewSentinel(msg string) error {
	return stderrors.New(msg) //nolint:err113 // sentinel constructor.
}

// Wrap annotates err with a message, attrs, and the caller's source location. The message is prefixed to
// err.Error() like fmt.Errorf("msg: %w", err) does.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	return &annotatedError{msg: msg, err: err, attrs: attrs, source: callerSource(1)}
}

// DecoratePanic converts a recovered panic value into an error pointing at the panicking line. It returns nil when
// v is nil.
func DecoratePanic(v any) error {
	if v == nil {
		return nil
	}
	source := panicSource()
	if err, ok := v.(error); ok {
		return &annotatedError{msg: "panic", err: err, attrs: nil, source: source}
	}
	return &annotatedError{msg: fmt.Sprintf("panic: %v", v), err: nil, attrs: nil, source: source}
}

// SlogError returns the error as a slog group holding the message, the annotations of every annotated error in the
// chain, and the source location of the innermost annotated error.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}

	var (
		annotations []any
		source      string
	)
	walk(err, func(e error) {
		annotated, ok := e.(*annotatedError) //nolint:errorlint // walk visits every error in the chain.
		if !ok {
			return
		}
		for _, a := range annotated.attrs {
			annotations = append(annotations, a)
		}
		source = annotated.source
	})

	attrs := []any{slog.String("message", err.Error())}
	if len(annotations) > 0 {
		attrs = append(attrs, slog.Group("annotations", annotations...))
	}
	if source != "" {
		attrs = append(attrs, slog.String("source", source))
	}
	return slog.Group("error", attrs...)
}

// walk visits err and every error reachable through Unwrap, depth first, outermost first.
func walk(err error, visit func(error)) {
	if err == nil {
		return
	}
	visit(err)
	switch u := err.(type) { //nolint:errorlint // walking the chain by hand.
	case interface{ Unwrap() []error }:
		for _, inner := range u.Unwrap() {
			walk(inner, visit)
		}
	case interface{ Unwrap() error }:
		walk(u.Unwrap(), visit)
	}
}

func callerSource(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return ""
	}
	return file + ":" + strconv.Itoa(line)
}

// panicSource finds the frame that called panic by looking for the first frame after runtime.gopanic.
func panicSource() string {
	const maxDepth = 32
	pcs := make([]uintptr, maxDepth)
	n := runtime.Callers(2, pcs) //nolint:mnd // skip runtime.Callers and panicSource.
	frames := runtime.CallersFrames(pcs[:n])

	var fallback string
	afterPanic := false
	for {
		frame, more := frames.Next()
		switch {
		case frame.Function == "runtime.gopanic":
			afterPanic = true
		case strings.HasPrefix(frame.Function, "runtime."):
		case afterPanic:
			return frame.File + ":" + strconv.Itoa(frame.Line)
		case fallback == "" && !strings.HasSuffix(frame.File, "annotatederror.go"):
			fallback = frame.File + ":" + strconv.Itoa(frame.Line)
		}
		if !more {
			return fallback
		}
	}
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err.
func Unwrap(err error) error {
	return stderrors.Unwrap(err)
}

// Join returns an error that wraps the given errors, discarding nils.
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}
