package errors

import (
	"errors"
	"fmt"
	"maps"
)

// Error is a coded error with an optional cause and metadata
type Error struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Cause   error          `json:"-"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same code, so errors.Is(err, NotFound(""))
// asks "is this a not-found" regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	return errors.As(target, &t) && t.Code == e.Code
}

// WithMeta attaches a detail that ToHTTP exposes to the caller
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any, 1)
	}
	e.Meta[key] = value
	return e
}

// WithMetaMap attaches several details at once
func (e *Error) WithMetaMap(meta map[string]any) *Error {
	if len(meta) == 0 {
		return e
	}
	if e.Meta == nil {
		e.Meta = make(map[string]any, len(meta))
	}
	maps.Copy(e.Meta, meta)
	return e
}

// New creates an error with the given code
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with a formatted message
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap annotates err. A coded cause keeps its code and metadata; anything
// else (driver errors, JSON failures) becomes Internal.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}
	code := CodeInternal
	var coded *Error
	if errors.As(err, &coded) {
		code = coded.Code
	}
	return wrap(err, code, message)
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, format string, args ...any) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode annotates err and replaces its code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}
	return wrap(err, code, message)
}

// WrapWithCodef is WrapWithCode with a formatted message
func WrapWithCodef(err error, code Code, format string, args ...any) *Error {
	return WrapWithCode(err, code, fmt.Sprintf(format, args...))
}

func wrap(err error, code Code, message string) *Error {
	wrapped := &Error{Code: code, Message: message, Cause: err}
	var coded *Error
	if errors.As(err, &coded) && len(coded.Meta) > 0 {
		wrapped.Meta = maps.Clone(coded.Meta)
	}
	return wrapped
}

// NotFound reports an unknown run, monster or cache entry
func NotFound(message string) *Error { return New(CodeNotFound, message) }

// NotFoundf is NotFound with a formatted message
func NotFoundf(format string, args ...any) *Error { return Newf(CodeNotFound, format, args...) }

// InvalidArgument reports a malformed or missing field
func InvalidArgument(message string) *Error { return New(CodeInvalidArgument, message) }

// InvalidArgumentf is InvalidArgument with a formatted message
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// AlreadyExistsf reports a duplicate id
func AlreadyExistsf(format string, args ...any) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

// FailedPrecondition reports an operation illegal for the current run status
func FailedPrecondition(message string) *Error { return New(CodeFailedPrecondition, message) }

// FailedPreconditionf is FailedPrecondition with a formatted message
func FailedPreconditionf(format string, args ...any) *Error {
	return Newf(CodeFailedPrecondition, format, args...)
}

// Aborted reports a write against a stale run version
func Aborted(message string) *Error { return New(CodeAborted, message) }

// Abortedf is Aborted with a formatted message
func Abortedf(format string, args ...any) *Error { return Newf(CodeAborted, format, args...) }

// Internal reports a bug or a store failure the caller cannot fix
func Internal(message string) *Error { return New(CodeInternal, message) }

// Internalf is Internal with a formatted message
func Internalf(format string, args ...any) *Error { return Newf(CodeInternal, format, args...) }

// Unavailable reports a dependency that is not reachable or not ready
func Unavailable(message string) *Error { return New(CodeUnavailable, message) }
