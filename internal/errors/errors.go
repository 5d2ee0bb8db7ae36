package errors

import (
	"errors"
	"fmt"
	"maps"
)

// Error is a coded failure raised while generating, storing or serving a slot.
// Meta carries structured context (generator name, attempts, player index)
// that survives the trip through gRPC status details.
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
// works regardless of message.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// WithMeta sets key on this error only. Wrappers own their map, so the
// cause is never modified.
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any, 1)
	}
	e.Meta[key] = value
	return e
}

// New creates an error with the given code.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf is New with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap adds message to err. A coded cause keeps its code and a copy of its
// metadata; anything else becomes CodeInternal.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}
	code, meta := inherit(err)
	if code == "" {
		code = CodeInternal
	}
	return &Error{Code: code, Message: message, Cause: err, Meta: meta}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...any) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps err under an explicit code, still carrying a copy of
// the cause's metadata.
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}
	_, meta := inherit(err)
	if meta == nil {
		meta = make(map[string]any)
	}
	return &Error{Code: code, Message: message, Cause: err, Meta: meta}
}

// inherit returns the code of the first *Error in err's chain and a private
// copy of its metadata.
func inherit(err error) (Code, map[string]any) {
	var coded *Error
	if !errors.As(err, &coded) {
		return "", nil
	}
	return coded.Code, maps.Clone(coded.Meta)
}

// NotFound reports a missing slot or run.
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// InvalidArgument reports a rejected option, layout or request field.
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf is InvalidArgument with a formatted message.
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// Internal reports a storage or transport failure.
func Internal(message string) *Error {
	return New(CodeInternal, message)
}

// Internalf is Internal with a formatted message.
func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

// ResourceExhaustedf reports a bounded loop or limit that ran out.
func ResourceExhaustedf(format string, args ...any) *Error {
	return Newf(CodeResourceExhausted, format, args...)
}

// FailedPrecondition reports state that does not allow the call.
func FailedPrecondition(message string) *Error {
	return New(CodeFailedPrecondition, message)
}

// FailedPreconditionf is FailedPrecondition with a formatted message.
func FailedPreconditionf(format string, args ...any) *Error {
	return Newf(CodeFailedPrecondition, format, args...)
}

// Unavailablef reports a backend that could not be reached.
func Unavailablef(format string, args ...any) *Error {
	return Newf(CodeUnavailable, format, args...)
}
