package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind identifies which step of a transcription run failed.
type Kind int

const (
	KindUnknown Kind = iota
	// KindConfig covers missing or malformed credentials and settings.
	KindConfig
	// KindUpload covers failures while sending the audio to the remote service.
	KindUpload
	// KindGenerate covers failures of the generation request.
	KindGenerate
	// KindWrite covers local I/O failures while persisting the transcript.
	KindWrite
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindUpload:
		return "upload"
	case KindGenerate:
		return "generate"
	case KindWrite:
		return "write"
	default:
		return "unknown"
	}
}

// Common error types
var (
	ErrMissingAPIKey = New(KindConfig, "API key is required")
	ErrInvalidAPIKey = New(KindConfig, "invalid API key format")
	ErrInvalidConfig = New(KindConfig, "invalid configuration")

	ErrUploadFailed   = New(KindUpload, "upload failed")
	ErrGenerateFailed = New(KindGenerate, "generate content failed")
	ErrWriteFailed    = New(KindWrite, "file write failed")
)

// Error represents a standardized error
type Error struct {
	kind    Kind
	message string
	cause   error
}

// New creates a new error
func New(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

// Newf creates a new formatted error
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context
func Wrap(err error, kind Kind, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		kind:    kind,
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, kind Kind, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		kind:    kind,
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// WithCause returns a copy of e carrying cause, so the result still matches
// e with errors.Is.
func (e *Error) WithCause(cause error) error {
	return &Error{kind: e.kind, message: e.message, cause: cause}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Kind returns the step the error belongs to
func (e *Error) Kind() Kind {
	return e.kind
}

// Is matches errors of the same kind and message, so a wrapped
// ErrUploadFailed still satisfies errors.Is(err, ErrUploadFailed).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.kind == t.kind && e.message == t.message
}

// KindOf returns the kind of the outermost *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.kind
	}
	return KindUnknown
}

// Helper functions for common patterns

// InvalidFormat returns an error for invalid format
func InvalidFormat(field string, expected string) error {
	return Newf(KindConfig, "%s format invalid: expected %s", field, expected)
}

// TooShort returns an error for values that are too short
func TooShort(field string, minLength int) error {
	return Newf(KindConfig, "%s too short (minimum %d characters)", field, minLength)
}
