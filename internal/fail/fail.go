// Package fail defines the kinds of error that end a generation run.
// Callers branch on the kind with errors.Is.
package fail

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrUnsupportedInput  = errors.New("unsupported input")
	ErrArtifactExists    = errors.New("artifact exists")
	ErrSamplingExhausted = errors.New("sampling exhausted")
)

type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *Error) Unwrap() error { return e.Kind }

func New(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) error {
	return New(ErrValidation, format, args...)
}

func Unsupported(format string, args ...any) error {
	return New(ErrUnsupportedInput, format, args...)
}

func Exists(path string) error {
	return New(ErrArtifactExists, "%s", path)
}

func Exhausted(format string, args ...any) error {
	return New(ErrSamplingExhausted, format, args...)
}

// Kind returns the kind of err, or nil if err carries none.
func Kind(err error) error {
	for _, kind := range [...]error{
		ErrValidation,
		ErrUnsupportedInput,
		ErrArtifactExists,
		ErrSamplingExhausted,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
