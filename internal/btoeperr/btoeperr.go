// Package btoeperr defines the closed error taxonomy every btoep operation
// fails with, plus the exit-code and message mapping the CLI shell applies.
package btoeperr

import (
	"errors"
	"fmt"
)

// Kind is a closed classification of what went wrong.
type Kind int

const (
	// KindUnspecified is never returned; it is the zero value guard.
	KindUnspecified Kind = iota
	KindIO
	KindDataConflict
	KindSizeTooSmall
	KindReadOutOfBounds
	KindMalformedIndex
	KindLockContention
	KindUsage
)

// Code returns the stable internal error identifier for kinds that have
// one. Codes 2 and 4 are reserved (never issued by this package), matching
// spec.md's error-code table.
func (k Kind) Code() int {
	switch k {
	case KindIO:
		return 1
	case KindSizeTooSmall:
		return 3
	case KindDataConflict:
		return 5
	case KindReadOutOfBounds:
		return 6
	default:
		return 0
	}
}

// Message returns the user-visible message for kinds that have a fixed one
// (spec.md §7). Kinds without a fixed message (KindMalformedIndex,
// KindLockContention, KindUsage) return "".
func (k Kind) Message() string {
	switch k {
	case KindDataConflict:
		return "Data conflicts with existing data"
	case KindSizeTooSmall:
		return "Size too small to contain data"
	case KindReadOutOfBounds:
		return "Read out of bounds"
	case KindIO:
		return "System input/output error"
	default:
		return ""
	}
}

// ExitCode returns the process exit code for errors of this kind.
// (find-offset's no-result outcome is not an error and is not covered here;
// see the dataset package's ErrNoResult-free return shape.)
func (k Kind) ExitCode() int {
	if k == KindUsage {
		return 2
	}

	return 3
}

// SystemCause names the underlying OS error btoeperr wraps, e.g.
// {"ENOENT", 2} or the Windows equivalent {"ERROR_FILE_NOT_FOUND", 2}.
type SystemCause struct {
	Name string
	Code int
}

// Error is the single error type every btoep operation returns on failure.
type Error struct {
	Kind   Kind
	Detail string       // optional human-readable detail, e.g. a path
	Cause  *SystemCause // optional OS error pair
	Err    error        // optional wrapped underlying error (for errors.Unwrap)
}

// New creates an *Error of the given kind with an optional detail string.
func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// Wrap creates an *Error of the given kind wrapping err, attaching err's
// system cause pair if err carries one (see [SystemCauseOf]).
func Wrap(kind Kind, detail string, err error) *Error {
	e := &Error{Kind: kind, Detail: detail, Err: err}
	if cause, ok := SystemCauseOf(err); ok {
		e.Cause = &cause
	}

	return e
}

func (e *Error) Error() string {
	msg := e.Kind.Message()
	if msg == "" {
		msg = e.Detail
	} else if e.Detail != "" {
		msg = msg + ": " + e.Detail
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same [Kind] (errors.Is
// support). A bare *Error{Kind: k} (no detail/cause) works as a sentinel:
// errors.Is(err, btoeperr.New(btoeperr.KindDataConflict, "")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Kind == e.Kind
}

// As implements a convenience target type check: errors.As(err, &kind)
// extracts e.Kind into *kind.
func As(err error, kind *Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}

	*kind = e.Kind

	return true
}
