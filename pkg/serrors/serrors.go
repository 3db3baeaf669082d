// Package serrors provides semantic error kinds used across the harvester.
// A Kind is a comparable sentinel; the Error wrapper attaches a kind to an
// optional cause and message while staying compatible with errors.Is/As.
package serrors

import (
	"errors"
	"fmt"
)

// Kind is a marker interface implemented by all semantic error kinds created
// with NewKind. It allows distinguishing semantic kinds from ordinary errors.
type Kind interface {
	error
	isKind()
}

type kind struct{ s string }

func (k kind) Error() string { return k.s }
func (k kind) isKind()       {}

// NewKind creates a new semantic error kind (a sentinel) with the provided
// name. Kinds are comparable and can be used with errors.Is/As through the
// serrors.Error wrapper.
func NewKind(name string) Kind { return kind{s: name} }

// Default kinds cover the failure taxonomy of a harvest run. Steady-state
// crawling only ever produces the first three; ErrConfig is fatal at startup.
var (
	// ErrTransient indicates a retryable network-level condition: timeout,
	// connection reset, HTTP 429 or 5xx. The fetcher retries these with
	// backoff before giving up.
	ErrTransient = NewKind("TRANSIENT")
	// ErrFetchFailed indicates a URL yielded no usable content after the
	// retry policy was exhausted or a non-retryable status was returned.
	ErrFetchFailed = NewKind("FETCH_FAILED")
	// ErrMalformedContent indicates a response that is not text/html or
	// cannot be interpreted as a page; the URL is treated as an empty page.
	ErrMalformedContent = NewKind("MALFORMED_CONTENT")
	// ErrProvider indicates a search provider call failed or returned an
	// unparseable result page; that provider's contribution is empty.
	ErrProvider = NewKind("PROVIDER")
	// ErrRateLimited indicates the remote side answered with HTTP 429.
	ErrRateLimited = NewKind("RATE_LIMITED")
	// ErrConfig indicates invalid configuration (unknown engine, empty query
	// list, nonsensical budgets). It is surfaced before the run starts.
	ErrConfig = NewKind("CONFIG")
	// ErrNotFound indicates a requested entity (file, record) was not found.
	ErrNotFound = NewKind("NOT_FOUND")
)

// Error represents a semantic error carrying a kind (sentinel), an optional
// wrapped cause and an optional message. It fully supports errors.Is,
// errors.As and unwrapping: matching succeeds against either the kind
// sentinel or the wrapped cause.
type Error struct {
	kind Kind
	err  error
	msg  string
}

// With constructs a new semantic error with the given kind and a formatted
// message. Use Wrap if you also want to wrap a concrete cause.
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Wrap constructs a new semantic error with the given kind, wrapping the
// provided cause and attaching a formatted message.
func Wrap(k Kind, err error, msgFmt string, args ...any) *Error {
	return &Error{kind: k, err: err, msg: fmt.Sprintf(msgFmt, args...)}
}

// KindOnly creates a semantic error carrying only the kind.
func KindOnly(k Kind) *Error { return &Error{kind: k} }

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	default:
		if e.kind != nil {
			return e.kind.Error()
		}

		return "unknown error"
	}
}

// Unwrap returns the wrapped cause, enabling errors.Unwrap/Is/As to traverse
// the underlying chain.
func (e *Error) Unwrap() error { return e.err }

// Is matches against either the semantic kind sentinel or the wrapped cause.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}
	if e.kind != nil && errors.Is(e.kind, target) {
		return true
	}
	if e.err != nil && errors.Is(e.err, target) {
		return true
	}

	return false
}

// As matches type assertions against either the kind sentinel or the wrapped
// cause.
func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}
	if e.kind != nil && errors.As(e.kind, target) {
		return true
	}
	if e.err != nil && errors.As(e.err, target) {
		return true
	}

	return false
}

// Kind returns the semantic kind sentinel associated with this error, or nil.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the message attached to this error.
func (e *Error) Message() string { return e.msg }

// Cause returns the wrapped cause (may be nil).
func (e *Error) Cause() error { return e.err }
