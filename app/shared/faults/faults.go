// Package faults is the error taxonomy exposed at the service seam.
// Interactor-level sentinel errors are translated here into one of three
// externally visible kinds; callers outside the application layer never see
// raw storage errors.
package faults

import "errors"

// Kind classifies a fault for the outer layers.
type Kind string

const (
	KindConflict Kind = "conflict"
	KindNotFound Kind = "not_found"
	KindInternal Kind = "internal"
)

// Fault is a classified application error. The cause is retained for logging
// but Error() deliberately reveals only the fault's own message, so internal
// detail does not leak through the service boundary.
type Fault struct {
	kind  Kind
	msg   string
	cause error
}

func newFault(kind Kind, msg string, cause error) *Fault {
	return &Fault{kind: kind, msg: msg, cause: cause}
}

// Conflict builds a conflict-class fault.
func Conflict(msg string, cause error) *Fault { return newFault(KindConflict, msg, cause) }

// NotFound builds a not-found-class fault.
func NotFound(msg string, cause error) *Fault { return newFault(KindNotFound, msg, cause) }

// Internal builds an opaque internal fault.
func Internal(msg string, cause error) *Fault { return newFault(KindInternal, msg, cause) }

func (f *Fault) Error() string { return f.msg }

func (f *Fault) Unwrap() error { return f.cause }

func (f *Fault) Kind() Kind { return f.kind }

// KindOf returns the fault kind of err, or KindInternal when err carries no
// classification. A nil error has no kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var f *Fault
	if errors.As(err, &f) {
		return f.kind
	}
	return KindInternal
}
