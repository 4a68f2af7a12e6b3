// Package outcome defines the result codes returned by store mutations.
//
// Store operations never fail for external reasons; the only ways a call can
// do nothing are an unknown id or a policy refusal. A Result makes that
// visible to the caller instead of leaving it to be inferred from unchanged
// state.
package outcome

import "errors"

// Result reports what a store mutation did.
type Result int

const (
	// OK means the mutation was applied.
	OK Result = iota
	// NotFound means the referenced id does not exist in the store.
	NotFound
	// AlreadyExists means the entry was already present; nothing changed.
	AlreadyExists
	// RefusedNative means the native language cannot be removed.
	RefusedNative
	// Invalid means the input was outside the accepted range.
	Invalid
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrRefusedNative = errors.New("native language cannot be removed")
	ErrInvalid       = errors.New("invalid value")
)

// String returns a stable label for the result.
func (r Result) String() string {
	switch r {
	case OK:
		return "ok"
	case NotFound:
		return "not_found"
	case AlreadyExists:
		return "already_exists"
	case RefusedNative:
		return "refused_native"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// OK reports whether the mutation was applied.
func (r Result) OK() bool { return r == OK }

// Err maps a non-OK result onto its sentinel error. OK maps to nil.
func (r Result) Err() error {
	switch r {
	case OK:
		return nil
	case NotFound:
		return ErrNotFound
	case AlreadyExists:
		return ErrAlreadyExists
	case RefusedNative:
		return ErrRefusedNative
	case Invalid:
		return ErrInvalid
	default:
		return errors.New("unknown result")
	}
}
