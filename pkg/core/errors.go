package core

import (
	"errors"
	"fmt"
)

// Failure kinds recovered inside the Store. Neither is ever returned to a
// caller of a store operation; they reach operators through Diagnostic.
var (
	// ErrReadCorruption marks a slot value that could not be read or decoded.
	ErrReadCorruption = errors.New("notes collection is unreadable")

	// ErrWriteFailure marks a slot that rejected a write (quota, I/O, network).
	ErrWriteFailure = errors.New("notes collection write failed")
)

// Diagnostic describes a failure the Store swallowed.
type Diagnostic struct {
	Kind error  // ErrReadCorruption or ErrWriteFailure
	Op   string // store operation that hit the failure (list, create, ...)
	Key  string // slot key
	Err  error  // underlying cause
}

func (d Diagnostic) Error() string {
	if d.Err == nil {
		return fmt.Sprintf("%s: %v (key %q)", d.Op, d.Kind, d.Key)
	}
	return fmt.Sprintf("%s: %v (key %q): %v", d.Op, d.Kind, d.Key, d.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (d Diagnostic) Unwrap() []error {
	if d.Err == nil {
		return []error{d.Kind}
	}
	return []error{d.Kind, d.Err}
}
