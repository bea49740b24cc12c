// Package guard provides the constructor-guard pattern for commands and
// value objects outside the domain kernel. Embedding a ConstructorGuard in a
// struct makes zero-value instances detectable, so objects that bypass their
// constructor fail validation instead of silently carrying unchecked state.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when a zero-value guard
// is validated with a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as having passed through its constructor.
// The zero value is invalid; NewConstructorGuard produces a valid guard.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. For a zero-value guard it
// returns err, or ErrDefaultConstructorGuard when err is nil.
func (g ConstructorGuard) Validate(err error) error {
	if g.isConstructed {
		return nil
	}
	if err == nil {
		return ErrDefaultConstructorGuard
	}
	return err
}
