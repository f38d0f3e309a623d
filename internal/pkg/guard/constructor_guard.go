// Package guard provides the constructor-guard pattern used by commands,
// queries, and value objects to reject zero-value instances.
//
// A ConstructorGuard embedded in a struct records whether the struct was
// produced by its designated constructor. Validate methods consult the guard
// before any business rule, so a struct literal created outside the package
// fails fast instead of flowing through handlers in an invalid state.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a
// nil validation error. Validation of an unconstructed object must always
// fail with a meaningful message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as created through its constructor.
// The zero value is "not constructed" and fails Validate.
//
// Example:
//
//	type ClaimOrderCommand struct {
//	    orderID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewClaimOrderCommand(orderID kernel.UUID) (ClaimOrderCommand, error) {
//	    ...
//	    return ClaimOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c ClaimOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard in the "constructed" state.
// Call it only from the owning type's constructor.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the object was built through its constructor.
// Otherwise it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
