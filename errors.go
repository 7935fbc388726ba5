package waysurface

import (
	"errors"
	"fmt"
)

// Sentinel errors for the window lifecycle.
var (
	// ErrMissingCapability is returned when a required global was not
	// announced by the compositor.
	ErrMissingCapability = errors.New("waysurface: compositor is missing a required global")

	// ErrRoleAssigned is returned when the window role is assigned twice.
	ErrRoleAssigned = errors.New("waysurface: window role already assigned")

	// ErrPrecondition is matched by every *PreconditionError.
	ErrPrecondition = errors.New("waysurface: precondition violated")

	// ErrPresenterAttached is returned when a second presenter is attached.
	ErrPresenterAttached = errors.New("waysurface: presenter already attached")
)

// PreconditionError reports a structural invariant that did not hold when an
// operation ran. These are programming or environment errors and are never
// retried.
type PreconditionError struct {
	// Op is the operation that detected the violation.
	Op string
	// Invariant describes the condition that must hold.
	Invariant string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("waysurface: %s: precondition violated: %s", e.Op, e.Invariant)
}

// Is reports whether target is ErrPrecondition.
func (e *PreconditionError) Is(target error) bool {
	return target == ErrPrecondition
}

func precondition(op, invariant string) error {
	return &PreconditionError{Op: op, Invariant: invariant}
}

// missingCapability wraps ErrMissingCapability with the absent interface.
func missingCapability(iface Interface) error {
	return fmt.Errorf("%w: %s", ErrMissingCapability, iface)
}
