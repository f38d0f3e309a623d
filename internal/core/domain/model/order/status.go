package order

import (
	"fmt"

	"quickdrop/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It is a value object
// implementing the state machine every transition must pass through.
//
// State transitions:
//
//	placed ──┬──> accepted ──> picked_up ──> in_transit ──> delivered
//	         │        │
//	         └────────┴──> cancelled
//
// delivered and cancelled are terminal: no further transition is legal and
// the aggregate is never mutated again after reaching them.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Placed is the initial status of a freshly created order. Orders in
	// this status are visible to every partner and open to a claim.
	Placed

	// Accepted indicates exactly one partner has claimed the order.
	Accepted

	// PickedUp indicates the assigned partner has collected the order.
	PickedUp

	// InTransit indicates the assigned partner is en route to the customer.
	InTransit

	// Delivered is the terminal success status.
	Delivered

	// Cancelled is the terminal status for orders abandoned before delivery.
	Cancelled
)

// getStatusStrings returns the wire names of all statuses, including the
// invalid zero value.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Placed:    "placed",
		Accepted:  "accepted",
		PickedUp:  "picked_up",
		InTransit: "in_transit",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// getValidStatusStrings returns the wire names of the valid statuses only.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Placed:    "placed",
		Accepted:  "accepted",
		PickedUp:  "picked_up",
		InTransit: "in_transit",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// getTransitions returns the legal edges of the state machine: for each
// source status the set of statuses reachable from it.
func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		Placed:    {Accepted, Cancelled},
		Accepted:  {PickedUp, Cancelled},
		PickedUp:  {InTransit},
		InTransit: {Delivered},
		Delivered: {},
		Cancelled: {},
	}
}

// StatusFromString parses a wire name ("placed", "picked_up", ...) into a
// Status. Returns a ValueIsInvalidError for unrecognized names.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status is one of the defined lifecycle states.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status. It implements fmt.Stringer and
// is safe to call on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsClaimable reports whether an order in this status may still be claimed
// by a partner.
func (s Status) IsClaimable() bool {
	return s == Placed
}

// TransitionTo validates the requested transition against the state machine
// and returns the new status.
//
// Returns:
//   - (requested, nil) when the edge s -> requested exists
//   - NoOpError when requested equals the current status, so callers can
//     treat re-delivery of the same event as harmless
//   - IllegalTransitionError for every other pair
//
// Example:
//
//	next, err := current.TransitionTo(order.PickedUp)
//	if errors.Is(err, errs.ErrNoOp) {
//	    // duplicate request, nothing to do
//	}
func (s Status) TransitionTo(requested Status) (Status, error) {
	if err := requested.Validate(); err != nil {
		return Unknown, err
	}

	if requested == s {
		return Unknown, errs.NewNoOpError(s.String())
	}

	for _, allowed := range getTransitions()[s] {
		if requested == allowed {
			return requested, nil
		}
	}

	return Unknown, errs.NewIllegalTransitionError(s.String(), requested.String())
}

// ValidateCanHaveAssignee checks the consistency between a status and the
// presence of an assigned partner when restoring an order from persistence.
//
// Rules:
//   - placed orders must not have a partner
//   - accepted, picked_up, in_transit and delivered orders must have one
//   - cancelled orders may or may not, depending on when cancellation happened
func (s Status) ValidateCanHaveAssignee(assigned bool) error {
	if s == Cancelled {
		return nil
	}

	if assigned && s == Placed {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have an assigned partner", s.String()),
		)
	}

	if !assigned && s != Placed {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no assigned partner", s.String()),
		)
	}

	return nil
}
