package order

import (
	"errors"
	"fmt"
	"time"

	"quickdrop/internal/core/domain/model/kernel"
	"quickdrop/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Item is one line of the order payload. The core never interprets it.
type Item struct {
	ProductID string
	Name      string
	Price     float64
	Quantity  int
}

// Address is the delivery destination payload. Opaque to the core; it is set
// at creation and never mutated afterwards.
type Address struct {
	Street  string
	City    string
	State   string
	ZipCode string
	Phone   string
}

// Order is the aggregate root coordinating the delivery lifecycle.
//
// Invariants maintained by this type:
//   - an assigned partner is present exactly when the status requires one
//     (see Status.ValidateCanHaveAssignee)
//   - once assigned, the partner identity never changes
//   - the status only moves along the edges of the state machine
//   - each status records the instant it was first reached, exactly once
//   - no field is mutated after a terminal status is reached
//
// Mutations happen only through Claim, AdvanceTo and Cancel. The aggregate
// validates transitions against its own in-memory state; the storage layer
// re-checks the same preconditions atomically on write, so a stale in-memory
// copy can never overwrite a newer record.
type Order struct {
	id            kernel.UUID
	customerID    kernel.UUID
	customerEmail string

	items           []Item
	total           float64
	deliveryAddress Address

	status Status

	// assignedPartner is the single winner of the claim race, nil until then.
	assignedPartner *kernel.UUID

	// lockOwner and locked mirror the claim intent. They are written in the
	// same conditional update as assignedPartner and are never consulted as
	// a standalone pre-check.
	lockOwner *kernel.UUID
	locked    bool

	// timestamps holds, per status, the instant the status was first
	// reached. Entries are write-once.
	timestamps map[Status]time.Time

	isConstructed bool
}

// NewOrder creates an order in the placed status with the placed timestamp
// set to now. This is the entry point used by the order-creation flow; all
// later lifecycle changes go through Claim, AdvanceTo and Cancel.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	customerEmail string,
	items []Item,
	total float64,
	deliveryAddress Address,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:          Placed,
		deliveryAddress: deliveryAddress,
		timestamps:      map[Status]time.Time{Placed: now},
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customerID, customerEmail),
		o.setItems(items),
		o.setTotal(total),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence. It validates the
// consistency of the persisted state (valid status, partner presence matching
// the status) so a corrupted row never becomes a live aggregate.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	customerEmail string,
	items []Item,
	total float64,
	deliveryAddress Address,
	status Status,
	assignedPartner *kernel.UUID,
	lockOwner *kernel.UUID,
	locked bool,
	timestamps map[Status]time.Time,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := status.ValidateCanHaveAssignee(assignedPartner != nil); err != nil {
		return nil, err
	}
	if assignedPartner != nil {
		if err := assignedPartner.Validate(); err != nil {
			return nil, err
		}
	}

	o := &Order{
		status:          status,
		deliveryAddress: deliveryAddress,
		assignedPartner: assignedPartner,
		lockOwner:       lockOwner,
		locked:          locked,
		timestamps:      make(map[Status]time.Time, len(timestamps)),
		isConstructed:   true,
	}
	for s, at := range timestamps {
		o.timestamps[s] = at
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customerID, customerEmail),
		o.setItems(items),
		o.setTotal(total),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was created through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identity of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// CustomerEmail returns the customer's contact email.
func (o *Order) CustomerEmail() string {
	return o.customerEmail
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Total returns the order total.
func (o *Order) Total() float64 {
	return o.total
}

// DeliveryAddress returns the delivery destination.
func (o *Order) DeliveryAddress() Address {
	return o.deliveryAddress
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// AssignedPartner returns the identity of the claiming partner, or nil while
// the order is unclaimed.
func (o *Order) AssignedPartner() *kernel.UUID {
	return o.assignedPartner
}

// LockOwner returns the identity recorded as claim intent, or nil.
func (o *Order) LockOwner() *kernel.UUID {
	return o.lockOwner
}

// IsLocked reports whether the claim-intent marker is set.
func (o *Order) IsLocked() bool {
	return o.locked
}

// IsTerminal reports whether the order reached delivered or cancelled.
func (o *Order) IsTerminal() bool {
	return o.status.IsTerminal()
}

// Timestamps returns a copy of the per-status timestamps.
func (o *Order) Timestamps() map[Status]time.Time {
	out := make(map[Status]time.Time, len(o.timestamps))
	for s, at := range o.timestamps {
		out[s] = at
	}
	return out
}

// ReachedAt returns the instant the given status was first reached, and
// whether it has been reached at all.
func (o *Order) ReachedAt(status Status) (time.Time, bool) {
	at, ok := o.timestamps[status]
	return at, ok
}

// Claim assigns the order to the given partner, moving it to accepted.
//
// Claim succeeds only while the order is placed and unassigned; every other
// state yields a ConflictError carrying enough detail to distinguish
// "claimed by someone else" from "already completed or cancelled". The
// in-memory check here is advisory: the storage layer re-evaluates the same
// predicate atomically, and only the first writer whose predicate still
// holds wins.
func (o *Order) Claim(partnerID kernel.UUID, now time.Time) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	if o.assignedPartner != nil {
		return errs.NewConflictErrorWithCause("order", o.id.String(),
			fmt.Errorf("already claimed by partner %s", o.assignedPartner))
	}
	if !o.status.IsClaimable() {
		return errs.NewConflictErrorWithCause("order", o.id.String(),
			fmt.Errorf("order is %s and no longer claimable", o.status))
	}

	o.status = Accepted
	o.assignedPartner = &partnerID
	o.lockOwner = &partnerID
	o.locked = true
	o.recordTimestamp(Accepted, now)
	return nil
}

// AdvanceTo moves the order along the state machine on behalf of its
// assigned partner (picked_up, in_transit, delivered).
//
// Returns:
//   - ForbiddenError when the caller is not the assigned partner
//   - NoOpError when the requested status equals the current one
//   - IllegalTransitionError when the edge does not exist
func (o *Order) AdvanceTo(partnerID kernel.UUID, requested Status, now time.Time) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	if o.assignedPartner == nil || !o.assignedPartner.IsEqual(partnerID) {
		return errs.NewForbiddenErrorWithCause("partnerId",
			fmt.Errorf("partner %s is not assigned to order %s", partnerID, o.id))
	}

	newStatus, err := o.status.TransitionTo(requested)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.recordTimestamp(newStatus, now)
	return nil
}

// Cancel moves the order to the terminal cancelled status. Legal only from
// placed and accepted; caller authorization (owning customer or admin) is
// the responsibility of the application layer.
func (o *Order) Cancel(now time.Time) error {
	newStatus, err := o.status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.recordTimestamp(newStatus, now)
	return nil
}

// recordTimestamp stores the first instant a status was reached. Subsequent
// writes for the same status are ignored, keeping entries write-once.
func (o *Order) recordTimestamp(status Status, now time.Time) {
	if _, ok := o.timestamps[status]; ok {
		return
	}
	o.timestamps[status] = now
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(customerID kernel.UUID, customerEmail string) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	if customerEmail == "" {
		return errs.NewValueIsRequiredError("customerEmail")
	}
	o.customerID = customerID
	o.customerEmail = customerEmail
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setTotal(total float64) error {
	if total < 0 {
		return errs.NewValueIsInvalidErrorWithCause("total",
			fmt.Errorf("%f is negative", total))
	}
	o.total = total
	return nil
}
