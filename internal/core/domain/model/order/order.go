package order

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrDriverPreviouslyDeallocated is returned when allocation is attempted
	// for a driver who has a DEALLOCATE action recorded against this order.
	// Such a driver may never be re-allocated to the same order.
	ErrDriverPreviouslyDeallocated = errors.New("driver has previously deallocated from this order")

	// ErrDriverAlreadyAllocated is returned when allocation is attempted on
	// an order that already has a driver. Replacing a driver is not allowed;
	// the current driver must deallocate first.
	ErrDriverAlreadyAllocated = errors.New("order already has an allocated driver")

	// ErrOrderCannotBeFailed is returned when SetFailed is attempted before
	// the shipment has been overdue for the required 48 hours.
	ErrOrderCannotBeFailed = errors.New("order has not been overdue long enough to be failed")
)

// failAfter is how long a shipment must have been underway, measured from
// the recorded onboard action, before the sender may mark it failed.
const failAfter = 48 * time.Hour

// Order is the aggregate root for one freight shipment. It owns the order's
// lifecycle state, its append-only action history, and its contact list.
//
// Order follows these invariants:
//   - state moves only along the transitions defined on State
//   - exactly one immutable Document is referenced, set at creation
//   - a driver is linked only while the state allows one
//   - every successful transition appends exactly one Action
//   - a driver who deallocated from this order can never be re-allocated
//
// Authorization (who may request a transition) is decided outside the
// aggregate, by the access-control service; the aggregate enforces state
// preconditions and records history.
type Order struct {
	id           kernel.UUID
	documentID   kernel.UUID
	senderRoleID *kernel.UUID
	driverRoleID *kernel.UUID
	orderedTime  time.Time
	state        State
	actions      []Action
	contacts     []Contact

	isConstructed bool
}

// NewOrder creates an order in the Requested state referencing an already
// stored document. senderRoleID identifies the shipper role that owns the
// order; it is the company's sender role when the posting user belongs to a
// company.
func NewOrder(
	id kernel.UUID,
	documentID kernel.UUID,
	senderRoleID *kernel.UUID,
	orderedTime time.Time,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := documentID.Validate(); err != nil {
		return nil, err
	}
	if senderRoleID != nil {
		if err := senderRoleID.Validate(); err != nil {
			return nil, err
		}
	}
	if orderedTime.IsZero() {
		return nil, errs.NewValueIsRequiredError("orderedTime")
	}

	return &Order{
		id:            id,
		documentID:    documentID,
		senderRoleID:  senderRoleID,
		orderedTime:   orderedTime,
		state:         Requested,
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an order from persistence, re-validating the
// stored state and the state/driver consistency rule.
func RestoreOrder(
	id kernel.UUID,
	documentID kernel.UUID,
	senderRoleID *kernel.UUID,
	driverRoleID *kernel.UUID,
	orderedTime time.Time,
	state State,
	actions []Action,
	contacts []Contact,
) (*Order, error) {
	order, err := NewOrder(id, documentID, senderRoleID, orderedTime)
	if err != nil {
		return nil, err
	}

	if err = state.Validate(); err != nil {
		return nil, err
	}
	if err = state.ValidateCanHaveDriver(driverRoleID != nil); err != nil {
		return nil, err
	}
	if driverRoleID != nil {
		if err = driverRoleID.Validate(); err != nil {
			return nil, err
		}
	}

	order.state = state
	order.driverRoleID = driverRoleID
	order.actions = actions
	order.contacts = contacts
	return order, nil
}

// Validate ensures the Order was created via NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// DocumentID returns the ID of the freight document owned by the order.
func (o *Order) DocumentID() kernel.UUID {
	return o.documentID
}

// SenderRoleID returns the owning sender role's ID. Nil for orphaned legacy
// orders with no sender linkage.
func (o *Order) SenderRoleID() *kernel.UUID {
	return o.senderRoleID
}

// DriverRoleID returns the allocated driver role's ID, or nil if no driver
// is linked.
func (o *Order) DriverRoleID() *kernel.UUID {
	return o.driverRoleID
}

// OrderedTime returns the order's creation timestamp.
func (o *Order) OrderedTime() time.Time {
	return o.orderedTime
}

// State returns the current lifecycle state.
func (o *Order) State() State {
	return o.state
}

// Actions returns a copy of the append-only action history, oldest first.
func (o *Order) Actions() []Action {
	actions := make([]Action, len(o.actions))
	copy(actions, o.actions)
	return actions
}

// Contacts returns a copy of the order's contact list.
func (o *Order) Contacts() []Contact {
	contacts := make([]Contact, len(o.contacts))
	copy(contacts, o.contacts)
	return contacts
}

// HasFinished reports whether the order is in a terminal state.
func (o *Order) HasFinished() bool {
	return o.state.HasFinished()
}

// ShippedTime returns the timestamp of the recorded onboard action, or nil
// if the order has not been onboarded. Derived from the action history, the
// sole source of truth for transition times.
func (o *Order) ShippedTime() *time.Time {
	for _, action := range o.actions {
		if action.Kind() == ActionOnboard {
			ts := action.Timestamp()
			return &ts
		}
	}
	return nil
}

// CanBeFailed reports whether the sender may mark the order failed at the
// given time: the order must be Shipping and the onboard action must be at
// least 48 hours old.
func (o *Order) CanBeFailed(now time.Time) bool {
	if o.state != Shipping {
		return false
	}
	shipped := o.ShippedTime()
	if shipped == nil {
		return false
	}
	return now.Sub(*shipped) >= failAfter
}

// HasDeallocated reports whether the given user has a DEALLOCATE action
// recorded against this order. Such a user is permanently barred from
// re-allocation.
func (o *Order) HasDeallocated(userID kernel.UUID) bool {
	for _, action := range o.actions {
		if action.Kind() != ActionDeallocate {
			continue
		}
		if actor := action.ActorID(); actor != nil && actor.IsEqual(userID) {
			return true
		}
	}
	return false
}

// FindContact returns the first contact with the given role matching the
// supplied name and phone, or nil if none matches.
func (o *Order) FindContact(name, phone string, role ContactRole) *Contact {
	for i := range o.contacts {
		if o.contacts[i].Role() == role && o.contacts[i].Matches(name, phone) {
			return &o.contacts[i]
		}
	}
	return nil
}

// AddContact attaches a contact to the order. Contacts cannot be changed on
// finished orders.
func (o *Order) AddContact(contact Contact) error {
	if o.HasFinished() {
		return errs.NewValueIsInvalidErrorWithCause(
			"order is finished",
			fmt.Errorf("cannot change contacts in state %s", o.state),
		)
	}
	o.contacts = append(o.contacts, contact)
	return nil
}

// ReplaceContact updates the name and phone of an existing contact in place.
func (o *Order) ReplaceContact(contactID kernel.UUID, name, phone string) error {
	if o.HasFinished() {
		return errs.NewValueIsInvalidErrorWithCause(
			"order is finished",
			fmt.Errorf("cannot change contacts in state %s", o.state),
		)
	}
	for i := range o.contacts {
		if o.contacts[i].ID().IsEqual(contactID) {
			updated, err := NewContact(contactID, o.contacts[i].Role(), name, phone)
			if err != nil {
				return err
			}
			o.contacts[i] = updated
			return nil
		}
	}
	return errs.NewObjectNotFoundError("contact", contactID.String())
}

// RemoveContact detaches a contact from the order.
func (o *Order) RemoveContact(contactID kernel.UUID) error {
	if o.HasFinished() {
		return errs.NewValueIsInvalidErrorWithCause(
			"order is finished",
			fmt.Errorf("cannot change contacts in state %s", o.state),
		)
	}
	for i := range o.contacts {
		if o.contacts[i].ID().IsEqual(contactID) {
			o.contacts = append(o.contacts[:i], o.contacts[i+1:]...)
			return nil
		}
	}
	return errs.NewObjectNotFoundError("contact", contactID.String())
}

// Allocate assigns a driver to a requested order.
//
// Preconditions enforced here:
//   - the order is Requested
//   - no driver is currently linked
//   - the driver's user has never deallocated from this order
//
// On success the state becomes Allocated, the driver role is linked, and an
// ALLOCATE action authored by actorID is appended.
func (o *Order) Allocate(
	actorID kernel.UUID,
	driverRoleID kernel.UUID,
	driverUserID kernel.UUID,
	now time.Time,
) error {
	if err := driverRoleID.Validate(); err != nil {
		return err
	}
	if o.driverRoleID != nil {
		return ErrDriverAlreadyAllocated
	}
	if o.HasDeallocated(driverUserID) {
		return ErrDriverPreviouslyDeallocated
	}

	newState, err := o.state.Allocate()
	if err != nil {
		return err
	}

	action, err := NewAction(
		ActionAllocate, &actorID, fmt.Sprintf("Driver: %s", driverUserID), now,
	)
	if err != nil {
		return err
	}

	o.state = newState
	o.driverRoleID = &driverRoleID
	o.actions = append(o.actions, action)
	return nil
}

// Deallocate releases the allocated driver, returning the order to
// Requested. driverUserID becomes the author of the DEALLOCATE action, which
// permanently bars that user from re-allocation to this order.
func (o *Order) Deallocate(driverUserID kernel.UUID, now time.Time) error {
	newState, err := o.state.Deallocate()
	if err != nil {
		return err
	}

	action, err := NewAction(ActionDeallocate, &driverUserID, "", now)
	if err != nil {
		return err
	}

	o.state = newState
	o.driverRoleID = nil
	o.actions = append(o.actions, action)
	return nil
}

// Onboard marks the signature-confirmed pickup, moving the order to
// Shipping. Called by the signing finalizer only after the vendor reports a
// completed signature.
func (o *Order) Onboard(actorID kernel.UUID, now time.Time) error {
	newState, err := o.state.Onboard()
	if err != nil {
		return err
	}

	action, err := NewAction(ActionOnboard, &actorID, "", now)
	if err != nil {
		return err
	}

	o.state = newState
	o.actions = append(o.actions, action)
	return nil
}

// Outboard marks the signature-confirmed delivery, moving the order to
// Completed. The acting receiver is external and has no internal user, so
// the OUTBOARD action records a nil actor.
func (o *Order) Outboard(now time.Time) error {
	newState, err := o.state.Outboard()
	if err != nil {
		return err
	}

	action, err := NewAction(ActionOutboard, nil, "", now)
	if err != nil {
		return err
	}

	o.state = newState
	o.actions = append(o.actions, action)
	return nil
}

// Cancel withdraws a Requested or Allocated order and clears any driver
// linkage.
func (o *Order) Cancel(actorID kernel.UUID, now time.Time) error {
	newState, err := o.state.Cancel()
	if err != nil {
		return err
	}

	action, err := NewAction(ActionCancel, &actorID, "", now)
	if err != nil {
		return err
	}

	o.state = newState
	o.driverRoleID = nil
	o.actions = append(o.actions, action)
	return nil
}

// SetFailed marks an overdue shipment as Failed. Rejected unless CanBeFailed
// holds at now.
func (o *Order) SetFailed(actorID kernel.UUID, now time.Time) error {
	if _, err := o.state.SetFailed(); err != nil {
		return err
	}
	if !o.CanBeFailed(now) {
		return ErrOrderCannotBeFailed
	}

	action, err := NewAction(ActionSetFailed, &actorID, "", now)
	if err != nil {
		return err
	}

	o.state = Failed
	o.actions = append(o.actions, action)
	return nil
}
