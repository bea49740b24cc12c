package services

import (
	"freight/internal/core/domain/model/account"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
)

// Actor is the flattened access identity of an acting user: the sender
// role the user owns, the sender role the user reaches through company
// membership, and the user's driver role. Commands and queries resolve an
// Actor once per request and pass it around instead of re-walking the
// account graph.
type Actor struct {
	userID              kernel.UUID
	senderRoleID        *kernel.UUID
	companySenderRoleID *kernel.UUID
	driverRoleID        *kernel.UUID
}

// NewActor resolves a user and their optional company into an access
// identity. company may be nil when the user has no membership.
func NewActor(user *account.User, company *account.Company) (Actor, error) {
	if err := user.Validate(); err != nil {
		return Actor{}, err
	}

	actor := Actor{userID: user.ID()}

	if role := user.SenderRole(); role != nil {
		roleID := role.ID()
		actor.senderRoleID = &roleID
	}
	if role := user.DriverRole(); role != nil {
		roleID := role.ID()
		actor.driverRoleID = &roleID
	}
	if company != nil {
		if err := company.Validate(); err != nil {
			return Actor{}, err
		}
		if company.HasMember(user.ID()) {
			actor.companySenderRoleID = company.SenderRoleID()
		}
	}

	return actor, nil
}

// UserID returns the acting user's ID.
func (a Actor) UserID() kernel.UUID {
	return a.userID
}

// SenderRoleID returns the actor's own sender role ID, or nil.
func (a Actor) SenderRoleID() *kernel.UUID {
	return a.senderRoleID
}

// CompanySenderRoleID returns the sender role ID reached through company
// membership, or nil.
func (a Actor) CompanySenderRoleID() *kernel.UUID {
	return a.companySenderRoleID
}

// DriverRoleID returns the actor's driver role ID, or nil.
func (a Actor) DriverRoleID() *kernel.UUID {
	return a.driverRoleID
}

// IsSender reports whether the actor reaches any sender role.
func (a Actor) IsSender() bool {
	return a.senderRoleID != nil || a.companySenderRoleID != nil
}

// IsDriver reports whether the actor carries a driver role.
func (a Actor) IsDriver() bool {
	return a.driverRoleID != nil
}

// AccessControl is a domain service answering "may this actor touch this
// order". Modification rights belong to the order's owning sender role,
// reached directly or through company membership; read access additionally
// extends to the currently allocated driver.
//
// The same rules are rendered as a list filter by Scope, so list queries
// and single-order checks cannot drift apart.
type AccessControl struct{}

// NewAccessControl creates a new AccessControl instance.
func NewAccessControl() AccessControl {
	return AccessControl{}
}

// CanModify reports whether the actor owns the order through a sender
// role, directly or via company membership. Orders without a sender role
// cannot be modified by anyone.
func (AccessControl) CanModify(actor Actor, o *order.Order) bool {
	ownerRoleID := o.SenderRoleID()
	if ownerRoleID == nil {
		return false
	}

	if actor.senderRoleID != nil && actor.senderRoleID.IsEqual(*ownerRoleID) {
		return true
	}
	if actor.companySenderRoleID != nil && actor.companySenderRoleID.IsEqual(*ownerRoleID) {
		return true
	}
	return false
}

// CanAccess reports whether the actor may read the order: any actor who
// can modify it, or the currently allocated driver. An actor who is both
// sender and driver qualifies through either linkage.
func (ac AccessControl) CanAccess(actor Actor, o *order.Order) bool {
	if ac.CanModify(actor, o) {
		return true
	}

	driverRoleID := o.DriverRoleID()
	return actor.driverRoleID != nil && driverRoleID != nil &&
		actor.driverRoleID.IsEqual(*driverRoleID)
}

// OrderAccessScope describes, as data, which orders an actor may see.
// Repositories render it as OR'ed conditions: orders owned by any of the
// sender role IDs, plus orders allocated to the driver role ID. An empty
// scope matches nothing.
type OrderAccessScope struct {
	SenderRoleIDs []kernel.UUID
	DriverRoleID  *kernel.UUID
}

// IsEmpty reports whether the scope matches no orders at all.
func (s OrderAccessScope) IsEmpty() bool {
	return len(s.SenderRoleIDs) == 0 && s.DriverRoleID == nil
}

// Scope renders the actor's access rules as a composable list filter.
// Actors with both sender and driver linkage get the union of both.
func (AccessControl) Scope(actor Actor) OrderAccessScope {
	var scope OrderAccessScope

	if actor.senderRoleID != nil {
		scope.SenderRoleIDs = append(scope.SenderRoleIDs, *actor.senderRoleID)
	}
	if actor.companySenderRoleID != nil &&
		(actor.senderRoleID == nil || !actor.companySenderRoleID.IsEqual(*actor.senderRoleID)) {
		scope.SenderRoleIDs = append(scope.SenderRoleIDs, *actor.companySenderRoleID)
	}
	scope.DriverRoleID = actor.driverRoleID

	return scope
}
