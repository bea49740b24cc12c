package account

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// ErrCompanyIsNotConstructed is returned when a Company instance was not
// created through NewCompany or RestoreCompany.
var ErrCompanyIsNotConstructed = errors.New("Company must be created via NewCompany or RestoreCompany")

// Company groups sender users behind one shared sender role. The owner is
// the member whose display fields represent the company; memberships are
// one level deep, one company per user.
type Company struct {
	id           kernel.UUID
	name         string
	ownerID      kernel.UUID
	senderRoleID *kernel.UUID
	memberIDs    []kernel.UUID

	isConstructed bool
}

// NewCompany creates a company. The owner is implicitly its first member.
func NewCompany(id kernel.UUID, name string, ownerID kernel.UUID, senderRoleID *kernel.UUID) (*Company, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}
	if senderRoleID != nil {
		if err := senderRoleID.Validate(); err != nil {
			return nil, err
		}
	}

	return &Company{
		id:            id,
		name:          name,
		ownerID:       ownerID,
		senderRoleID:  senderRoleID,
		memberIDs:     []kernel.UUID{ownerID},
		isConstructed: true,
	}, nil
}

// RestoreCompany reconstructs a company with its member list from
// persistence.
func RestoreCompany(
	id kernel.UUID,
	name string,
	ownerID kernel.UUID,
	senderRoleID *kernel.UUID,
	memberIDs []kernel.UUID,
) (*Company, error) {
	company, err := NewCompany(id, name, ownerID, senderRoleID)
	if err != nil {
		return nil, err
	}

	company.memberIDs = memberIDs
	return company, nil
}

// Validate ensures the Company was created via its constructors.
func (c *Company) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCompanyIsNotConstructed
	}
	return nil
}

// ID returns the company's unique identifier.
func (c *Company) ID() kernel.UUID {
	return c.id
}

// Name returns the company's unique name.
func (c *Company) Name() string {
	return c.name
}

// OwnerID returns the owning member's user ID.
func (c *Company) OwnerID() kernel.UUID {
	return c.ownerID
}

// SenderRoleID returns the company's shared sender role ID, or nil when the
// company has not been granted one.
func (c *Company) SenderRoleID() *kernel.UUID {
	return c.senderRoleID
}

// MemberIDs returns a copy of the member user IDs, owner included.
func (c *Company) MemberIDs() []kernel.UUID {
	members := make([]kernel.UUID, len(c.memberIDs))
	copy(members, c.memberIDs)
	return members
}

// IsOwner reports whether the given user owns the company.
func (c *Company) IsOwner(userID kernel.UUID) bool {
	return c.ownerID.IsEqual(userID)
}

// HasMember reports whether the given user belongs to the company.
func (c *Company) HasMember(userID kernel.UUID) bool {
	for _, memberID := range c.memberIDs {
		if memberID.IsEqual(userID) {
			return true
		}
	}
	return false
}

// AddMember enrolls a user. A user already enrolled is not added twice.
func (c *Company) AddMember(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	if c.HasMember(userID) {
		return nil
	}
	c.memberIDs = append(c.memberIDs, userID)
	return nil
}

// RemoveMember removes a user from the company. The owner cannot leave.
func (c *Company) RemoveMember(userID kernel.UUID) error {
	if c.ownerID.IsEqual(userID) {
		return errs.NewValueIsInvalidErrorWithCause(
			"userID", errors.New("the owner cannot be removed from the company"),
		)
	}
	for i, memberID := range c.memberIDs {
		if memberID.IsEqual(userID) {
			c.memberIDs = append(c.memberIDs[:i], c.memberIDs[i+1:]...)
			return nil
		}
	}
	return errs.NewObjectNotFoundError("member", userID.String())
}
