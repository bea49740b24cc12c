package order

import (
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// maxContactFieldLength caps contact name and phone lengths at the intake
// boundary.
const maxContactFieldLength = 1000

// ContactRole distinguishes the two contact kinds attached to an order.
type ContactRole int

const (
	// ContactUnknown represents an invalid or undefined contact role.
	ContactUnknown ContactRole = iota

	// ContactSender marks the shipper-side contact.
	ContactSender

	// ContactReceiver marks the delivery-side contact. Outboard requests
	// must match a receiver contact by name and phone.
	ContactReceiver
)

func getContactRoleStrings() map[ContactRole]string {
	return map[ContactRole]string{
		ContactSender:   "SENDER",
		ContactReceiver: "RECEIVER",
	}
}

// Validate checks if the ContactRole is Sender or Receiver.
func (r ContactRole) Validate() error {
	if _, ok := getContactRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"contact role is invalid",
			fmt.Errorf("%d is not a valid contact role", r),
		)
	}
	return nil
}

// String returns the persisted name of the contact role.
// Invalid values render as "Unknown". Implements fmt.Stringer.
func (r ContactRole) String() string {
	if str, ok := getContactRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// ContactRoleFromString parses a persisted contact role name.
func ContactRoleFromString(name string) (ContactRole, error) {
	for role, str := range getContactRoleStrings() {
		if str == name {
			return role, nil
		}
	}
	return ContactUnknown, errs.NewValueIsInvalidErrorWithCause(
		"contact role is invalid",
		fmt.Errorf("%q is not a valid contact role name", name),
	)
}

// Contact is a named phone contact attached to an order. Receiver contacts
// gate outboard requests: the external actor must present a matching
// name and phone.
type Contact struct {
	id    kernel.UUID
	role  ContactRole
	name  string
	phone string
}

// NewContact creates a contact after validating the role and field lengths.
func NewContact(id kernel.UUID, role ContactRole, name, phone string) (Contact, error) {
	if err := id.Validate(); err != nil {
		return Contact{}, err
	}
	if err := role.Validate(); err != nil {
		return Contact{}, err
	}
	if len(name) > maxContactFieldLength {
		return Contact{}, errs.NewValueIsOutOfRangeError("name length", len(name), 0, maxContactFieldLength)
	}
	if len(phone) > maxContactFieldLength {
		return Contact{}, errs.NewValueIsOutOfRangeError("phone length", len(phone), 0, maxContactFieldLength)
	}

	return Contact{
		id:    id,
		role:  role,
		name:  name,
		phone: phone,
	}, nil
}

// ID returns the contact's unique identifier.
func (c Contact) ID() kernel.UUID {
	return c.id
}

// Role returns whether this is a sender or receiver contact.
func (c Contact) Role() ContactRole {
	return c.role
}

// Name returns the contact's display name.
func (c Contact) Name() string {
	return c.name
}

// Phone returns the contact's phone number.
func (c Contact) Phone() string {
	return c.phone
}

// Matches reports whether the contact has the given name and phone.
func (c Contact) Matches(name, phone string) bool {
	return c.name == name && c.phone == phone
}
