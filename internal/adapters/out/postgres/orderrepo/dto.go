// Package orderrepo persists the order aggregate, including its append-only
// action history and contact list, in relational form.
package orderrepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database row for an order aggregate. Actions and contacts
// live in child tables loaded alongside the root.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DocumentID   uuid.UUID  `gorm:"type:uuid;index"`
	SenderRoleID *uuid.UUID `gorm:"type:uuid;index"`
	DriverRoleID *uuid.UUID `gorm:"type:uuid;index"`
	OrderedTime  time.Time  `gorm:"index"`
	State        int        `gorm:"index"`

	Actions  []ActionDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Contacts []ContactDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ActionDTO is one audit record of a successful transition. Seq preserves
// the append order within one order.
type ActionDTO struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	OrderID     uuid.UUID  `gorm:"type:uuid;index"`
	Seq         int        `gorm:"index"`
	Kind        int        `gorm:"index"`
	ActorID     *uuid.UUID `gorm:"type:uuid"`
	Description string
	Timestamp   time.Time
}

// TableName overrides GORM's default naming to use "order_actions".
func (ActionDTO) TableName() string {
	return "order_actions"
}

// ContactDTO is one named phone contact attached to an order.
type ContactDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;index"`
	Role    int
	Name    string
	Phone   string
}

// TableName overrides GORM's default naming to use "order_contacts".
func (ContactDTO) TableName() string {
	return "order_contacts"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var senderRoleID, driverRoleID *uuid.UUID
	if id := aggregate.SenderRoleID(); id != nil {
		raw := id.Bytes()
		senderRoleID = &raw
	}
	if id := aggregate.DriverRoleID(); id != nil {
		raw := id.Bytes()
		driverRoleID = &raw
	}

	actions := aggregate.Actions()
	actionDTOs := make([]ActionDTO, 0, len(actions))
	for i, action := range actions {
		var actorID *uuid.UUID
		if id := action.ActorID(); id != nil {
			raw := id.Bytes()
			actorID = &raw
		}
		actionDTOs = append(actionDTOs, ActionDTO{
			OrderID:     aggregate.ID().Bytes(),
			Seq:         i,
			Kind:        int(action.Kind()),
			ActorID:     actorID,
			Description: action.Description(),
			Timestamp:   action.Timestamp(),
		})
	}

	contacts := aggregate.Contacts()
	contactDTOs := make([]ContactDTO, 0, len(contacts))
	for _, contact := range contacts {
		contactDTOs = append(contactDTOs, ContactDTO{
			ID:      contact.ID().Bytes(),
			OrderID: aggregate.ID().Bytes(),
			Role:    int(contact.Role()),
			Name:    contact.Name(),
			Phone:   contact.Phone(),
		})
	}

	return OrderDTO{
		ID:           aggregate.ID().Bytes(),
		DocumentID:   aggregate.DocumentID().Bytes(),
		SenderRoleID: senderRoleID,
		DriverRoleID: driverRoleID,
		OrderedTime:  aggregate.OrderedTime(),
		State:        int(aggregate.State()),
		Actions:      actionDTOs,
		Contacts:     contactDTOs,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	documentID, err := kernel.UUIDFromBytes(dto.DocumentID[:])
	if err != nil {
		return nil, err
	}

	var senderRoleID, driverRoleID *kernel.UUID
	if dto.SenderRoleID != nil {
		roleID, roleErr := kernel.UUIDFromBytes((*dto.SenderRoleID)[:])
		if roleErr != nil {
			return nil, roleErr
		}
		senderRoleID = &roleID
	}
	if dto.DriverRoleID != nil {
		roleID, roleErr := kernel.UUIDFromBytes((*dto.DriverRoleID)[:])
		if roleErr != nil {
			return nil, roleErr
		}
		driverRoleID = &roleID
	}

	actions := make([]order.Action, 0, len(dto.Actions))
	for _, actionDTO := range dto.Actions {
		var actorID *kernel.UUID
		if actionDTO.ActorID != nil {
			aID, actorErr := kernel.UUIDFromBytes((*actionDTO.ActorID)[:])
			if actorErr != nil {
				return nil, actorErr
			}
			actorID = &aID
		}
		action, actionErr := order.NewAction(
			order.ActionKind(actionDTO.Kind), actorID, actionDTO.Description, actionDTO.Timestamp,
		)
		if actionErr != nil {
			return nil, actionErr
		}
		actions = append(actions, action)
	}

	contacts := make([]order.Contact, 0, len(dto.Contacts))
	for _, contactDTO := range dto.Contacts {
		contactID, contactErr := kernel.UUIDFromBytes(contactDTO.ID[:])
		if contactErr != nil {
			return nil, contactErr
		}
		contact, contactErr := order.NewContact(
			contactID, order.ContactRole(contactDTO.Role), contactDTO.Name, contactDTO.Phone,
		)
		if contactErr != nil {
			return nil, contactErr
		}
		contacts = append(contacts, contact)
	}

	return order.RestoreOrder(
		id, documentID, senderRoleID, driverRoleID,
		dto.OrderedTime, order.State(dto.State), actions, contacts,
	)
}
