package queries

import (
	"context"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order's full read model from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order detail queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the detail query. Orders outside the scope, like orders
// that do not exist, produce an error wrapping errs.ErrObjectNotFound.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	if !query.Preauthorized() && query.Scope().IsEmpty() {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
	}

	summary, err := h.loadSummary(ctx, query)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	actions, err := h.loadActions(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	contacts, err := h.loadContacts(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return GetOrderQueryResponse{
		Summary:  summary,
		Actions:  actions,
		Contacts: contacts,
	}, nil
}

func (h GetOrderQueryHandler) loadSummary(
	ctx context.Context,
	query GetOrderQuery,
) (OrderSummaryResponse, error) {
	sql := `
		SELECT
			id,
			document_id,
			sender_role_id,
			driver_role_id,
			ordered_time,
			state
		FROM orders
		WHERE id = ?
	`
	args := []any{query.OrderID().Bytes()}

	if !query.Preauthorized() {
		scopeSQL, scopeArgs := renderScope(query.Scope())
		sql = fmt.Sprintf("%s AND %s", sql, scopeSQL)
		args = append(args, scopeArgs...)
	}

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return OrderSummaryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return OrderSummaryResponse{}, err
		}
		return OrderSummaryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
	}

	var (
		id           uuid.UUID
		documentID   uuid.UUID
		senderRoleID uuid.NullUUID
		driverRoleID uuid.NullUUID
		orderedTime  time.Time
		state        int
	)
	err = rows.Scan(&id, &documentID, &senderRoleID, &driverRoleID, &orderedTime, &state)
	if err != nil {
		return OrderSummaryResponse{}, err
	}

	return newOrderSummary(id, documentID, senderRoleID, driverRoleID, orderedTime, state)
}

func (h GetOrderQueryHandler) loadActions(
	ctx context.Context,
	orderID kernel.UUID,
) ([]OrderActionResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			kind,
			actor_id,
			description,
			timestamp
		FROM order_actions
		WHERE order_id = ?
		ORDER BY seq
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	actions := make([]OrderActionResponse, 0)
	for rows.Next() {
		var (
			kind        int
			actorID     uuid.NullUUID
			description string
			timestamp   time.Time
		)
		if err = rows.Scan(&kind, &actorID, &description, &timestamp); err != nil {
			return nil, err
		}

		action := OrderActionResponse{
			Kind:        order.ActionKind(kind),
			Description: description,
			Timestamp:   timestamp,
		}
		if actorID.Valid {
			id, idErr := kernel.UUIDFromBytes(actorID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			action.ActorID = &id
		}
		actions = append(actions, action)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return actions, nil
}

func (h GetOrderQueryHandler) loadContacts(
	ctx context.Context,
	orderID kernel.UUID,
) ([]OrderContactResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			role,
			name,
			phone
		FROM order_contacts
		WHERE order_id = ?
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := make([]OrderContactResponse, 0)
	for rows.Next() {
		var (
			id    uuid.UUID
			role  int
			name  string
			phone string
		)
		if err = rows.Scan(&id, &role, &name, &phone); err != nil {
			return nil, err
		}

		contactID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		contacts = append(contacts, OrderContactResponse{
			ID:    contactID,
			Role:  order.ContactRole(role),
			Name:  name,
			Phone: phone,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return contacts, nil
}
