package queries

import (
	"context"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler reads order summaries straight from the database,
// bypassing aggregate reconstruction. The access scope is rendered into the
// WHERE clause so out-of-scope orders never leave the database.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for paged order list queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the list query. An empty access scope returns an empty
// page with a zero total rather than all orders.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) (GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrdersQueryResponse{}, err
	}

	response := GetOrdersQueryResponse{Orders: make([]OrderSummaryResponse, 0)}

	if query.Scope().IsEmpty() {
		return response, nil
	}

	scopeSQL, scopeArgs := renderScope(query.Scope())
	states := bandStates(query.Band())

	countSQL := fmt.Sprintf(
		"SELECT COUNT(*) FROM orders WHERE %s AND state IN ?", scopeSQL,
	)
	countArgs := append(append([]any{}, scopeArgs...), states)
	if err := h.db.WithContext(ctx).Raw(countSQL, countArgs...).Scan(&response.Total).Error; err != nil {
		return GetOrdersQueryResponse{}, err
	}

	listSQL := fmt.Sprintf(`
		SELECT
			id,
			document_id,
			sender_role_id,
			driver_role_id,
			ordered_time,
			state
		FROM orders
		WHERE %s AND state IN ?
		ORDER BY ordered_time DESC
		LIMIT ? OFFSET ?
	`, scopeSQL)
	listArgs := append(append([]any{}, scopeArgs...), states, query.Limit(), query.Offset())

	rows, err := h.db.WithContext(ctx).Raw(listSQL, listArgs...).Rows()
	if err != nil {
		return GetOrdersQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
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
			return GetOrdersQueryResponse{}, err
		}

		summary, convErr := newOrderSummary(id, documentID, senderRoleID, driverRoleID, orderedTime, state)
		if convErr != nil {
			return GetOrdersQueryResponse{}, convErr
		}
		response.Orders = append(response.Orders, summary)
	}

	if err = rows.Err(); err != nil {
		return GetOrdersQueryResponse{}, err
	}

	return response, nil
}

func newOrderSummary(
	id uuid.UUID,
	documentID uuid.UUID,
	senderRoleID uuid.NullUUID,
	driverRoleID uuid.NullUUID,
	orderedTime time.Time,
	state int,
) (OrderSummaryResponse, error) {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return OrderSummaryResponse{}, err
	}
	docID, err := kernel.UUIDFromBytes(documentID[:])
	if err != nil {
		return OrderSummaryResponse{}, err
	}

	summary := OrderSummaryResponse{
		ID:          orderID,
		State:       order.State(state),
		OrderedTime: orderedTime,
		DocumentID:  docID,
	}
	if err = summary.State.Validate(); err != nil {
		return OrderSummaryResponse{}, err
	}

	if senderRoleID.Valid {
		roleID, roleErr := kernel.UUIDFromBytes(senderRoleID.UUID[:])
		if roleErr != nil {
			return OrderSummaryResponse{}, roleErr
		}
		summary.SenderRoleID = &roleID
	}
	if driverRoleID.Valid {
		roleID, roleErr := kernel.UUIDFromBytes(driverRoleID.UUID[:])
		if roleErr != nil {
			return OrderSummaryResponse{}, roleErr
		}
		summary.DriverRoleID = &roleID
	}

	return summary, nil
}

// renderScope turns an access scope into a WHERE fragment. The caller must
// have rejected empty scopes already.
func renderScope(scope services.OrderAccessScope) (string, []any) {
	senderIDs := make([]uuid.UUID, 0, len(scope.SenderRoleIDs))
	for _, roleID := range scope.SenderRoleIDs {
		senderIDs = append(senderIDs, roleID.Bytes())
	}

	switch {
	case len(senderIDs) > 0 && scope.DriverRoleID != nil:
		return "(sender_role_id IN ? OR driver_role_id = ?)",
			[]any{senderIDs, scope.DriverRoleID.Bytes()}
	case len(senderIDs) > 0:
		return "sender_role_id IN ?", []any{senderIDs}
	default:
		return "driver_role_id = ?", []any{scope.DriverRoleID.Bytes()}
	}
}

func bandStates(band ports.OrderBand) []int {
	switch band {
	case ports.BandRequested:
		return []int{int(order.Requested)}
	case ports.BandOngoing:
		return []int{int(order.Allocated), int(order.Shipping)}
	default:
		return []int{int(order.Canceled), int(order.Completed), int(order.Failed)}
	}
}
