package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type orderPostedResponse struct {
	OrderID string `json:"oid"`
}

type orderResponse struct {
	ID           string    `json:"id"`
	State        string    `json:"state"`
	OrderedTime  time.Time `json:"ordered_time"`
	DocumentID   string    `json:"document_id"`
	SenderRoleID *string   `json:"sender_role_id"`
	DriverRoleID *string   `json:"driver_role_id"`
}

type orderActionResponse struct {
	Kind        string    `json:"kind"`
	ActorID     *string   `json:"actor_id"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

type orderContactResponse struct {
	ID    string `json:"id"`
	Role  string `json:"role"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type orderDetailResponse struct {
	orderResponse
	Actions  []orderActionResponse  `json:"actions"`
	Contacts []orderContactResponse `json:"contacts"`
}

type orderListResponse struct {
	Orders []orderResponse `json:"orders"`
	Total  int64           `json:"total"`
}

func newOrderResponse(summary queries.OrderSummaryResponse) orderResponse {
	resp := orderResponse{
		ID:          summary.ID.String(),
		State:       summary.State.String(),
		OrderedTime: summary.OrderedTime,
		DocumentID:  summary.DocumentID.String(),
	}
	if summary.SenderRoleID != nil {
		id := summary.SenderRoleID.String()
		resp.SenderRoleID = &id
	}
	if summary.DriverRoleID != nil {
		id := summary.DriverRoleID.String()
		resp.DriverRoleID = &id
	}
	return resp
}

func newOrderDetailResponse(detail queries.GetOrderQueryResponse) orderDetailResponse {
	resp := orderDetailResponse{
		orderResponse: newOrderResponse(detail.Summary),
		Actions:       make([]orderActionResponse, 0, len(detail.Actions)),
		Contacts:      make([]orderContactResponse, 0, len(detail.Contacts)),
	}

	for _, action := range detail.Actions {
		actionResp := orderActionResponse{
			Kind:        action.Kind.String(),
			Description: action.Description,
			Timestamp:   action.Timestamp,
		}
		if action.ActorID != nil {
			id := action.ActorID.String()
			actionResp.ActorID = &id
		}
		resp.Actions = append(resp.Actions, actionResp)
	}

	for _, contact := range detail.Contacts {
		resp.Contacts = append(resp.Contacts, orderContactResponse{
			ID:    contact.ID.String(),
			Role:  contact.Role.String(),
			Name:  contact.Name,
			Phone: contact.Phone,
		})
	}

	return resp
}

// writeError maps application errors to status codes. Scope misses and
// missing objects are both 404; authorization and precondition failures
// are 403 without detail, so callers cannot probe order state. Anything
// unrecognized is a 500 and gets logged here, the only place that sees it.
func (s *Server) writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return jsonError(c, http.StatusNotFound, "object not found")

	case errors.Is(err, commands.ErrNotAuthorized),
		errors.Is(err, order.ErrDriverAlreadyAllocated),
		errors.Is(err, order.ErrDriverPreviouslyDeallocated),
		errors.Is(err, order.ErrOrderCannotBeFailed),
		errors.Is(err, errs.ErrValueIsInvalid):
		return jsonError(c, http.StatusForbidden, "operation is not allowed")

	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return jsonError(c, http.StatusBadRequest, "invalid request")

	default:
		s.logger.ErrorContext(c.Request().Context(), "Request failed",
			slog.String("method", c.Request().Method),
			slog.String("path", c.Path()),
			slog.Any("error", err),
		)
		return jsonError(c, http.StatusInternalServerError, "internal error")
	}
}

func jsonError(c echo.Context, code int, message string) error {
	return c.JSON(code, errorResponse{Code: code, Message: message})
}
