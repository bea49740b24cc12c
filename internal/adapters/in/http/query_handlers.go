package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/document"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"

	"github.com/labstack/echo/v4"
)

const (
	defaultPageSize = 10
	listPageCap     = 50
)

// GetRequestedOrders handles GET /api/orders/requested.
func (s *Server) GetRequestedOrders(c echo.Context) error {
	return s.listOrders(c, ports.BandRequested)
}

// GetOngoingOrders handles GET /api/orders/ongoing.
func (s *Server) GetOngoingOrders(c echo.Context) error {
	return s.listOrders(c, ports.BandOngoing)
}

// GetCompletedOrders handles GET /api/orders/completed.
func (s *Server) GetCompletedOrders(c echo.Context) error {
	return s.listOrders(c, ports.BandFinished)
}

func (s *Server) listOrders(c echo.Context, band ports.OrderBand) error {
	page := queryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := queryInt(c, "page_size", defaultPageSize)
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > listPageCap {
		pageSize = listPageCap
	}

	scope := s.accessControl.Scope(currentActor(c))

	query, err := queries.NewGetOrdersQuery(scope, band, (page-1)*pageSize, pageSize)
	if err != nil {
		return s.writeError(c, err)
	}

	result, err := s.queries.GetOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	resp := orderListResponse{
		Orders: make([]orderResponse, 0, len(result.Orders)),
		Total:  result.Total,
	}
	for _, summary := range result.Orders {
		resp.Orders = append(resp.Orders, newOrderResponse(summary))
	}
	return c.JSON(http.StatusOK, resp)
}

// GetOrder handles GET /api/orders/:oid. Scope is applied in the query, so
// an order the actor may not read is indistinguishable from one that does
// not exist.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := pathOrderID(c)
	if err != nil {
		return jsonError(c, http.StatusNotFound, "object not found")
	}

	query, err := queries.NewGetOrderQuery(orderID, s.accessControl.Scope(currentActor(c)))
	if err != nil {
		return s.writeError(c, err)
	}

	detail, err := s.queries.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, newOrderDetailResponse(detail))
}

// GetOrderByToken handles GET /api/orders/by-token/:order_token. The token
// itself is the authorization.
func (s *Server) GetOrderByToken(c echo.Context) error {
	orderID, err := unsignOrderToken(s.orderSigner, c.Param("order_token"))
	if err != nil {
		return jsonError(c, http.StatusForbidden, "invalid order token")
	}

	query, err := queries.NewPreauthorizedGetOrderQuery(orderID)
	if err != nil {
		return s.writeError(c, err)
	}

	detail, err := s.queries.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, newOrderDetailResponse(detail))
}

// GetOrderContacts handles GET /api/orders/:oid/contacts.
func (s *Server) GetOrderContacts(c echo.Context) error {
	orderID, err := pathOrderID(c)
	if err != nil {
		return jsonError(c, http.StatusNotFound, "object not found")
	}

	query, err := queries.NewGetOrderQuery(orderID, s.accessControl.Scope(currentActor(c)))
	if err != nil {
		return s.writeError(c, err)
	}

	detail, err := s.queries.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, newOrderDetailResponse(detail).Contacts)
}

// IssueOrderToken handles GET /api/orders/:oid/token. Anyone who can read
// the order can mint a time-limited order access token for it; receivers
// use it to confirm delivery without an account.
func (s *Server) IssueOrderToken(c echo.Context) error {
	orderID, err := pathOrderID(c)
	if err != nil {
		return jsonError(c, http.StatusNotFound, "object not found")
	}

	query, err := queries.NewGetOrderQuery(orderID, s.accessControl.Scope(currentActor(c)))
	if err != nil {
		return s.writeError(c, err)
	}
	if _, err = s.queries.GetOrder.Handle(c.Request().Context(), query); err != nil {
		return s.writeError(c, err)
	}

	tok, err := s.orderSigner.Sign(orderID.String())
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, tokenResponse{Token: tok})
}

// DownloadDocument handles GET /api/orders/:oid/document. Two callers
// reach it: an authenticated user within scope, and a signing vendor
// fetching the original document with a short-lived token minted by the
// sign worker (the PASS original-URL flow).
func (s *Server) DownloadDocument(c echo.Context) error {
	orderID, err := pathOrderID(c)
	if err != nil {
		return jsonError(c, http.StatusNotFound, "object not found")
	}

	var query queries.GetOrderDocumentQuery

	if raw := c.QueryParam("token"); raw != "" {
		tokenOrderID, tokenErr := unsignOrderToken(s.passSigner, raw)
		if tokenErr != nil || !tokenOrderID.IsEqual(orderID) {
			return jsonError(c, http.StatusForbidden, "invalid document token")
		}
		query, err = queries.NewPreauthorizedGetOrderDocumentQuery(orderID)
	} else {
		ok, authErr := s.authenticate(c)
		if !ok {
			return authErr
		}
		query, err = queries.NewGetOrderDocumentQuery(orderID, s.accessControl.Scope(currentActor(c)))
	}
	if err != nil {
		return s.writeError(c, err)
	}

	return s.serveDocument(c, orderID, query)
}

// DownloadDocumentByToken handles GET /api/orders/by-token/:order_token/document.
func (s *Server) DownloadDocumentByToken(c echo.Context) error {
	orderID, err := unsignOrderToken(s.orderSigner, c.Param("order_token"))
	if err != nil {
		return jsonError(c, http.StatusForbidden, "invalid order token")
	}

	query, err := queries.NewPreauthorizedGetOrderDocumentQuery(orderID)
	if err != nil {
		return s.writeError(c, err)
	}
	return s.serveDocument(c, orderID, query)
}

func (s *Server) serveDocument(
	c echo.Context,
	orderID kernel.UUID,
	query queries.GetOrderDocumentQuery,
) error {
	doc, err := s.queries.GetOrderDocument.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	filename := fmt.Sprintf("%s.%s", orderID, strings.ToLower(doc.Kind.String()))
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, filename))

	return c.Blob(http.StatusOK, documentContentType(doc.Kind), doc.Content)
}

func documentContentType(kind document.Kind) string {
	switch kind {
	case document.KindJSON:
		return "application/json"
	case document.KindPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
