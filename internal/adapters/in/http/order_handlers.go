package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/cert"
	"freight/internal/core/domain/model/document"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// maxUploadSize caps the total size of one multi-file intake.
const maxUploadSize = 100_000_000

// maxContactFieldLength rejects absurdly long contact names and phone
// numbers before they reach storage.
const maxContactFieldLength = 1000

type jsonOrderRequest struct {
	Columns []string   `json:"columns"`
	Data    [][]string `json:"data"`
}

type allocateRequest struct {
	VehicleID string `json:"vehicle_id"`
}

type onboardRequest struct {
	Vendor string `json:"vendor"`
}

type outboardRequest struct {
	Vendor   string `json:"vendor"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Birthday string `json:"birthday"`
}

type contactRequest struct {
	Role  string `json:"role"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// PostJSONOrder handles POST /api/orders/json. The body is a tabular
// freight manifest; it must have at least one column and every row must
// match the header width. The canonical re-encoding of the table is stored
// as the order's document.
func (s *Server) PostJSONOrder(c echo.Context) error {
	var req jsonOrderRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}

	if len(req.Columns) == 0 {
		return jsonError(c, http.StatusForbidden, "manifest has no columns")
	}
	for _, row := range req.Data {
		if len(row) != len(req.Columns) {
			return jsonError(c, http.StatusForbidden, "manifest row width mismatch")
		}
	}

	content, err := json.Marshal(req)
	if err != nil {
		return s.writeError(c, err)
	}

	return s.postOrder(c, document.KindJSON, "order.json", content)
}

// PostFileOrder handles POST /api/orders/files, the legacy intake carrying
// one or more uploaded documents. The concatenated upload is stored as a
// single PDF-typed document; more than 100MB in total is refused.
func (s *Server) PostFileOrder(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid multipart body")
	}

	files := form.File["order_files"]
	if len(files) == 0 {
		return jsonError(c, http.StatusBadRequest, "no files uploaded")
	}

	var totalSize int64
	for _, header := range files {
		totalSize += header.Size
	}
	if totalSize > maxUploadSize {
		return jsonError(c, http.StatusRequestEntityTooLarge, "upload exceeds 100MB")
	}

	var content []byte
	for _, header := range files {
		file, openErr := header.Open()
		if openErr != nil {
			return s.writeError(c, openErr)
		}

		data, readErr := io.ReadAll(file)
		file.Close()
		if readErr != nil {
			return s.writeError(c, readErr)
		}
		content = append(content, data...)
	}

	return s.postOrder(c, document.KindPDF, "order.pdf", content)
}

func (s *Server) postOrder(
	c echo.Context,
	kind document.Kind,
	name string,
	content []byte,
) error {
	command, err := commands.NewPostOrderCommand(currentActor(c), kind, name, content)
	if err != nil {
		return s.writeError(c, err)
	}

	orderID, err := s.commands.PostOrder.Handle(c.Request().Context(), command)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, orderPostedResponse{OrderID: orderID.String()})
}

// AllocateOrder handles POST /api/orders/:oid/allocate. The sender names
// the driver by vehicle ID.
func (s *Server) AllocateOrder(c echo.Context) error {
	orderID, err := pathOrderID(c)
	if err != nil {
		return jsonError(c, http.StatusNotFound, "object not found")
	}

	var req allocateRequest
	if err = c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}

	command, err := commands.NewAllocateOrderCommand(currentActor(c), orderID, req.VehicleID)
	if err != nil {
		return s.writeError(c, err)
	}

	if err = s.commands.AllocateOrder.Handle(c.Request().Context(), command); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeallocateOrder handles POST /api/orders/:oid/deallocate. Only the
// allocated driver may step off; the order returns to Requested.
func (s *Server) DeallocateOrder(c echo.Context) error {
	orderID, err := pathOrderID(c)
	if err != nil {
		return jsonError(c, http.StatusNotFound, "object not found")
	}

	command, err := commands.NewDeallocateOrderCommand(currentActor(c), orderID)
	if err != nil {
		return s.writeError(c, err)
	}

	if err = s.commands.DeallocateOrder.Handle(c.Request().Context(), command); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/orders/:oid/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	orderID, err := pathOrderID(c)
	if err != nil {
		return jsonError(c, http.StatusNotFound, "object not found")
	}

	command, err := commands.NewCancelOrderCommand(currentActor(c), orderID)
	if err != nil {
		return s.writeError(c, err)
	}

	if err = s.commands.CancelOrder.Handle(c.Request().Context(), command); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SetOrderFailed handles POST /api/orders/:oid/set-failed. Only a shipment
// overdue long enough qualifies; the command re-checks against the clock.
func (s *Server) SetOrderFailed(c echo.Context) error {
	orderID, err := pathOrderID(c)
	if err != nil {
		return jsonError(c, http.StatusNotFound, "object not found")
	}

	command, err := commands.NewSetOrderFailedCommand(currentActor(c), orderID)
	if err != nil {
		return s.writeError(c, err)
	}

	if err = s.commands.SetOrderFailed.Handle(c.Request().Context(), command); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// OnboardOrder handles POST /api/orders/:oid/onboard. The allocated driver
// asks for a pickup-confirmation signature; the signer identity comes from
// the driver's registered role, never from the request.
func (s *Server) OnboardOrder(c echo.Context) error {
	orderID, err := pathOrderID(c)
	if err != nil {
		return jsonError(c, http.StatusNotFound, "object not found")
	}

	var req onboardRequest
	if err = c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}

	vendor, err := parseVendor(req.Vendor)
	if err != nil {
		return jsonError(c, http.StatusForbidden, "unknown signing vendor")
	}

	driverRole := currentUser(c).DriverRole()
	if driverRole == nil {
		return jsonError(c, http.StatusForbidden, "operation is not allowed")
	}

	command, err := commands.NewRequestOnboardCommand(
		currentActor(c), orderID, vendor,
		ports.Signer{
			Name:     driverRole.Name(),
			Phone:    driverRole.Phone(),
			Birthday: driverRole.BirthdayYYYYMMDD(),
		},
	)
	if err != nil {
		return s.writeError(c, err)
	}

	if err = s.commands.RequestOnboard.Handle(c.Request().Context(), command); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// OutboardOrder handles POST /api/orders/by-token/:order_token/outboard.
// The receiver is not an authenticated user; they hold an order access
// token and must identify themselves as a registered receiver contact.
func (s *Server) OutboardOrder(c echo.Context) error {
	orderID, err := unsignOrderToken(s.orderSigner, c.Param("order_token"))
	if err != nil {
		return jsonError(c, http.StatusForbidden, "invalid order token")
	}

	var req outboardRequest
	if err = c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}

	vendor, err := parseVendor(req.Vendor)
	if err != nil {
		return jsonError(c, http.StatusForbidden, "unknown signing vendor")
	}

	birthday, err := normalizeBirthday(req.Birthday)
	if err != nil {
		return jsonError(c, http.StatusForbidden, "invalid birthday")
	}

	command, err := commands.NewRequestOutboardCommand(
		orderID, vendor,
		ports.Signer{Name: req.Name, Phone: req.Phone, Birthday: birthday},
	)
	if err != nil {
		return s.writeError(c, err)
	}

	if err = s.commands.RequestOutboard.Handle(c.Request().Context(), command); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AddOrderContacts handles POST /api/orders/:oid/contacts. The body is a
// list; each entry is attached in its own transaction and answered with
// its generated ID.
func (s *Server) AddOrderContacts(c echo.Context) error {
	orderID, err := pathOrderID(c)
	if err != nil {
		return jsonError(c, http.StatusNotFound, "object not found")
	}

	var reqs []contactRequest
	if err = c.Bind(&reqs); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}

	actor := currentActor(c)
	created := make([]orderContactResponse, 0, len(reqs))

	for _, req := range reqs {
		if len(req.Name) > maxContactFieldLength || len(req.Phone) > maxContactFieldLength {
			return jsonError(c, http.StatusForbidden, "contact field is too long")
		}

		role, roleErr := order.ContactRoleFromString(strings.ToUpper(req.Role))
		if roleErr != nil {
			return jsonError(c, http.StatusForbidden, "unknown contact role")
		}

		command, cmdErr := commands.NewAddOrderContactCommand(
			actor, orderID, role, req.Name, req.Phone,
		)
		if cmdErr != nil {
			return s.writeError(c, cmdErr)
		}

		contactID, handleErr := s.commands.AddContact.Handle(c.Request().Context(), command)
		if handleErr != nil {
			return s.writeError(c, handleErr)
		}

		created = append(created, orderContactResponse{
			ID:    contactID.String(),
			Role:  role.String(),
			Name:  req.Name,
			Phone: req.Phone,
		})
	}

	return c.JSON(http.StatusOK, created)
}

// ReplaceOrderContact handles PATCH /api/orders/:oid/contacts/:cid.
func (s *Server) ReplaceOrderContact(c echo.Context) error {
	orderID, err := pathOrderID(c)
	if err != nil {
		return jsonError(c, http.StatusNotFound, "object not found")
	}
	contactID, err := kernel.UUIDFromString(c.Param("cid"))
	if err != nil {
		return jsonError(c, http.StatusNotFound, "object not found")
	}

	var req contactRequest
	if err = c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}
	if len(req.Name) > maxContactFieldLength || len(req.Phone) > maxContactFieldLength {
		return jsonError(c, http.StatusForbidden, "contact field is too long")
	}

	command, err := commands.NewReplaceOrderContactCommand(
		currentActor(c), orderID, contactID, req.Name, req.Phone,
	)
	if err != nil {
		return s.writeError(c, err)
	}

	if err = s.commands.ReplaceContact.Handle(c.Request().Context(), command); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveOrderContact handles DELETE /api/orders/:oid/contacts/:cid.
func (s *Server) RemoveOrderContact(c echo.Context) error {
	orderID, err := pathOrderID(c)
	if err != nil {
		return jsonError(c, http.StatusNotFound, "object not found")
	}
	contactID, err := kernel.UUIDFromString(c.Param("cid"))
	if err != nil {
		return jsonError(c, http.StatusNotFound, "object not found")
	}

	command, err := commands.NewRemoveOrderContactCommand(currentActor(c), orderID, contactID)
	if err != nil {
		return s.writeError(c, err)
	}

	if err = s.commands.RemoveContact.Handle(c.Request().Context(), command); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func pathOrderID(c echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(c.Param("oid"))
}

func parseVendor(name string) (cert.Vendor, error) {
	return cert.VendorFromString(strings.ToUpper(name))
}

// normalizeBirthday accepts YYYYMMDD or YYYY-MM-DD and returns YYYYMMDD.
func normalizeBirthday(raw string) (string, error) {
	compact := strings.ReplaceAll(raw, "-", "")
	if _, err := time.Parse("20060102", compact); err != nil {
		return "", err
	}
	return compact, nil
}
