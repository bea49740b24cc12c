// Package http is the inbound HTTP adapter. It binds echo routes to the
// application's command and query handlers, resolves the acting user from
// bearer tokens, and maps application errors to status codes.
//
// Authorization outcomes are deliberately flattened at this boundary:
// precondition and permission failures on transitions all surface as 403,
// and orders outside the caller's access scope report 404, so responses
// never reveal whether an order exists.
package http

import (
	"log/slog"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/token"

	"github.com/labstack/echo/v4"
)

// Commands groups the write-side handlers the server dispatches to.
type Commands struct {
	PostOrder       commands.PostOrderCommandHandler
	AllocateOrder   commands.AllocateOrderCommandHandler
	DeallocateOrder commands.DeallocateOrderCommandHandler
	CancelOrder     commands.CancelOrderCommandHandler
	SetOrderFailed  commands.SetOrderFailedCommandHandler
	RequestOnboard  commands.RequestOnboardCommandHandler
	RequestOutboard commands.RequestOutboardCommandHandler
	AddContact      commands.AddOrderContactCommandHandler
	ReplaceContact  commands.ReplaceOrderContactCommandHandler
	RemoveContact   commands.RemoveOrderContactCommandHandler
}

// Queries groups the read-side handlers the server dispatches to.
type Queries struct {
	GetOrders        queries.GetOrdersQueryHandler
	GetOrder         queries.GetOrderQueryHandler
	GetOrderDocument queries.GetOrderDocumentQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	commands Commands
	queries  Queries

	accounts      ports.AccountRepository
	accessControl services.AccessControl

	apiSigner   *token.Signer
	orderSigner *token.Signer
	passSigner  *token.Signer

	logger *slog.Logger
}

// NewServer creates the HTTP server. The three signers carry distinct
// namespaces: API access, order access, and PASS document access.
func NewServer(
	commandHandlers Commands,
	queryHandlers Queries,
	accounts ports.AccountRepository,
	apiSigner *token.Signer,
	orderSigner *token.Signer,
	passSigner *token.Signer,
	logger *slog.Logger,
) (*Server, error) {
	if accounts == nil {
		return nil, errs.NewValueIsRequiredError("accounts")
	}
	if apiSigner == nil {
		return nil, errs.NewValueIsRequiredError("apiSigner")
	}
	if orderSigner == nil {
		return nil, errs.NewValueIsRequiredError("orderSigner")
	}
	if passSigner == nil {
		return nil, errs.NewValueIsRequiredError("passSigner")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Server{
		commands:      commandHandlers,
		queries:       queryHandlers,
		accounts:      accounts,
		accessControl: services.NewAccessControl(),
		apiSigner:     apiSigner,
		orderSigner:   orderSigner,
		passSigner:    passSigner,
		logger:        logger,
	}, nil
}

// RegisterRoutes binds every API route on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")

	api.GET("/token", s.IssueToken)
	api.GET("/token/new", s.RenewToken, s.RequireUser)

	api.POST("/orders/json", s.PostJSONOrder, s.RequireUser)
	api.POST("/orders/files", s.PostFileOrder, s.RequireUser)

	api.GET("/orders/requested", s.GetRequestedOrders, s.RequireUser)
	api.GET("/orders/ongoing", s.GetOngoingOrders, s.RequireUser)
	api.GET("/orders/completed", s.GetCompletedOrders, s.RequireUser)

	api.GET("/orders/by-token/:order_token", s.GetOrderByToken)
	api.GET("/orders/by-token/:order_token/document", s.DownloadDocumentByToken)
	api.POST("/orders/by-token/:order_token/outboard", s.OutboardOrder)

	api.GET("/orders/:oid", s.GetOrder, s.RequireUser)
	api.GET("/orders/:oid/document", s.DownloadDocument)
	api.GET("/orders/:oid/token", s.IssueOrderToken, s.RequireUser)

	api.GET("/orders/:oid/contacts", s.GetOrderContacts, s.RequireUser)
	api.POST("/orders/:oid/contacts", s.AddOrderContacts, s.RequireUser)
	api.PATCH("/orders/:oid/contacts/:cid", s.ReplaceOrderContact, s.RequireUser)
	api.DELETE("/orders/:oid/contacts/:cid", s.RemoveOrderContact, s.RequireUser)

	api.POST("/orders/:oid/allocate", s.AllocateOrder, s.RequireUser)
	api.POST("/orders/:oid/deallocate", s.DeallocateOrder, s.RequireUser)
	api.POST("/orders/:oid/cancel", s.CancelOrder, s.RequireUser)
	api.POST("/orders/:oid/set-failed", s.SetOrderFailed, s.RequireUser)
	api.POST("/orders/:oid/onboard", s.OnboardOrder, s.RequireUser)
}
