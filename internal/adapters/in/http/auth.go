package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"freight/internal/core/domain/model/account"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/token"

	"github.com/labstack/echo/v4"
)

const (
	userContextKey  = "freight.user"
	actorContextKey = "freight.actor"
)

// IssueToken handles GET /api/token. Credentials arrive as HTTP Basic
// auth; the username is an email or a driver's phone number. Only verified
// users get a token: drivers are verified by registration, senders need a
// verified email. Every failure is a flat 401.
func (s *Server) IssueToken(c echo.Context) error {
	username, password, ok := c.Request().BasicAuth()
	if !ok {
		return jsonError(c, http.StatusUnauthorized, "authentication required")
	}

	user := s.findVerifiedUser(c, username)
	if user == nil || !user.HasValidPassword(password) {
		return jsonError(c, http.StatusUnauthorized, "authentication required")
	}

	return s.writeSignedToken(c, user.ID())
}

// RenewToken handles GET /api/token/new. A valid bearer token buys a fresh
// one, so clients can stay signed in past the token lifetime.
func (s *Server) RenewToken(c echo.Context) error {
	return s.writeSignedToken(c, currentUser(c).ID())
}

func (s *Server) writeSignedToken(c echo.Context, userID kernel.UUID) error {
	tok, err := s.apiSigner.Sign(userID.String())
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, tokenResponse{Token: tok})
}

// findVerifiedUser resolves an email-or-phone login name to a verified
// user, or nil. Phone wins over email when both match, mirroring how
// driver logins are provisioned.
func (s *Server) findVerifiedUser(c echo.Context, username string) *account.User {
	ctx := c.Request().Context()

	user, err := s.accounts.GetUserByPhone(ctx, username)
	if err == nil && user.HasVerified() {
		return user
	}

	user, err = s.accounts.GetUserByEmail(ctx, username)
	if err == nil && user.HasVerified() {
		return user
	}
	return nil
}

// RequireUser is the bearer-token middleware. It verifies the token,
// loads the user and their company membership, and stores the user plus
// the resolved access identity on the request context.
func (s *Server) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ok, err := s.authenticate(c)
		if !ok {
			return err
		}
		return next(c)
	}
}

// authenticate resolves the bearer user onto the request context. When it
// reports false, the response has already been written and the returned
// error must be passed straight back to echo.
//
// A valid token naming a user that no longer exists is a data-integrity
// anomaly, not a client mistake: it is logged at Error and answered 500.
func (s *Server) authenticate(c echo.Context) (bool, error) {
	userID, ok := s.bearerUserID(c)
	if !ok {
		return false, jsonError(c, http.StatusUnauthorized, "authentication required")
	}

	ctx := c.Request().Context()

	user, err := s.accounts.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			s.logger.ErrorContext(ctx, "Valid token names a missing user",
				slog.Any("userID", userID),
			)
			return false, jsonError(c, http.StatusInternalServerError, "internal error")
		}
		return false, s.writeError(c, err)
	}

	company, err := s.accounts.GetCompanyOfUser(ctx, user.ID())
	if err != nil {
		return false, s.writeError(c, err)
	}

	actor, err := services.NewActor(user, company)
	if err != nil {
		return false, s.writeError(c, err)
	}

	c.Set(userContextKey, user)
	c.Set(actorContextKey, actor)
	return true, nil
}

// bearerUserID extracts and verifies the bearer token, returning the user
// ID it names.
func (s *Server) bearerUserID(c echo.Context) (kernel.UUID, bool) {
	authorization := c.Request().Header.Get(echo.HeaderAuthorization)
	scheme, value, found := strings.Cut(authorization, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return kernel.UUID{}, false
	}

	var rawID string
	if err := s.apiSigner.Unsign(strings.TrimSpace(value), &rawID); err != nil {
		return kernel.UUID{}, false
	}

	userID, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return kernel.UUID{}, false
	}
	return userID, true
}

// currentUser returns the user stored by RequireUser. Only valid on
// routes behind that middleware.
func currentUser(c echo.Context) *account.User {
	user, _ := c.Get(userContextKey).(*account.User)
	return user
}

// currentActor returns the access identity stored by RequireUser.
func currentActor(c echo.Context) services.Actor {
	actor, _ := c.Get(actorContextKey).(services.Actor)
	return actor
}

// unsignOrderToken verifies an order access token and returns the order it
// names.
func unsignOrderToken(signer *token.Signer, raw string) (kernel.UUID, error) {
	var rawID string
	if err := signer.Unsign(raw, &rawID); err != nil {
		return kernel.UUID{}, err
	}
	return kernel.UUIDFromString(rawID)
}
