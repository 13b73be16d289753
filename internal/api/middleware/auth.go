package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bytebank/ledger-api/internal/core/domain"
	"github.com/bytebank/ledger-api/internal/core/ports"
)

type ctxKey int

const (
	authorizationKey ctxKey = iota
	identityKey
)

// Authorization copies the raw Authorization header into the request
// context so resolvers running below the HTTP layer can authenticate.
// It never rejects a request; public operations need no header.
func Authorization() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if header := req.Header.Get(echo.HeaderAuthorization); header != "" {
				c.SetRequest(req.WithContext(WithAuthorization(req.Context(), header)))
			}
			return next(c)
		}
	}
}

func WithAuthorization(ctx context.Context, header string) context.Context {
	return context.WithValue(ctx, authorizationKey, header)
}

func AuthorizationFrom(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(authorizationKey).(string)
	return v, ok && v != ""
}

func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom returns the identity attached by Gate.Authenticate.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey).(domain.Identity)
	return id, ok && id.UserID != ""
}

// Gate authenticates protected operations from the header stored by
// Authorization.
type Gate struct {
	verifier ports.TokenVerifier
	logger   zerolog.Logger
}

func NewGate(verifier ports.TokenVerifier, logger zerolog.Logger) *Gate {
	return &Gate{verifier: verifier, logger: logger}
}

// Authenticate expects a header of exactly "Bearer <token>". Every failure,
// whatever its cause, yields the same "Not authenticated" error. On success
// the returned context carries the caller's identity.
func (g *Gate) Authenticate(ctx context.Context) (context.Context, error) {
	header, ok := AuthorizationFrom(ctx)
	if !ok {
		return ctx, g.reject("missing authorization header")
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return ctx, g.reject("malformed authorization header")
	}

	claims, err := g.verifier.Verify(ctx, parts[1])
	if err != nil {
		return ctx, g.reject("token verification failed")
	}

	return WithIdentity(ctx, domain.Identity{UserID: claims.Subject}), nil
}

func (g *Gate) reject(reason string) error {
	g.logger.Debug().Str("reason", reason).Msg("request not authenticated")
	return domain.Authentication(domain.MsgNotAuthenticated)
}
