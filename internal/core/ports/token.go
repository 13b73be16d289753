package ports

import (
	"context"
	"time"
)

// TokenClaims is the verified content of a bearer token.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
}

// TokenIssuer signs identity tokens.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// TokenVerifier checks identity tokens.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (TokenClaims, error)
}

// RevocationStore records subjects whose outstanding tokens must no longer
// be accepted.
type RevocationStore interface {
	IsRevoked(ctx context.Context, subject string) (bool, error)
	Revoke(ctx context.Context, subject string, ttl time.Duration) error
}
