package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/bytebank/ledger-api/internal/core/domain"
	"github.com/bytebank/ledger-api/internal/core/ports"
)

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = 24 * time.Hour

var errInvalidToken = domain.Authentication("invalid token")

// TokenService issues and verifies HS256 identity tokens carrying the user
// id as subject.
type TokenService struct {
	secret  []byte
	ttl     time.Duration
	revoked ports.RevocationStore
	log     zerolog.Logger
	nowFunc func() time.Time
}

// TokenOption customises a TokenService.
type TokenOption func(*TokenService)

// WithRevocation makes Verify reject subjects present in store.
func WithRevocation(store ports.RevocationStore) TokenOption {
	return func(s *TokenService) { s.revoked = store }
}

// WithClock overrides the time source used for issuing and validation.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.nowFunc = now }
}

// WithLogger sets the logger used for revocation lookup failures.
func WithLogger(log zerolog.Logger) TokenOption {
	return func(s *TokenService) { s.log = log }
}

func NewTokenService(secret string, ttl time.Duration, opts ...TokenOption) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	s := &TokenService{
		secret:  []byte(secret),
		ttl:     ttl,
		log:     zerolog.Nop(),
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TTL returns the lifetime of issued tokens.
func (s *TokenService) TTL() time.Duration { return s.ttl }

// Issue returns a signed token for userID expiring after the configured TTL.
func (s *TokenService) Issue(userID string) (string, error) {
	now := s.nowFunc()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", domain.Internal("Error issuing token", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm, expiry and subject. Every failure is
// reported as the same authentication error.
func (s *TokenService) Verify(ctx context.Context, token string) (ports.TokenClaims, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.nowFunc),
	)
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return ports.TokenClaims{}, errInvalidToken
	}

	if s.revoked != nil {
		revoked, err := s.revoked.IsRevoked(ctx, claims.Subject)
		if err != nil {
			s.log.Warn().Err(err).Str("subject", claims.Subject).Msg("revocation check failed, accepting token")
		} else if revoked {
			return ports.TokenClaims{}, errInvalidToken
		}
	}

	out := ports.TokenClaims{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
