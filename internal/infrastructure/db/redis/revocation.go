package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// defaultRevocationTTL applies when Revoke is called without a positive TTL.
// It matches the default token lifetime.
const defaultRevocationTTL = 24 * time.Hour

// RevocationStore tracks subjects whose outstanding tokens are no longer
// accepted. Entries expire once every token issued before the revocation
// has expired on its own.
// Key format: revoked:<subject>
type RevocationStore struct {
	client redis.Cmdable
}

// NewRevocationStore creates a RevocationStore wrapping the given Redis client.
func NewRevocationStore(client redis.Cmdable) *RevocationStore {
	return &RevocationStore{client: client}
}

// IsRevoked reports whether subject has been revoked.
func (s *RevocationStore) IsRevoked(ctx context.Context, subject string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := s.client.Exists(ctx, revocationKey(subject)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

// Revoke records subject as revoked for ttl.
func (s *RevocationStore) Revoke(ctx context.Context, subject string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = defaultRevocationTTL
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := s.client.Set(ctx, revocationKey(subject), time.Now().UTC().Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("revoke %s: %w", subject, err)
	}
	return nil
}

func revocationKey(subject string) string {
	return "revoked:" + subject
}
