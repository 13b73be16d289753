package ports

import (
	"context"

	"github.com/bytebank/ledger-api/internal/core/domain"
)

// TransactionRepository defines owner-scoped persistence for transactions.
// Every method filters by ownerID; records owned by someone else behave as
// if they did not exist.
type TransactionRepository interface {
	// FindByOwner returns up to limit transactions after skipping skip,
	// ordered by DateKey descending, then by insertion order descending.
	FindByOwner(ctx context.Context, ownerID string, skip, limit int) ([]*domain.Transaction, error)
	FindAllByOwner(ctx context.Context, ownerID string) ([]*domain.Transaction, error)
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
	// FindOne returns a domain.ErrNotFound error when no record matches.
	FindOne(ctx context.Context, id, ownerID string) (*domain.Transaction, error)
	// Insert persists t and sets its ID.
	Insert(ctx context.Context, t *domain.Transaction) error
	// Update applies patch to the matching record and returns the updated
	// version, or a domain.ErrNotFound error when nothing matched.
	Update(ctx context.Context, id, ownerID string, patch domain.TransactionPatch) (*domain.Transaction, error)
	// Delete removes the matching record, or returns a domain.ErrNotFound
	// error when nothing matched.
	Delete(ctx context.Context, id, ownerID string) error
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}
