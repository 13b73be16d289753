package ports

import (
	"context"

	"github.com/bytebank/ledger-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Lookups that match nothing return an error satisfying
// errors.Is(err, domain.ErrNotFound).
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create inserts user and sets its ID. A duplicate email yields a
	// domain.ErrConflict error.
	Create(ctx context.Context, user *domain.User) error
	// Update applies patch to the user with the given id and returns the
	// updated record.
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
