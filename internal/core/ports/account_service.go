package ports

import (
	"context"

	"github.com/bytebank/ledger-api/internal/core/domain"
)

// RegisterInput carries the fields required to open an account.
type RegisterInput struct {
	Name          string
	Email         string
	Password      string
	AcceptPrivacy bool
}

// UpdateUserInput is a partial profile update. Nil fields are ignored.
type UpdateUserInput struct {
	Name          *string
	Email         *string
	Password      *string
	AcceptPrivacy *bool
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string
	User  *domain.User
}

// AccountService covers the account lifecycle.
type AccountService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// Me returns nil, nil when the account no longer exists.
	Me(ctx context.Context, userID string) (*domain.User, error)
	UpdateUser(ctx context.Context, userID string, in UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, userID string) error
	ValidatePassword(ctx context.Context, userID, password string) (bool, error)
}
