package ports

import (
	"context"

	"github.com/bytebank/ledger-api/internal/core/domain"
)

// CreateTransactionInput carries a new transaction. The owner is always
// the authenticated caller and is passed separately.
type CreateTransactionInput struct {
	Date  string
	Alias string
	Type  domain.TransactionType
	Desc  domain.TransactionDesc
	Value float64
}

// UpdateTransactionInput is a partial update. Nil fields are ignored.
type UpdateTransactionInput struct {
	Date  *string
	Alias *string
	Type  *domain.TransactionType
	Desc  *domain.TransactionDesc
	Value *float64
}

// TransactionService defines the owner-scoped transaction use cases.
type TransactionService interface {
	List(ctx context.Context, userID string, page, limit int) (*domain.TransactionPage, error)
	// Get returns nil, nil when the transaction is absent or not owned.
	Get(ctx context.Context, userID, id string) (*domain.Transaction, error)
	Summary(ctx context.Context, userID string) (*domain.Summary, error)
	Create(ctx context.Context, userID string, in CreateTransactionInput) (*domain.Transaction, error)
	Update(ctx context.Context, userID, id string, in UpdateTransactionInput) (*domain.Transaction, error)
	Delete(ctx context.Context, userID, id string) error
}
