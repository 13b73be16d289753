package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bytebank/ledger-api/internal/core/domain"
	"github.com/bytebank/ledger-api/internal/core/ports"
)

var _ ports.TransactionService = (*TransactionService)(nil)

type TransactionService struct {
	repo   ports.TransactionRepository
	logger zerolog.Logger
}

func NewTransactionService(repo ports.TransactionRepository, logger zerolog.Logger) *TransactionService {
	return &TransactionService{repo: repo, logger: logger}
}

// List returns one page of the user's transactions, newest date first.
// page and limit are clamped rather than rejected.
func (s *TransactionService) List(ctx context.Context, userID string, page, limit int) (*domain.TransactionPage, error) {
	const op = "Failed to fetch transactions"

	req := domain.NewPageRequest(page, limit)

	total, err := s.repo.CountByOwner(ctx, userID)
	if err != nil {
		return nil, domain.Wrap(op, err)
	}

	items, err := s.repo.FindByOwner(ctx, userID, req.Skip(), req.Limit)
	if err != nil {
		return nil, domain.Wrap(op, err)
	}
	if items == nil {
		items = []*domain.Transaction{}
	}

	totalPages := req.TotalPages(total)
	return &domain.TransactionPage{
		Items:       items,
		TotalInPage: len(items),
		Total:       total,
		Page:        req.Page,
		TotalPages:  totalPages,
		HasMore:     req.Page < totalPages,
	}, nil
}

// Get returns the transaction, or nil when it is absent or owned by
// someone else.
func (s *TransactionService) Get(ctx context.Context, userID, id string) (*domain.Transaction, error) {
	tx, err := s.repo.FindOne(ctx, id, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, domain.Wrap("Failed to fetch transaction", err)
	}
	return tx, nil
}

// Summary aggregates every transaction the user owns.
func (s *TransactionService) Summary(ctx context.Context, userID string) (*domain.Summary, error) {
	txs, err := s.repo.FindAllByOwner(ctx, userID)
	if err != nil {
		return nil, domain.Wrap("Failed to fetch transaction summary", err)
	}
	summary := domain.Summarize(txs)
	return &summary, nil
}

func (s *TransactionService) Create(ctx context.Context, userID string, in ports.CreateTransactionInput) (*domain.Transaction, error) {
	const op = "Failed to create transaction"

	date := strings.TrimSpace(in.Date)
	if date == "" {
		return nil, domain.Wrap(op, domain.Validationf("Date is required"))
	}
	if err := validateKinds(&in.Type, &in.Desc); err != nil {
		return nil, domain.Wrap(op, err)
	}
	if err := validateValue(in.Value); err != nil {
		return nil, domain.Wrap(op, err)
	}

	tx := &domain.Transaction{
		OwnerID: userID,
		Date:    date,
		Alias:   strings.TrimSpace(in.Alias),
		Type:    in.Type,
		Desc:    in.Desc,
		Value:   in.Value,
		DateKey: domain.DateKey(date),
	}
	if err := s.repo.Insert(ctx, tx); err != nil {
		return nil, domain.Wrap(op, err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("transaction_id", tx.ID).
		Str("type", string(tx.Type)).
		Msg("transaction created")
	return tx, nil
}

// Update applies a partial patch. A transaction that does not exist and one
// owned by another user fail with the same not-found error.
func (s *TransactionService) Update(ctx context.Context, userID, id string, in ports.UpdateTransactionInput) (*domain.Transaction, error) {
	const op = "Failed to update transaction"

	patch := domain.TransactionPatch{
		Alias: in.Alias,
		Type:  in.Type,
		Desc:  in.Desc,
		Value: in.Value,
	}
	if in.Date != nil {
		date := strings.TrimSpace(*in.Date)
		if date == "" {
			return nil, domain.Wrap(op, domain.Validationf("Date cannot be empty"))
		}
		key := domain.DateKey(date)
		patch.Date = &date
		patch.DateKey = &key
	}
	if patch.Empty() {
		return nil, domain.Wrap(op, domain.Validationf("No fields to update"))
	}
	if err := validateKinds(in.Type, in.Desc); err != nil {
		return nil, domain.Wrap(op, err)
	}
	if in.Value != nil {
		if err := validateValue(*in.Value); err != nil {
			return nil, domain.Wrap(op, err)
		}
	}

	tx, err := s.repo.Update(ctx, id, userID, patch)
	if err != nil {
		return nil, domain.Wrap(op, notFoundTransaction(id, err))
	}
	return tx, nil
}

func (s *TransactionService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return domain.Wrap("Failed to delete transaction", notFoundTransaction(id, err))
	}
	s.logger.Info().Str("user_id", userID).Str("transaction_id", id).Msg("transaction deleted")
	return nil
}

func validateKinds(t *domain.TransactionType, d *domain.TransactionDesc) error {
	if t != nil && !t.Valid() {
		return domain.Validationf("Invalid transaction type %q", *t)
	}
	if d != nil && !d.Valid() {
		return domain.Validationf("Invalid transaction desc %q", *d)
	}
	return nil
}

func validateValue(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return domain.Validationf("Value must be a finite number")
	}
	if v < 0 {
		return domain.Validationf("Value must not be negative")
	}
	return nil
}

func notFoundTransaction(id string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFoundf("Transaction with id %s not found or unauthorized", id)
	}
	return err
}
