package graph

import (
	"context"

	"github.com/graphql-go/graphql"

	"github.com/bytebank/ledger-api/internal/api/metrics"
	"github.com/bytebank/ledger-api/internal/core/domain"
	"github.com/bytebank/ledger-api/internal/core/ports"
)

type transactionInput struct {
	Date  string                 `graphql:"date" validate:"required"`
	Alias string                 `graphql:"alias" validate:"max=100"`
	Type  domain.TransactionType `graphql:"type" validate:"required"`
	Desc  domain.TransactionDesc `graphql:"desc" validate:"required"`
	Value float64                `graphql:"value" validate:"gte=0"`
}

type transactionUpdateInput struct {
	Date  *string                 `graphql:"date"`
	Alias *string                 `graphql:"alias" validate:"omitempty,max=100"`
	Type  *domain.TransactionType `graphql:"type"`
	Desc  *domain.TransactionDesc `graphql:"desc"`
	Value *float64                `graphql:"value" validate:"omitempty,gte=0"`
}

func (r *Resolver) transactions(ctx context.Context, id domain.Identity, p graphql.ResolveParams) (any, error) {
	page := intArg(p, "page", domain.DefaultPage)
	limit := intArg(p, "limit", domain.DefaultLimit)
	return r.txs.List(ctx, id.UserID, page, limit)
}

func (r *Resolver) transaction(ctx context.Context, id domain.Identity, p graphql.ResolveParams) (any, error) {
	txID, _ := p.Args["id"].(string)
	tx, err := r.txs.Get(ctx, id.UserID, txID)
	if err != nil || tx == nil {
		return nil, err
	}
	return tx, nil
}

func (r *Resolver) transactionSummary(ctx context.Context, id domain.Identity, _ graphql.ResolveParams) (any, error) {
	return r.txs.Summary(ctx, id.UserID)
}

func (r *Resolver) createTransaction(ctx context.Context, id domain.Identity, p graphql.ResolveParams) (any, error) {
	m := inputArg(p)
	in := transactionInput{
		Date:  stringField(m, "date"),
		Alias: stringField(m, "alias"),
	}
	in.Type, _ = m["type"].(domain.TransactionType)
	in.Desc, _ = m["desc"].(domain.TransactionDesc)
	if v := optFloat(m, "value"); v != nil {
		in.Value = *v
	}
	if err := r.validate.Validate(in); err != nil {
		return nil, domain.Wrap("Failed to create transaction", err)
	}

	tx, err := r.txs.Create(ctx, id.UserID, ports.CreateTransactionInput{
		Date:  in.Date,
		Alias: in.Alias,
		Type:  in.Type,
		Desc:  in.Desc,
		Value: in.Value,
	})
	if err != nil {
		return nil, err
	}
	metrics.TransactionsCreatedTotal.WithLabelValues(string(tx.Type)).Inc()
	return tx, nil
}

func (r *Resolver) updateTransaction(ctx context.Context, id domain.Identity, p graphql.ResolveParams) (any, error) {
	txID, _ := p.Args["id"].(string)
	m := inputArg(p)
	in := transactionUpdateInput{
		Date:  optString(m, "date"),
		Alias: optString(m, "alias"),
		Value: optFloat(m, "value"),
	}
	if t, ok := m["type"].(domain.TransactionType); ok {
		in.Type = &t
	}
	if d, ok := m["desc"].(domain.TransactionDesc); ok {
		in.Desc = &d
	}
	if err := r.validate.Validate(in); err != nil {
		return nil, domain.Wrap("Failed to update transaction", err)
	}

	tx, err := r.txs.Update(ctx, id.UserID, txID, ports.UpdateTransactionInput{
		Date:  in.Date,
		Alias: in.Alias,
		Type:  in.Type,
		Desc:  in.Desc,
		Value: in.Value,
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (r *Resolver) deleteTransaction(ctx context.Context, id domain.Identity, p graphql.ResolveParams) (any, error) {
	txID, _ := p.Args["id"].(string)
	if err := r.txs.Delete(ctx, id.UserID, txID); err != nil {
		return nil, err
	}
	return true, nil
}
