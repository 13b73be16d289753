package graph

import (
	"context"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/rs/zerolog"

	"github.com/bytebank/ledger-api/internal/api/metrics"
	"github.com/bytebank/ledger-api/internal/api/middleware"
	"github.com/bytebank/ledger-api/internal/core/domain"
	"github.com/bytebank/ledger-api/internal/core/ports"
)

// Resolver holds the dependencies shared by all root fields.
type Resolver struct {
	accounts ports.AccountService
	txs      ports.TransactionService
	gate     *middleware.Gate
	validate *inputValidator
	logger   zerolog.Logger
}

func NewResolver(
	accounts ports.AccountService,
	transactions ports.TransactionService,
	gate *middleware.Gate,
	logger zerolog.Logger,
) *Resolver {
	return &Resolver{
		accounts: accounts,
		txs:      transactions,
		gate:     gate,
		validate: newInputValidator(),
		logger:   logger,
	}
}

// protectedFn is a resolver that runs only for an authenticated caller.
type protectedFn func(ctx context.Context, id domain.Identity, p graphql.ResolveParams) (any, error)

// public wraps a root resolver with timing, metrics and error presentation.
func (r *Resolver) public(field string, fn graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		start := time.Now()
		out, err := fn(p)
		metrics.GraphQLOperationDuration.WithLabelValues(field).Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.GraphQLOperationsTotal.WithLabelValues(field, domain.KindOf(err).String()).Inc()
			return nil, r.present(field, err)
		}
		metrics.GraphQLOperationsTotal.WithLabelValues(field, "ok").Inc()
		return out, nil
	}
}

// protected runs the auth gate before fn. A rejected caller never reaches
// the service layer.
func (r *Resolver) protected(field string, fn protectedFn) graphql.FieldResolveFn {
	return r.public(field, func(p graphql.ResolveParams) (any, error) {
		ctx, err := r.gate.Authenticate(p.Context)
		if err != nil {
			metrics.AuthRejectionsTotal.Inc()
			return nil, err
		}
		id, _ := middleware.IdentityFrom(ctx)
		p.Context = ctx
		return fn(ctx, id, p)
	})
}

// Argument helpers. graphql-go has already coerced values to the declared
// types, so a failed assertion only means the argument was omitted.

func inputArg(p graphql.ResolveParams) map[string]any {
	m, _ := p.Args["input"].(map[string]any)
	return m
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func optString(m map[string]any, key string) *string {
	s, ok := m[key].(string)
	if !ok {
		return nil
	}
	return &s
}

func optBool(m map[string]any, key string) *bool {
	b, ok := m[key].(bool)
	if !ok {
		return nil
	}
	return &b
}

func optFloat(m map[string]any, key string) *float64 {
	switch v := m[key].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	}
	return nil
}

func intArg(p graphql.ResolveParams, key string, fallback int) int {
	if v, ok := p.Args[key].(int); ok {
		return v
	}
	return fallback
}
