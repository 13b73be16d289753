package graph

import (
	"context"

	"github.com/graphql-go/graphql"

	"github.com/bytebank/ledger-api/internal/api/metrics"
	"github.com/bytebank/ledger-api/internal/core/domain"
	"github.com/bytebank/ledger-api/internal/core/ports"
)

type registerInput struct {
	Name          string `graphql:"name" validate:"required,max=100"`
	Email         string `graphql:"email" validate:"required,email"`
	Password      string `graphql:"password" validate:"required"`
	AcceptPrivacy bool   `graphql:"acceptPrivacy"`
}

type loginInput struct {
	Email    string `graphql:"email" validate:"required"`
	Password string `graphql:"password" validate:"required"`
}

type userUpdateInput struct {
	Name          *string `graphql:"name" validate:"omitempty,max=100"`
	Email         *string `graphql:"email" validate:"omitempty,email"`
	Password      *string `graphql:"password"`
	AcceptPrivacy *bool   `graphql:"acceptPrivacy"`
}

func (r *Resolver) register(p graphql.ResolveParams) (any, error) {
	m := inputArg(p)
	in := registerInput{
		Name:          stringField(m, "name"),
		Email:         stringField(m, "email"),
		Password:      stringField(m, "password"),
		AcceptPrivacy: m["acceptPrivacy"] == true,
	}
	if err := r.validate.Validate(in); err != nil {
		return nil, domain.Wrap("Failed to register user", err)
	}

	res, err := r.accounts.Register(p.Context, ports.RegisterInput{
		Name:          in.Name,
		Email:         in.Email,
		Password:      in.Password,
		AcceptPrivacy: in.AcceptPrivacy,
	})
	if err != nil {
		return nil, err
	}
	metrics.AccountsRegisteredTotal.Inc()
	return res, nil
}

func (r *Resolver) login(p graphql.ResolveParams) (any, error) {
	m := inputArg(p)
	in := loginInput{Email: stringField(m, "email"), Password: stringField(m, "password")}
	if err := r.validate.Validate(in); err != nil {
		return nil, domain.Wrap("Failed to login", err)
	}
	return r.accounts.Login(p.Context, in.Email, in.Password)
}

func (r *Resolver) me(ctx context.Context, id domain.Identity, _ graphql.ResolveParams) (any, error) {
	u, err := r.accounts.Me(ctx, id.UserID)
	if err != nil || u == nil {
		return nil, err
	}
	return u, nil
}

func (r *Resolver) updateUser(ctx context.Context, id domain.Identity, p graphql.ResolveParams) (any, error) {
	m := inputArg(p)
	in := userUpdateInput{
		Name:          optString(m, "name"),
		Email:         optString(m, "email"),
		Password:      optString(m, "password"),
		AcceptPrivacy: optBool(m, "acceptPrivacy"),
	}
	if err := r.validate.Validate(in); err != nil {
		return nil, domain.Wrap("Failed to update user", err)
	}

	return r.accounts.UpdateUser(ctx, id.UserID, ports.UpdateUserInput{
		Name:          in.Name,
		Email:         in.Email,
		Password:      in.Password,
		AcceptPrivacy: in.AcceptPrivacy,
	})
}

func (r *Resolver) deleteUser(ctx context.Context, id domain.Identity, _ graphql.ResolveParams) (any, error) {
	if err := r.accounts.DeleteUser(ctx, id.UserID); err != nil {
		return nil, err
	}
	metrics.AccountsDeletedTotal.Inc()
	return true, nil
}

func (r *Resolver) validatePassword(ctx context.Context, id domain.Identity, p graphql.ResolveParams) (any, error) {
	password, _ := p.Args["password"].(string)
	return r.accounts.ValidatePassword(ctx, id.UserID, password)
}
