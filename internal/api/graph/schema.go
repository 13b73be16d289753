package graph

import (
	"github.com/graphql-go/graphql"
)

// NewSchema builds the executable schema with r's resolvers bound to the
// root fields. Only register and login are reachable without a token.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	summaryField := &graphql.Field{
		Type:    graphql.NewNonNull(summaryType),
		Resolve: r.protected("transactionSummary", r.transactionSummary),
	}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"transactions": &graphql.Field{
				Type: graphql.NewNonNull(transactionPageType),
				Args: graphql.FieldConfigArgument{
					"page":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
					"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 10},
				},
				Resolve: r.protected("transactions", r.transactions),
			},
			"transaction": &graphql.Field{
				Type: transactionType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.protected("transaction", r.transaction),
			},
			"transactionSummary":    summaryField,
			"getTransactionSummary": summaryField,
			"me": &graphql.Field{
				Type:    userType,
				Resolve: r.protected("me", r.me),
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"register": &graphql.Field{
				Type: graphql.NewNonNull(authPayloadType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(registerInputType)},
				},
				Resolve: r.public("register", r.register),
			},
			"login": &graphql.Field{
				Type: graphql.NewNonNull(authPayloadType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(loginInputType)},
				},
				Resolve: r.public("login", r.login),
			},
			"updateUser": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(userUpdateInputType)},
				},
				Resolve: r.protected("updateUser", r.updateUser),
			},
			"deleteUser": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Boolean),
				Resolve: r.protected("deleteUser", r.deleteUser),
			},
			"validatePassword": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.protected("validatePassword", r.validatePassword),
			},
			"createTransaction": &graphql.Field{
				Type: graphql.NewNonNull(transactionType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(transactionInputType)},
				},
				Resolve: r.protected("createTransaction", r.createTransaction),
			},
			"updateTransaction": &graphql.Field{
				Type: graphql.NewNonNull(transactionType),
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(transactionUpdateInputType)},
				},
				Resolve: r.protected("updateTransaction", r.updateTransaction),
			},
			"deleteTransaction": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.protected("deleteTransaction", r.deleteTransaction),
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}
