package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/bytebank/ledger-api/internal/core/domain"
)

var transactionTypeEnum = graphql.NewEnum(graphql.EnumConfig{
	Name:        "TransactionType",
	Description: "Decides whether a value adds to or subtracts from the balance.",
	Values: graphql.EnumValueConfigMap{
		"inflow":  &graphql.EnumValueConfig{Value: domain.TypeInflow},
		"outflow": &graphql.EnumValueConfig{Value: domain.TypeOutflow},
	},
})

var transactionDescEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "TransactionDesc",
	Values: graphql.EnumValueConfigMap{
		"deposit":    &graphql.EnumValueConfig{Value: domain.DescDeposit},
		"transfer":   &graphql.EnumValueConfig{Value: domain.DescTransfer},
		"withdrawal": &graphql.EnumValueConfig{Value: domain.DescWithdrawal},
		"payment":    &graphql.EnumValueConfig{Value: domain.DescPayment},
	},
})

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id":            &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"email":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"acceptPrivacy": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"createdAt":     &graphql.Field{Type: graphql.DateTime},
		"updatedAt":     &graphql.Field{Type: graphql.DateTime},
	},
})

var authPayloadType = graphql.NewObject(graphql.ObjectConfig{
	Name: "AuthPayload",
	Fields: graphql.Fields{
		"token": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"user":  &graphql.Field{Type: graphql.NewNonNull(userType)},
	},
})

var transactionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Transaction",
	Fields: graphql.Fields{
		"id": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"user": &graphql.Field{
			Type:        graphql.NewNonNull(graphql.ID),
			Description: "Id of the owning user.",
			Resolve: func(p graphql.ResolveParams) (any, error) {
				if tx, ok := p.Source.(*domain.Transaction); ok {
					return tx.OwnerID, nil
				}
				return nil, nil
			},
		},
		"date":  &graphql.Field{Type: graphql.NewNonNull(graphql.String), Description: "DD/MM/YYYY"},
		"alias": &graphql.Field{Type: graphql.String},
		"type":  &graphql.Field{Type: graphql.NewNonNull(transactionTypeEnum)},
		"desc":  &graphql.Field{Type: graphql.NewNonNull(transactionDescEnum)},
		"value": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
	},
})

var transactionPageType = graphql.NewObject(graphql.ObjectConfig{
	Name: "TransactionPage",
	Fields: graphql.Fields{
		"items":       &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(transactionType)))},
		"totalInPage": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"total":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"page":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"totalPages":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"hasMore":     &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
	},
})

var breakdownType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Breakdown",
	Fields: graphql.Fields{
		"deposit":    &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"transfer":   &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"withdrawal": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"payment":    &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
	},
})

var summaryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "TransactionSummary",
	Fields: graphql.Fields{
		"balance":   &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"breakdown": &graphql.Field{Type: graphql.NewNonNull(breakdownType)},
	},
})

// Inputs

var registerInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "RegisterInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":          &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"email":         &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"password":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"acceptPrivacy": &graphql.InputObjectFieldConfig{Type: graphql.Boolean, DefaultValue: false},
	},
})

var loginInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "LoginInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	},
})

var userUpdateInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "UserUpdateInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":          &graphql.InputObjectFieldConfig{Type: graphql.String},
		"email":         &graphql.InputObjectFieldConfig{Type: graphql.String},
		"password":      &graphql.InputObjectFieldConfig{Type: graphql.String},
		"acceptPrivacy": &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
	},
})

var transactionInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "TransactionInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"date":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"alias": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"type":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(transactionTypeEnum)},
		"desc":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(transactionDescEnum)},
		"value": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
	},
})

var transactionUpdateInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "TransactionUpdateInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"date":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		"alias": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"type":  &graphql.InputObjectFieldConfig{Type: transactionTypeEnum},
		"desc":  &graphql.InputObjectFieldConfig{Type: transactionDescEnum},
		"value": &graphql.InputObjectFieldConfig{Type: graphql.Float},
	},
})
