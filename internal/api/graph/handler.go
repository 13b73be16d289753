package graph

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Handler serves GraphQL over HTTP.
type Handler struct {
	schema graphql.Schema
	logger zerolog.Logger
}

func NewHandler(schema graphql.Schema, logger zerolog.Logger) *Handler {
	return &Handler{schema: schema, logger: logger}
}

// Request is the GraphQL-over-HTTP request body.
type Request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

type requestError struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Errors []requestError `json:"errors"`
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Errors: []requestError{{Message: msg}}})
}

// Serve executes a GraphQL operation.
//
// @Summary      Execute a GraphQL operation
// @Description  Queries may be sent with GET or POST; mutations only with POST.
// @Description  Protected operations need "Authorization: Bearer <token>".
// @Tags         graphql
// @Accept       json
// @Produce      json
// @Param        body  body      Request  true  "GraphQL request"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  errorResponse
// @Failure      405   {object}  errorResponse
// @Router       /graphql [post]
func (h *Handler) Serve(c echo.Context) error {
	var req Request
	switch c.Request().Method {
	case http.MethodGet:
		req.Query = c.QueryParam("query")
		req.OperationName = c.QueryParam("operationName")
		if raw := c.QueryParam("variables"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
				return badRequest(c, "variables must be a JSON object")
			}
		}
	default:
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid payload")
		}
	}

	if req.Query == "" {
		return badRequest(c, "query is required")
	}
	if c.Request().Method == http.MethodGet && isMutation(req.Query, req.OperationName) {
		return c.JSON(http.StatusMethodNotAllowed, errorResponse{
			Errors: []requestError{{Message: "mutations require POST"}},
		})
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        c.Request().Context(),
	})
	if result.HasErrors() {
		h.logger.Debug().
			Str("operation", req.OperationName).
			Int("errors", len(result.Errors)).
			Msg("graphql operation returned errors")
	}

	return c.JSON(http.StatusOK, result)
}

// isMutation reports whether the operation selected by name is a mutation.
// Documents that fail to parse are left for the executor to report.
func isMutation(query, operationName string) bool {
	doc, err := parser.Parse(parser.ParseParams{Source: query})
	if err != nil {
		return false
	}
	for _, def := range doc.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok {
			continue
		}
		if operationName != "" && (op.Name == nil || op.Name.Value != operationName) {
			continue
		}
		if op.Operation == ast.OperationTypeMutation {
			return true
		}
	}
	return false
}
