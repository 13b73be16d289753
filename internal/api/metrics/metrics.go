// Package metrics defines and registers all custom Prometheus metrics for the
// ledger API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ledger"

// ── GraphQL metrics ───────────────────────────────────────────────────────────

// GraphQLOperationsTotal counts resolved root fields.
// Labels:
//   - field: the root field name (e.g. "transactions", "createTransaction")
//   - outcome: "ok", or the error kind ("validation", "authentication", "not_found", "conflict", "internal")
var GraphQLOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "graphql_operations_total",
		Help:      "Total number of resolved GraphQL root fields, by outcome.",
	},
	[]string{"field", "outcome"},
)

// GraphQLOperationDuration measures how long a root field takes to resolve,
// auth gate included.
// Label:
//   - field: the root field name
var GraphQLOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "graphql_operation_duration_seconds",
		Help:      "Duration of GraphQL root field resolution.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"field"},
)

// AuthRejectionsTotal counts protected operations rejected by the auth gate.
var AuthRejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of protected operations rejected as not authenticated.",
	},
)

// ── Domain metrics ────────────────────────────────────────────────────────────

// TransactionsCreatedTotal counts newly created transactions.
// Label:
//   - type: "inflow" or "outflow"
var TransactionsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transactions_created_total",
		Help:      "Total number of transactions created, by type.",
	},
	[]string{"type"},
)

var AccountsRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_registered_total",
		Help:      "Total number of accounts registered.",
	},
)

var AccountsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_deleted_total",
		Help:      "Total number of accounts deleted together with their transactions.",
	},
)
