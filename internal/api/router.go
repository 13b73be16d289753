package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/bytebank/ledger-api/internal/api/docs"
	"github.com/bytebank/ledger-api/internal/api/graph"
	"github.com/bytebank/ledger-api/internal/api/middleware"
	"github.com/bytebank/ledger-api/internal/core/ports"
	"github.com/bytebank/ledger-api/internal/infrastructure/http/handlers"
)

// Dependencies are the collaborators the HTTP surface is built from.
type Dependencies struct {
	Accounts     ports.AccountService
	Transactions ports.TransactionService
	Verifier     ports.TokenVerifier
	Health       []handlers.Dependency

	// AllowedOrigins restricts CORS; empty allows any origin.
	AllowedOrigins []string
	// MetricsRegisterer receives the HTTP metrics. Defaults to the
	// Prometheus default registerer.
	MetricsRegisterer prometheus.Registerer
	Logger            zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) (*echo.Echo, error) {
	log := deps.Logger

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	gate := middleware.NewGate(deps.Verifier, log)
	resolver := graph.NewResolver(deps.Accounts, deps.Transactions, gate, log)
	schema, err := graph.NewSchema(resolver)
	if err != nil {
		return nil, err
	}
	graphHandler := graph.NewHandler(schema, log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(echomiddleware.CORSWithConfig(corsConfig(deps.AllowedOrigins)))
	e.Use(echomiddleware.BodyLimit("1M"))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "ledger",
		Registerer: deps.MetricsRegisterer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(middleware.Authorization())

	// --- GraphQL ---
	e.POST("/graphql", graphHandler.Serve)
	e.GET("/graphql", graphHandler.Serve)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Health...)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}

func corsConfig(origins []string) echomiddleware.CORSConfig {
	cfg := echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
		},
	}
	if len(origins) > 0 {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
