package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/bytebank/ledger-api/internal/api"
	"github.com/bytebank/ledger-api/internal/core/ports"
	"github.com/bytebank/ledger-api/internal/core/service"
	"github.com/bytebank/ledger-api/internal/infrastructure/db/mongo"
	"github.com/bytebank/ledger-api/internal/infrastructure/db/redis"
	"github.com/bytebank/ledger-api/internal/infrastructure/http/handlers"
	"github.com/bytebank/ledger-api/internal/pkg/config"
	"github.com/bytebank/ledger-api/pkg/logger"
)

const serviceName = "ledger-api"

// @title                       Bytebank Ledger API
// @version                     1.0
// @description                 Personal finance backend: accounts, transactions and summaries over GraphQL.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// Local development only; real deployments set the environment.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// The logger level comes from config, so fall back to a bare one.
		l := logger.Init(logger.Options{Service: serviceName})
		l.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: serviceName,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Storage ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  serviceName,
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	users := mongo.NewUserRepository(db)
	transactions := mongo.NewTransactionRepository(db)
	if err := mongo.EnsureIndexes(ctx, users, transactions); err != nil {
		return err
	}

	health := []handlers.Dependency{handlers.MongoDependency(mongoClient)}

	// Redis only backs token revocation; the API runs without it.
	var revocations ports.RevocationStore
	redisClient, err := connectRedis(ctx, cfg)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, token revocation disabled")
	} else {
		defer func() { _ = redisClient.Close() }()
		revocations = redis.NewRevocationStore(redisClient)
		health = append(health, handlers.RedisDependency(redisClient))
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
	}

	// --- Services ---
	tokenOpts := []service.TokenOption{service.WithLogger(log)}
	if revocations != nil {
		tokenOpts = append(tokenOpts, service.WithRevocation(revocations))
	}
	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, tokenOpts...)

	accounts := service.NewAccountService(
		users,
		transactions,
		service.NewCredentials(cfg.Auth.BcryptCost),
		tokens,
		log,
	)
	if revocations != nil {
		accounts = accounts.RevokeOnDelete(revocations, tokens.TTL())
	}

	// --- HTTP ---
	e, err := api.NewRouter(api.Dependencies{
		Accounts:       accounts,
		Transactions:   service.NewTransactionService(transactions, log),
		Verifier:       tokens,
		Health:         health,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         log,
	})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server")

		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return e.Shutdown(sctx)
	})

	return g.Wait()
}

func connectRedis(ctx context.Context, cfg *config.Config) (*goredis.Client, error) {
	return redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}
