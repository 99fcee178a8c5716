// Package main implements the entry point for the Shutter Safari API server,
// the backend of a photography class marketplace.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shutter-safari/api/internal/config"
	"github.com/shutter-safari/api/internal/platform/logger"
	"github.com/shutter-safari/api/internal/platform/mongodb"
	"github.com/shutter-safari/api/internal/platform/stripe"
	"github.com/shutter-safari/api/internal/service"
	"github.com/shutter-safari/api/internal/service/auth"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

// run wires the production dependencies and blocks until the server stops.
func run(ctx context.Context) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server)
	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database", cfg.Database.Name,
		"use_transactions", cfg.Database.UseTransactions,
		"strict_roles", cfg.Auth.StrictRoles)

	connectCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Database.TimeoutSeconds)*time.Second)
	defer cancel()

	client, err := mongodb.Connect(connectCtx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	client.EnsureIndexes(connectCtx)

	tokenService, processor, err := newProviders(cfg, log, client)
	if err != nil {
		return err
	}

	db := client.Database()
	app, err := newApplication(cfg, log, dependencies{
		userStore:    mongodb.NewMongoUserStore(db, log),
		classStore:   mongodb.NewMongoClassStore(db, log),
		cartStore:    mongodb.NewMongoCartStore(db, log),
		paymentStore: mongodb.NewMongoPaymentStore(db, log),
		transactor:   client.Transactor(cfg.Database.UseTransactions),
		tokenService: tokenService,
		processor:    processor,
		closer:       client,
		pinger:       client,
	})
	if err != nil {
		closeQuietly(client, log)
		return err
	}

	return app.Run(ctx)
}

// newProviders builds the token service and the payment processor. The
// database connection c is closed when either fails, since run returns
// before the application takes ownership of it.
func newProviders(
	cfg *config.Config,
	log *slog.Logger,
	c closer,
) (auth.TokenService, service.PaymentProcessor, error) {
	tokenService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		closeQuietly(c, log)
		return nil, nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	log.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	processor, err := stripe.NewProcessor(cfg.Payment, log)
	if err != nil {
		closeQuietly(c, log)
		return nil, nil, fmt.Errorf("failed to initialize payment processor: %w", err)
	}
	return tokenService, processor, nil
}

func closeQuietly(c closer, log *slog.Logger) {
	if err := c.Close(context.Background()); err != nil {
		log.Error("Error closing database connection", "error", err)
	}
}
