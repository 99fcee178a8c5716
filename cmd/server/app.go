package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	apiMiddleware "github.com/shutter-safari/api/internal/api/middleware"
	"github.com/shutter-safari/api/internal/config"
	"github.com/shutter-safari/api/internal/service"
	"github.com/shutter-safari/api/internal/service/auth"
	"github.com/shutter-safari/api/internal/store"
)

// closer releases an external resource on shutdown.
type closer interface {
	Close(ctx context.Context) error
}

// pinger reports whether the database is reachable.
type pinger interface {
	Ping(ctx context.Context) error
}

// dependencies are the external collaborators the application is built
// from. main wires MongoDB and Stripe; tests wire in-memory mocks.
type dependencies struct {
	userStore    store.UserStore
	classStore   store.ClassStore
	cartStore    store.CartStore
	paymentStore store.PaymentStore
	transactor   store.Transactor
	tokenService auth.TokenService
	processor    service.PaymentProcessor

	// closer and pinger are optional.
	closer closer
	pinger pinger
}

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	closer closer
	pinger pinger

	tokenService   auth.TokenService
	userService    service.UserService
	classService   service.ClassService
	cartService    service.CartService
	paymentService service.PaymentService

	registry *prometheus.Registry
	metrics  *apiMiddleware.Metrics
}

// newApplication builds the services on top of deps.
func newApplication(cfg *config.Config, logger *slog.Logger, deps dependencies) (*application, error) {
	app := &application{
		config:       cfg,
		logger:       logger,
		closer:       deps.closer,
		pinger:       deps.pinger,
		tokenService: deps.tokenService,
	}

	app.userService = service.NewUserService(deps.userStore, logger)
	app.classService = service.NewClassService(deps.classStore, logger)
	app.cartService = service.NewCartService(deps.cartStore, logger)

	var err error
	app.paymentService, err = service.NewPaymentService(
		deps.paymentStore,
		deps.cartStore,
		deps.transactor,
		deps.processor,
		cfg.Payment.Currency,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment service: %w", err)
	}

	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = apiMiddleware.NewMetrics("shutter-safari", app.registry)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// checkHealth pings the database when one is wired.
func (app *application) checkHealth(ctx context.Context) error {
	if app.pinger == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(app.config.Database.TimeoutSeconds)*time.Second)
	defer cancel()
	return app.pinger.Ping(ctx)
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup(ctx context.Context) {
	if app.closer != nil {
		if err := app.closer.Close(ctx); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}
	app.logger.Info("Application shutdown completed")
}
