package stripe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shutter-safari/api/internal/config"
	"github.com/shutter-safari/api/internal/platform/logger"
	"github.com/shutter-safari/api/internal/service"
	stripego "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Processor implements service.PaymentProcessor with Stripe PaymentIntents.
type Processor struct {
	api    *client.API
	logger *slog.Logger
}

var _ service.PaymentProcessor = (*Processor)(nil)

// Option customizes the Stripe backend, mainly for tests.
type Option func(*stripego.BackendConfig)

// WithBaseURL points the client at a different API host.
func WithBaseURL(url string) Option {
	return func(c *stripego.BackendConfig) {
		c.URL = stripego.String(url)
	}
}

// NewProcessor creates a Processor for the configured secret key. Network
// retries are disabled.
func NewProcessor(cfg config.PaymentConfig, logger *slog.Logger, opts ...Option) (*Processor, error) {
	if cfg.StripeSecretKey == "" {
		return nil, errors.New("stripe secret key cannot be empty")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	backendFor := func(t stripego.SupportedBackend) stripego.Backend {
		backendCfg := &stripego.BackendConfig{
			MaxNetworkRetries: stripego.Int64(0),
			LeveledLogger:     &slogLeveledLogger{logger: logger},
		}
		for _, opt := range opts {
			opt(backendCfg)
		}
		return stripego.GetBackendWithConfig(t, backendCfg)
	}

	backends := &stripego.Backends{
		API:     backendFor(stripego.APIBackend),
		Connect: backendFor(stripego.ConnectBackend),
		Uploads: backendFor(stripego.UploadsBackend),
	}

	return &Processor{
		api:    client.New(cfg.StripeSecretKey, backends),
		logger: logger.With("component", "stripe_processor"),
	}, nil
}

// CreatePaymentIntent implements service.PaymentProcessor. Only card payments
// are enabled.
func (p *Processor) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error) {
	log := logger.FromContextOrDefault(ctx, p.logger)

	params := &stripego.PaymentIntentParams{
		Amount:             stripego.Int64(amount),
		Currency:           stripego.String(currency),
		PaymentMethodTypes: stripego.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := p.api.PaymentIntents.New(params)
	if err != nil {
		var stripeErr *stripego.Error
		if errors.As(err, &stripeErr) {
			log.Warn("stripe rejected payment intent",
				"type", stripeErr.Type,
				"code", stripeErr.Code,
				"status", stripeErr.HTTPStatusCode,
				"request_id", stripeErr.RequestID)
			return "", fmt.Errorf("%w: %s", service.ErrPaymentProcessor, stripeErr.Msg)
		}
		log.Error("failed to create payment intent", "error", err)
		return "", fmt.Errorf("%w: %v", service.ErrPaymentProcessor, err)
	}

	log.Debug("stripe payment intent created",
		"payment_intent_id", pi.ID,
		"amount", amount,
		"currency", currency)

	return pi.ClientSecret, nil
}
