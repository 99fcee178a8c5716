// Package stripe creates payment intents through the Stripe API and adapts
// Stripe's leveled logger onto slog.
package stripe
