// Package service holds the request-level business logic of the marketplace:
// user accounts and role checks, class listings, carts and payments.
//
// Services depend on the store interfaces and on small ports for outside
// systems (PaymentProcessor), never on MongoDB or Stripe directly. Handlers in
// internal/api only decode requests, call a service and encode the result.
//
// Errors are returned wrapped with %w so the API layer can classify them with
// errors.Is against the sentinels in this package, internal/store and
// internal/domain.
package service
