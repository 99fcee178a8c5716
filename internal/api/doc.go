// Package api holds the HTTP handlers of the marketplace: token issuance,
// users, classes, carts and payments. Handlers decode and validate requests,
// call the services in internal/service and encode their results; error
// mapping to status codes lives in errors.go.
package api
