package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shutter-safari/api/internal/api"
	apiMiddleware "github.com/shutter-safari/api/internal/api/middleware"
	"github.com/shutter-safari/api/internal/domain"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(app.metrics.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.config.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Trace-ID"},
		MaxAge:         300,
	}))

	authHandler := api.NewAuthHandler(app.tokenService, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)
	classHandler := api.NewClassHandler(app.classService, app.logger)
	cartHandler := api.NewCartHandler(app.cartService, app.logger)
	paymentHandler := api.NewPaymentHandler(app.paymentService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokenService, app.userService)

	// guarded returns the middleware chain for a role that is only enforced
	// when strict roles are on.
	guarded := func(role domain.Role) []func(http.Handler) http.Handler {
		chain := []func(http.Handler) http.Handler{authMiddleware.Authenticate}
		if app.config.Auth.StrictRoles {
			chain = append(chain, authMiddleware.RequireRole(role))
		}
		return chain
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		app.writeText(w, http.StatusOK, "Shutter Safari is sitting")
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := app.checkHealth(r.Context()); err != nil {
			app.logger.Error("Health check failed", "error", err)
			app.writeText(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		app.writeText(w, http.StatusOK, "OK")
	})
	r.Handle("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	// Public endpoints
	r.Post("/jwt", authHandler.IssueToken)
	r.Post("/users", userHandler.CreateUser)
	r.Get("/classes", classHandler.ListApproved)
	r.Get("/popular", classHandler.ListPopular)
	r.Get("/my-classes/{email}", classHandler.ListByInstructor)
	r.Post("/carts", cartHandler.AddToCart)
	r.Delete("/carts/{id}", cartHandler.RemoveFromCart)

	// Registration can not grant a role, account edits are admin only and
	// class submission needs an instructor when strict roles are on.
	if app.config.Auth.StrictRoles {
		userHandler.IgnoreRequestedRoles()
		r.With(guarded(domain.RoleAdmin)...).Put("/user/{id}", userHandler.UpsertUser)
		r.With(guarded(domain.RoleAdmin)...).Delete("/user/{id}", userHandler.DeleteUser)
		r.With(guarded(domain.RoleInstructor)...).Post("/classes", classHandler.CreateClass)
	} else {
		r.Put("/user/{id}", userHandler.UpsertUser)
		r.Delete("/user/{id}", userHandler.DeleteUser)
		r.Post("/classes", classHandler.CreateClass)
	}

	// Token protected endpoints
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Get("/users", userHandler.ListUsers)
		r.Get("/users/{role}/{email}", userHandler.CheckRole)
		r.Get("/carts", cartHandler.ListCart)
		r.Post("/create-payment-intent", paymentHandler.CreatePaymentIntent)
		r.Post("/payments", paymentHandler.RecordPayment)
		r.Get("/payments", paymentHandler.ListPayments)
	})

	// User management, admin only under strict roles
	r.With(guarded(domain.RoleAdmin)...).Get("/all-users", userHandler.ListUsers)
	r.With(guarded(domain.RoleAdmin)...).Put("/update-user-role/{id}", userHandler.UpdateUserRole)

	return r
}

func (app *application) writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		app.logger.Error("Failed to write response", "error", err)
	}
}
