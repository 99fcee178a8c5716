package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/shutter-safari/api/internal/api/shared"
	"github.com/shutter-safari/api/internal/domain"
	"github.com/shutter-safari/api/internal/platform/logger"
	"github.com/shutter-safari/api/internal/service/auth"
	"github.com/shutter-safari/api/internal/store"
)

// UserLookup resolves the stored user behind a token's email claim.
type UserLookup interface {
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// AuthMiddleware provides bearer token authentication and role guards.
type AuthMiddleware struct {
	tokenService auth.TokenService
	users        UserLookup
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(tokenService auth.TokenService, users UserLookup) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		users:        users,
	}
}

// Authenticate validates the bearer token from the Authorization header and
// adds its claims to the request context. Any failure is a 401.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "unauthorized access")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "unauthorized access")
			return
		}

		claims, err := m.tokenService.ValidateToken(r.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			default:
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "unauthorized access", err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), shared.ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole allows the request through only when the authenticated
// caller's stored user holds role. It must run after Authenticate.
func (m *AuthMiddleware) RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := GetEmail(r)
			if !ok {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "unauthorized access")
				return
			}

			user, err := m.users.GetUserByEmail(r.Context(), email)
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
					"An unexpected error occurred", err)
				return
			}
			if !user.HasRole(role) {
				logger.FromContext(r.Context()).Debug("role check failed", "required_role", role)
				shared.RespondWithErrorAndLog(w, r, http.StatusForbidden, "forbidden access", nil,
					shared.WithElevatedLogLevel())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetClaims extracts the token claims from the request context.
func GetClaims(r *http.Request) (*auth.Claims, bool) {
	claims, ok := r.Context().Value(shared.ClaimsContextKey).(*auth.Claims)
	return claims, ok && claims != nil
}

// GetEmail extracts the authenticated email from the request context.
func GetEmail(r *http.Request) (string, bool) {
	claims, ok := GetClaims(r)
	if !ok || claims.Email == "" {
		return "", false
	}
	return claims.Email, true
}
