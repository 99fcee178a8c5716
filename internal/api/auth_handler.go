package api

import (
	"log/slog"
	"net/http"

	"github.com/shutter-safari/api/internal/api/shared"
	"github.com/shutter-safari/api/internal/platform/logger"
	"github.com/shutter-safari/api/internal/redact"
	"github.com/shutter-safari/api/internal/service/auth"
)

// AuthHandler issues bearer tokens.
type AuthHandler struct {
	tokenService auth.TokenService
	logger       *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(tokenService auth.TokenService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AuthHandler")
	}
	return &AuthHandler{
		tokenService: tokenService,
		logger:       logger.With(slog.String("component", "auth_handler")),
	}
}

// IssueToken handles POST /jwt. The body must carry an email; every other
// field is signed into the token as an extra claim.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var payload map[string]interface{}
	if err := shared.DecodeJSON(w, r, &payload); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	email, _ := payload["email"].(string)
	req := TokenRequest{Email: email}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}
	delete(payload, "email")

	token, err := h.tokenService.GenerateToken(r.Context(), auth.IdentityClaims{
		Email: req.Email,
		Extra: payload,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate token")
		return
	}

	log.Debug("issued token", slog.String("email", redact.String(req.Email)))
	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{Token: token})
}
