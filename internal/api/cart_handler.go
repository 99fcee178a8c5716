package api

import (
	"log/slog"
	"net/http"

	"github.com/shutter-safari/api/internal/api/shared"
	"github.com/shutter-safari/api/internal/domain"
	"github.com/shutter-safari/api/internal/platform/logger"
	"github.com/shutter-safari/api/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartHandler handles shopping cart requests.
type CartHandler struct {
	cartService service.CartService
	logger      *slog.Logger
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService service.CartService, logger *slog.Logger) *CartHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CartHandler")
	}
	return &CartHandler{
		cartService: cartService,
		logger:      logger.With(slog.String("component", "cart_handler")),
	}
}

// ListCart handles GET /carts?email=. Only the owner of the cart may read it.
func (h *CartHandler) ListCart(w http.ResponseWriter, r *http.Request) {
	items, err := h.cartService.ListCart(r.Context(), callerEmail(r), r.URL.Query().Get("email"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list cart")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, items)
}

// AddToCart handles POST /carts. The item is stored as sent.
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var item domain.CartItem
	if err := shared.DecodeJSON(w, r, &item); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	item.ID = primitive.NilObjectID

	result, err := h.cartService.AddToCart(r.Context(), &item)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to add cart item")
		return
	}

	log.Debug("cart item added",
		slog.String("cart_item_id", result.InsertedID.Hex()),
		slog.String("class_id", item.ClassID))
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// RemoveFromCart handles DELETE /carts/{id}.
func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	id, err := getPathObjectID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.cartService.RemoveFromCart(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to remove cart item")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}
