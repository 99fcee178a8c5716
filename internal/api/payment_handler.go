package api

import (
	"log/slog"
	"net/http"

	"github.com/shutter-safari/api/internal/api/shared"
	"github.com/shutter-safari/api/internal/domain"
	"github.com/shutter-safari/api/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentHandler handles checkout requests.
type PaymentHandler struct {
	paymentService service.PaymentService
	logger         *slog.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService service.PaymentService, logger *slog.Logger) *PaymentHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for PaymentHandler")
	}
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger.With(slog.String("component", "payment_handler")),
	}
}

// CreatePaymentIntent handles POST /create-payment-intent.
func (h *PaymentHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req PaymentIntentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	secret, err := h.paymentService.CreatePaymentIntent(r.Context(), req.Price)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, PaymentIntentResponse{ClientSecret: secret})
}

// RecordPayment handles POST /payments: the payment is stored and the cart
// item named by cartItems is removed. The payment is stored as sent.
func (h *PaymentHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var payment domain.Payment
	if err := shared.DecodeJSON(w, r, &payment); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	payment.ID = primitive.NilObjectID

	result, err := h.paymentService.RecordPayment(r.Context(), &payment)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to record payment")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// ListPayments handles GET /payments, newest first.
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.paymentService.ListPayments(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list payments")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, payments)
}
