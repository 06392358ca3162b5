package handler

import (
	"net/http"

	"github.com/adventuresync/server/internal/paypal"
)

// PayPalHandler passes order operations through to the external processor.
// With the disabled gateway every route reports 503.
type PayPalHandler struct {
	gateway paypal.Gateway
}

// NewPayPalHandler creates a new PayPalHandler.
func NewPayPalHandler(gateway paypal.Gateway) *PayPalHandler {
	return &PayPalHandler{gateway: gateway}
}

// HandleSetup returns a browser-side client token.
// GET /api/paypal/setup
func (h *PayPalHandler) HandleSetup(w http.ResponseWriter, r *http.Request) {
	token, err := h.gateway.ClientToken(r.Context())
	if err != nil {
		respondError(w, err, "paypal client token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"clientToken": token})
}

type createOrderRequest struct {
	Amount   string `json:"amount" validate:"required"`
	Currency string `json:"currency" validate:"required"`
	Intent   string `json:"intent" validate:"required"`
}

// HandleCreateOrder opens a processor order.
// POST /api/paypal/order
func (h *PayPalHandler) HandleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := checkRequest(req); err != nil {
		respondError(w, err, "validate order request")
		return
	}

	order, err := h.gateway.CreateOrder(r.Context(), req.Amount, req.Currency, req.Intent)
	if err != nil {
		respondError(w, err, "paypal create order")
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

// HandleCaptureOrder captures a previously created order.
// POST /api/paypal/order/{orderID}/capture
func (h *PayPalHandler) HandleCaptureOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.gateway.CaptureOrder(r.Context(), r.PathValue("orderID"))
	if err != nil {
		respondError(w, err, "paypal capture order")
		return
	}
	writeJSON(w, http.StatusOK, order)
}
