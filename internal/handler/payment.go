package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/adventuresync/server/internal/domain"
	"github.com/adventuresync/server/internal/service"
)

// PaymentHandler handles plan-purchase HTTP requests.
type PaymentHandler struct {
	payments *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// HandleList returns the caller's payments, newest first.
// GET /api/v1/user/payments
func (h *PaymentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	payments, err := h.payments.ListByUser(r.Context(), user.ID)
	if err != nil {
		respondError(w, err, "list payments")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"payments": toPaymentDTOs(payments)})
}

type createPaymentRequest struct {
	Plan     string `json:"plan" validate:"required"`
	Amount   string `json:"amount" validate:"required"`
	Currency string `json:"currency"`
}

// HandleCreate records a pending payment for a plan purchase.
// POST /api/v1/user/create-payment
func (h *PaymentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req createPaymentRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := checkRequest(req); err != nil {
		respondError(w, err, "validate payment request")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid amount.")
		return
	}

	payment, err := h.payments.Create(r.Context(), user.ID, domain.Plan(req.Plan), amount, req.Currency)
	if err != nil {
		respondError(w, err, "create payment")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"payment": toPaymentDTO(payment)})
}

type executePaymentRequest struct {
	PaymentID string `json:"paymentId" validate:"required"`
	OrderID   string `json:"orderId" validate:"required"`
}

// HandleExecute completes a pending payment and upgrades the caller's plan.
// POST /api/v1/user/execute-payment
func (h *PaymentHandler) HandleExecute(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req executePaymentRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := checkRequest(req); err != nil {
		respondError(w, err, "validate execute request")
		return
	}

	payment, err := h.payments.Execute(r.Context(), user.ID, req.PaymentID, req.OrderID)
	if err != nil {
		respondError(w, err, "execute payment")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"payment": toPaymentDTO(payment)})
}

type cancelPaymentRequest struct {
	PaymentID string `json:"paymentId" validate:"required"`
}

// HandleCancel marks a pending payment cancelled.
// POST /api/v1/user/cancel-payment
func (h *PaymentHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req cancelPaymentRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := checkRequest(req); err != nil {
		respondError(w, err, "validate cancel request")
		return
	}

	payment, err := h.payments.Cancel(r.Context(), user.ID, req.PaymentID)
	if err != nil {
		respondError(w, err, "cancel payment")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"payment": toPaymentDTO(payment)})
}
