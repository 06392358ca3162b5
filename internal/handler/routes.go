package handler

import (
	"net/http"

	"github.com/adventuresync/server/internal/domain"
	"github.com/adventuresync/server/internal/service"
)

// Handlers bundles the per-resource handlers for route registration.
type Handlers struct {
	Auth    *AuthHandler
	User    *UserHandler
	Event   *EventHandler
	File    *FileHandler
	Payment *PaymentHandler
	Budget  *BudgetHandler
	Metrics *MetricsHandler
	Admin   *AdminHandler
	PayPal  *PayPalHandler
	WS      *WSHandler
}

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	h Handlers,
	auth *service.AuthService,
	users domain.UserRepository,
	limiter *service.AttemptLimiter,
) {
	protected := func(fn http.HandlerFunc) http.Handler {
		return RequireAuth(auth, users, fn)
	}
	admin := func(fn http.HandlerFunc) http.Handler {
		return RequireAuth(auth, users, RequireAdmin(fn))
	}

	mux.HandleFunc("GET /healthz", HandleHealth)
	mux.HandleFunc("GET /api/v1/docs", HandleDocs)

	mux.Handle("POST /api/v1/auth/register", RateLimit(limiter, http.HandlerFunc(h.Auth.HandleRegister)))
	mux.Handle("POST /api/v1/auth/login", RateLimit(limiter, http.HandlerFunc(h.Auth.HandleLogin)))
	mux.Handle("GET /api/v1/auth/me", protected(h.Auth.HandleMe))

	mux.Handle("GET /api/v1/user/profile", protected(h.User.HandleGetProfile))
	mux.Handle("PUT /api/v1/user/profile", protected(h.User.HandleUpdateProfile))

	mux.HandleFunc("GET /api/v1/events", h.Event.HandleList)
	mux.HandleFunc("GET /api/v1/events/{id}", h.Event.HandleGet)
	mux.Handle("POST /api/v1/events", protected(h.Event.HandleCreate))
	mux.Handle("POST /api/v1/events/{id}/join", protected(h.Event.HandleJoin))

	mux.Handle("GET /api/v1/files", protected(h.File.HandleList))
	mux.Handle("POST /api/v1/upload", protected(h.File.HandleUpload))
	mux.Handle("POST /api/v1/files/generate-token", protected(h.File.HandleGenerateToken))
	mux.HandleFunc("GET /api/v1/files/download", h.File.HandleDownload)
	mux.Handle("POST /api/v1/transform", protected(h.File.HandleTransform))

	mux.Handle("GET /api/v1/budget", protected(h.Budget.HandleGet))
	mux.Handle("POST /api/v1/budget", protected(h.Budget.HandleCreate))

	mux.Handle("GET /api/v1/user/payments", protected(h.Payment.HandleList))
	mux.Handle("POST /api/v1/user/create-payment", protected(h.Payment.HandleCreate))
	mux.Handle("POST /api/v1/user/execute-payment", protected(h.Payment.HandleExecute))
	mux.Handle("POST /api/v1/user/cancel-payment", protected(h.Payment.HandleCancel))

	mux.Handle("GET /api/v1/metrics", protected(h.Metrics.HandleGet))

	mux.Handle("POST /api/v1/admin/seed", admin(h.Admin.HandleSeed))

	mux.HandleFunc("GET /api/paypal/setup", h.PayPal.HandleSetup)
	mux.Handle("POST /api/paypal/order", protected(h.PayPal.HandleCreateOrder))
	mux.Handle("POST /api/paypal/order/{orderID}/capture", protected(h.PayPal.HandleCaptureOrder))

	mux.HandleFunc("GET /ws", h.WS.HandleConnect)
}
