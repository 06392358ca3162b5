package handler

import "net/http"

type endpointDoc struct {
	Route       string `json:"route"`
	Description string `json:"description"`
}

// HandleDocs returns a machine-readable index of the API surface.
// GET /api/v1/docs
func HandleDocs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "Adventure Sync API",
		"version": "v1",
		"endpoints": []endpointDoc{
			{"POST /api/v1/auth/register", "Create an account"},
			{"POST /api/v1/auth/login", "Log in, returns {user, token}"},
			{"GET /api/v1/auth/me", "Current user"},
			{"GET /api/v1/user/profile", "Profile with stats"},
			{"PUT /api/v1/user/profile", "Update profile"},
			{"GET /api/v1/events", "List events (category, location, search)"},
			{"GET /api/v1/events/{id}", "Event details"},
			{"POST /api/v1/events", "Create event"},
			{"POST /api/v1/events/{id}/join", "Join event"},
			{"GET /api/v1/files", "List files"},
			{"POST /api/v1/upload", "Upload file (multipart, max 10 MiB)"},
			{"POST /api/v1/files/generate-token", "Issue 24h download token"},
			{"GET /api/v1/files/download", "Download via ?token="},
			{"POST /api/v1/transform", "File transformation (not implemented)"},
			{"GET /api/v1/budget", "Budget for ?month=&year="},
			{"POST /api/v1/budget", "Create budget"},
			{"GET /api/v1/user/payments", "Payment history"},
			{"POST /api/v1/user/create-payment", "Create pending payment"},
			{"POST /api/v1/user/execute-payment", "Complete payment"},
			{"POST /api/v1/user/cancel-payment", "Cancel payment"},
			{"GET /api/v1/metrics", "User and system stats"},
			{"POST /api/v1/admin/seed", "Seed demo data (admin)"},
			{"GET /api/paypal/setup", "Processor client token"},
			{"POST /api/paypal/order", "Create processor order"},
			{"POST /api/paypal/order/{orderID}/capture", "Capture processor order"},
			{"GET /ws", "Notification channel via ?token="},
		},
	})
}
