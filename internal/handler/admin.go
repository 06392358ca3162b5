package handler

import (
	"context"
	"net/http"
)

// Seeder loads demo data into the store.
type Seeder interface {
	Seed(ctx context.Context, bcryptCost int) error
}

// AdminHandler handles administrative requests.
type AdminHandler struct {
	seeder     Seeder
	bcryptCost int
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(seeder Seeder, bcryptCost int) *AdminHandler {
	return &AdminHandler{seeder: seeder, bcryptCost: bcryptCost}
}

// HandleSeed loads the demo dataset. Safe to call repeatedly; seeding is
// idempotent.
// POST /api/v1/admin/seed
func (h *AdminHandler) HandleSeed(w http.ResponseWriter, r *http.Request) {
	if err := h.seeder.Seed(r.Context(), h.bcryptCost); err != nil {
		respondError(w, err, "seed demo data")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Demo data seeded."})
}
