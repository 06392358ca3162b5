package handler

import (
	"net/http"

	"github.com/adventuresync/server/internal/domain"
	"github.com/adventuresync/server/internal/service"
)

// UserHandler handles profile requests.
type UserHandler struct {
	users *service.UserService
	stats *service.StatsService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService, stats *service.StatsService) *UserHandler {
	return &UserHandler{users: users, stats: stats}
}

// HandleGetProfile returns the caller's record together with derived stats.
// GET /api/v1/user/profile
// Response: {"user": {...}, "stats": {...}}
func (h *UserHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	stats, err := h.stats.UserStats(r.Context(), user.ID)
	if err != nil {
		respondError(w, err, "get user stats")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":  toUserDTO(user),
		"stats": toStatsDTO(stats),
	})
}

type updateProfileRequest struct {
	Name             *string `json:"name" validate:"omitempty,min=1"`
	Location         *string `json:"location"`
	TwoFactorEnabled *bool   `json:"twoFactorEnabled"`
}

// HandleUpdateProfile applies a partial update to the caller's profile.
// Password and plan fields are not part of the request shape and are
// silently ignored if present in the body.
// PUT /api/v1/user/profile
func (h *UserHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req updateProfileRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := checkRequest(req); err != nil {
		respondError(w, err, "validate profile update")
		return
	}

	updated, err := h.users.UpdateProfile(r.Context(), user.ID, domain.UserUpdate{
		Name:             req.Name,
		Location:         req.Location,
		TwoFactorEnabled: req.TwoFactorEnabled,
	})
	if err != nil {
		respondError(w, err, "update profile")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": toUserDTO(updated)})
}
