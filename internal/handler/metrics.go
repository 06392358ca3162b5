package handler

import (
	"net/http"

	"github.com/adventuresync/server/internal/service"
)

// MetricsHandler reports per-user and system-wide statistics.
type MetricsHandler struct {
	stats *service.StatsService
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(stats *service.StatsService) *MetricsHandler {
	return &MetricsHandler{stats: stats}
}

// HandleGet returns the caller's stats alongside system totals.
// GET /api/v1/metrics
func (h *MetricsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	stats, err := h.stats.UserStats(r.Context(), user.ID)
	if err != nil {
		respondError(w, err, "get user stats")
		return
	}
	system, err := h.stats.SystemMetrics(r.Context())
	if err != nil {
		respondError(w, err, "get system metrics")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":   toStatsDTO(stats),
		"system": toMetricsDTO(system),
	})
}
