package stats

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/classtrack/services"
	"github.com/sahilchouksey/classtrack/utils/response"
)

// StatsHandler serves the aggregated statistics view.
type StatsHandler struct {
	service *services.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(service *services.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// GetStats handles GET /api/stats. The figures are recomputed from the
// current snapshot on every call; nothing is cached.
func (h *StatsHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.Get(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute statistics")
	}
	return response.Success(c, stats)
}
