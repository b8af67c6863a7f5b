package seed

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/classtrack/database"
	"github.com/sahilchouksey/classtrack/utils/response"
)

// SeedHandler exposes the destructive reseed operation.
type SeedHandler struct {
	seeder *database.Seeder
}

// NewSeedHandler creates a new seed handler
func NewSeedHandler(seeder *database.Seeder) *SeedHandler {
	return &SeedHandler{seeder: seeder}
}

// Reseed handles POST /api/seed. It replaces the entire store contents with
// the fixed demo dataset in one transaction; on failure the store is left
// unchanged.
func (h *SeedHandler) Reseed(c *fiber.Ctx) error {
	if err := h.seeder.Reseed(); err != nil {
		return response.InternalServerError(c, "Failed to reseed database")
	}
	return response.SuccessWithMessage(c, "Database seeded with demo data", nil)
}
