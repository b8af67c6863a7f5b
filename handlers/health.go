package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/classtrack/database"
)

// HandleCheckHealth reports whether the store is reachable.
func HandleCheckHealth(c *fiber.Ctx, store *database.GORMStore) error {
	if err := store.HealthCheck(); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
