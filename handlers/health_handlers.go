package handlers

import (
	"context"

	"app/database"

	"github.com/gofiber/fiber/v2"
)

// HandleHealth reports service and database health.
// GET /api/v1/health
func HandleHealth(c *fiber.Ctx) error {
	if err := database.GetDB().Ping(context.Background()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "database": "unreachable"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
