package debug

import (
	"context"
	"time"

	"aqua-backend/internal/database"
	"aqua-backend/internal/respond"

	"github.com/gofiber/fiber/v2"
)

const pingTimeout = 2 * time.Second

// GET /api/debug/health
func HealthHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sqlDB, err := database.DB.DB()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), pingTimeout)
		defer cancel()
		if err := sqlDB.PingContext(ctx); err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Database unreachable")
		}
		return respond.OK(c, fiber.StatusOK, fiber.Map{"status": "ok"})
	}
}
