package audit

import (
	"aqua-backend/internal/database"
	"aqua-backend/internal/models"
	"aqua-backend/internal/respond"
	"aqua-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GET /api/audit-logs?entityType=sales_invoice&entityId=1&userId=2&limit=100
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.WithContext(c.UserContext()).Model(&models.AuditLog{})

		if et := c.Query("entityType"); et != "" {
			dbq = dbq.Where("entity_type = ?", et)
		}
		entityID, err := validation.QueryID(c, "entityId")
		if err != nil {
			return err
		}
		if entityID != nil {
			dbq = dbq.Where("entity_id = ?", *entityID)
		}
		userID, err := validation.QueryID(c, "userId")
		if err != nil {
			return err
		}
		if userID != nil {
			dbq = dbq.Where("user_id = ?", *userID)
		}

		limit := c.QueryInt("limit", 100)
		if limit <= 0 || limit > 500 {
			limit = 100
		}

		logs := make([]models.AuditLog, 0)
		if err := dbq.Order("created_at DESC, id DESC").Limit(limit).Find(&logs).Error; err != nil {
			return err
		}
		return respond.OK(c, fiber.StatusOK, fiber.Map{"logs": logs})
	}
}
