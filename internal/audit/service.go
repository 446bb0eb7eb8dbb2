package audit

import (
	"encoding/json"
	"fmt"

	"aqua-backend/internal/auth"
	"aqua-backend/internal/database"
	"aqua-backend/internal/logging"
	"aqua-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type LogOptions struct {
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

func WriteLog(db *gorm.DB, opts LogOptions) error {
	// jsonb needs "null", not an empty string
	entry := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  toJSON(opts.Before),
		AfterData:   toJSON(opts.After),
	}
	if err := db.Create(&entry).Error; err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}

func toJSON(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

// Record writes an audit entry for the session user of c. The request has
// already succeeded, so a failed write is logged and dropped.
func Record(c *fiber.Ctx, entityType string, entityID uint, action models.AuditAction, description string, before, after any) {
	opts := LogOptions{
		EntityType:  entityType,
		EntityID:    entityID,
		Action:      action,
		Description: description,
		Before:      before,
		After:       after,
	}
	if sess, ok := auth.SessionFrom(c); ok {
		opts.UserID = sess.UserID
		opts.UserName = sess.Name
	}
	if err := WriteLog(database.DB.WithContext(c.UserContext()), opts); err != nil {
		logging.Log.WithFields(logrus.Fields{
			"entity_type": entityType,
			"entity_id":   entityID,
		}).WithError(err).Warn("audit log not written")
	}
}
