package respond

import (
	"aqua-backend/internal/apperr"
	"aqua-backend/internal/logging"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// OK writes body with the success envelope.
func OK(c *fiber.Ctx, status int, body fiber.Map) error {
	if body == nil {
		body = fiber.Map{}
	}
	body["success"] = true
	return c.Status(status).JSON(body)
}

// ErrorHandler renders every handler error as {success:false, message}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status, msg := apperr.Status(err)
	if status >= fiber.StatusInternalServerError {
		logging.Log.WithFields(logrus.Fields{
			"request_id": c.Locals("requestid"),
			"path":       c.Path(),
		}).WithError(err).Error("unexpected error")
	}
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": msg,
	})
}
