package logging

import (
	"time"

	"aqua-backend/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	gormlogger "gorm.io/gorm/logger"
)

// Log is the process-wide logger. Init configures it from settings.
var Log = logrus.New()

func Init(level string) {
	Log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		Log.WithField("level", level).Warn("unknown log level, using info")
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)
}

// GormLogger routes SQL warnings and slow queries into Log.
func GormLogger() gormlogger.Interface {
	return gormlogger.New(Log, gormlogger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// RequestLogger writes one entry per request. It expects the requestid
// middleware to run first.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		// the error handler has not rendered err yet
		status := c.Response().StatusCode()
		if err != nil {
			status, _ = apperr.Status(err)
		}

		entry := Log.WithFields(logrus.Fields{
			"request_id": c.Locals("requestid"),
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
		})
		switch {
		case status >= 500:
			entry.Error("request failed")
		case status >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request")
		}
		return err
	}
}
