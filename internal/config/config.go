package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const defaultDSN = "host=localhost user=postgres password=postgres dbname=aqua port=5432 sslmode=disable"

type Config struct {
	HTTPPort          string
	DatabaseDSN       string
	JWTSecret         string
	CORSOrigins       string
	SessionCookie     string
	AdminPathPrefixes []string
	// SkipPaymentIfZero keeps the posting rule where a CASH/BANK invoice with
	// receivedAmount 0 records no payment at all.
	SkipPaymentIfZero bool
	LogLevel          string
}

func Load() *Config {
	// .env is optional, real env always wins
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:       getEnv("DATABASE_DSN", defaultDSN),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		CORSOrigins:       strings.Join(splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")), ","),
		SessionCookie:     getEnv("SESSION_COOKIE", "session"),
		AdminPathPrefixes: splitList(getEnv("ADMIN_PATH_PREFIXES", "/api/users,/api/banks,/api/audit-logs,/api/reports")),
		SkipPaymentIfZero: getBool("SKIP_ZERO_PAYMENT", true),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}

	if cfg.DatabaseDSN == defaultDSN {
		logrus.Warn("DATABASE_DSN not set, using local default")
	}
	if cfg.CORSOrigins == "http://localhost:3000" {
		logrus.Warn("CORS_ALLOWED_ORIGINS not set, allowing only http://localhost:3000")
	}

	return cfg
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters")
	}
	if c.SessionCookie == "" {
		return errors.New("SESSION_COOKIE must not be empty")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		logrus.WithField("key", key).Warnf("invalid boolean %q, using %v", v, def)
		return def
	}
	return b
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
