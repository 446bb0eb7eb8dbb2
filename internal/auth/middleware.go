package auth

import (
	"strings"

	"aqua-backend/internal/config"
	"aqua-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const CtxSessionKey = "session"

// Session is the verified identity of the current request.
type Session struct {
	UserID uint
	Name   string
	Email  string
	Role   models.UserRole
}

func (s *Session) IsAdmin() bool { return s != nil && s.Role == models.RoleAdmin }

// SessionFrom returns the session stored by Middleware.
func SessionFrom(c *fiber.Ctx) (*Session, bool) {
	s, ok := c.Locals(CtxSessionKey).(*Session)
	return s, ok && s != nil
}

var publicPrefixes = []string{"/api/auth/", "/api/debug/"}

// Middleware guards /api. Auth and debug paths are public; everything else
// needs a valid session cookie (or Bearer token), and admin prefixes also
// need the admin role.
func Middleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if hasAnyPrefix(path, publicPrefixes) {
			return c.Next()
		}

		tokenStr := c.Cookies(cfg.SessionCookie)
		if tokenStr == "" {
			tokenStr = bearerToken(c.Get(fiber.HeaderAuthorization))
		}
		if tokenStr == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
		}

		claims, err := ParseToken(cfg.JWTSecret, tokenStr)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Session expired or invalid")
		}
		sess := &Session{UserID: claims.UserID, Name: claims.Name, Email: claims.Email, Role: claims.Role}

		if hasAnyPrefix(path, cfg.AdminPathPrefixes) && !sess.IsAdmin() {
			return fiber.NewError(fiber.StatusForbidden, "Admin access required")
		}

		c.Locals(CtxSessionKey, sess)
		return c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// hasAnyPrefix matches whole path segments, so /api/users matches
// /api/users and /api/users/1 but not /api/usersettings.
func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasSuffix(p, "/") {
			if strings.HasPrefix(path, p) {
				return true
			}
			continue
		}
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
