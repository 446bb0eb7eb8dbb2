package auth

import (
	"strings"
	"time"

	"aqua-backend/internal/apperr"
	"aqua-backend/internal/config"
	"aqua-backend/internal/database"
	"aqua-backend/internal/models"
	"aqua-backend/internal/respond"
	"aqua-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type BootstrapRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func userJSON(u *models.User) fiber.Map {
	return fiber.Map{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
	}
}

// POST /api/auth/bootstrap
// Creates the first admin. Refused once any admin exists.
func BootstrapHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body BootstrapRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		if err := validation.Struct(body); err != nil {
			return err
		}

		var count int64
		if err := database.DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusForbidden, "An admin already exists")
		}

		user, err := CreateUser(body.Name, body.Email, body.Password, models.RoleAdmin)
		if err != nil {
			return err
		}
		return respond.OK(c, fiber.StatusCreated, fiber.Map{"user": userJSON(user)})
	}
}

// CreateUser hashes the password and stores the user.
func CreateUser(name, email, password string, role models.UserRole) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		return nil, createUserError(err)
	}
	return &user, nil
}

func createUserError(err error) error {
	if apperr.IsUniqueViolation(err) {
		return apperr.Validation("email already registered")
	}
	return err
}

// POST /api/auth/login
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := validation.Struct(body); err != nil {
			return err
		}
		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		var user models.User
		if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return err
		}
		c.Cookie(&fiber.Cookie{
			Name:     cfg.SessionCookie,
			Value:    token,
			Path:     "/",
			Expires:  time.Now().Add(sessionTTL),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return respond.OK(c, fiber.StatusOK, fiber.Map{"user": userJSON(&user)})
	}
}

// POST /api/auth/logout
func LogoutHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Cookie(&fiber.Cookie{
			Name:     cfg.SessionCookie,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return respond.OK(c, fiber.StatusOK, nil)
	}
}

// GET /api/auth/me
// Reads the cookie itself since /api/auth/* bypasses Middleware.
func MeHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Cookies(cfg.SessionCookie)
		if tokenStr == "" {
			tokenStr = bearerToken(c.Get(fiber.HeaderAuthorization))
		}
		claims, err := ParseToken(cfg.JWTSecret, tokenStr)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
		}
		return respond.OK(c, fiber.StatusOK, fiber.Map{"user": fiber.Map{
			"id":    claims.UserID,
			"name":  claims.Name,
			"email": claims.Email,
			"role":  claims.Role,
		}})
	}
}
