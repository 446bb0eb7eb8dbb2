// Package admin holds the admin-only management endpoints.
package admin

import (
	"fmt"
	"strings"

	"aqua-backend/internal/apperr"
	"aqua-backend/internal/audit"
	"aqua-backend/internal/auth"
	"aqua-backend/internal/database"
	"aqua-backend/internal/models"
	"aqua-backend/internal/respond"
	"aqua-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin staff"`
}

// POST /api/users
func CreateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Invalid request body")
		}
		body.Name = strings.TrimSpace(body.Name)
		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		if err := validation.Struct(body); err != nil {
			return err
		}

		user, err := auth.CreateUser(body.Name, body.Email, body.Password, models.UserRole(body.Role))
		if err != nil {
			return err
		}

		audit.Record(c, "user", user.ID, models.AuditActionCreate,
			fmt.Sprintf("User added: %s (%s)", user.Email, user.Role), nil, user)

		return respond.OK(c, fiber.StatusCreated, fiber.Map{"user": user})
	}
}

// GET /api/users
func ListUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		users := make([]models.User, 0)
		if err := database.DB.WithContext(c.UserContext()).Order("id ASC").Find(&users).Error; err != nil {
			return err
		}
		return respond.OK(c, fiber.StatusOK, fiber.Map{"users": users})
	}
}
