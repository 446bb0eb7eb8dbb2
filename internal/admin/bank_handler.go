package admin

import (
	"errors"
	"fmt"
	"strings"

	"aqua-backend/internal/apperr"
	"aqua-backend/internal/audit"
	"aqua-backend/internal/database"
	"aqua-backend/internal/models"
	"aqua-backend/internal/respond"
	"aqua-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateBankRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	AccountTitle  string `json:"accountTitle" validate:"max=150"`
	AccountNumber string `json:"accountNumber" validate:"max=50"`
	Status        string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

type UpdateBankRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=100"`
	AccountTitle  *string `json:"accountTitle" validate:"omitempty,max=150"`
	AccountNumber *string `json:"accountNumber" validate:"omitempty,max=50"`
	Status        *string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

// POST /api/banks
func CreateBankHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateBankRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Invalid request body")
		}
		body.Name = strings.TrimSpace(body.Name)
		if err := validation.Struct(body); err != nil {
			return err
		}

		bank := models.Bank{
			Name:          body.Name,
			AccountTitle:  strings.TrimSpace(body.AccountTitle),
			AccountNumber: strings.TrimSpace(body.AccountNumber),
			Status:        models.StatusActive,
		}
		if body.Status != "" {
			bank.Status = models.Status(body.Status)
		}
		if err := database.DB.WithContext(c.UserContext()).Create(&bank).Error; err != nil {
			return err
		}

		audit.Record(c, "bank", bank.ID, models.AuditActionCreate,
			fmt.Sprintf("Bank added: %s", bank.Name), nil, bank)

		return respond.OK(c, fiber.StatusCreated, fiber.Map{"bank": bank})
	}
}

// GET /api/banks?status=ACTIVE
//
// Ordered by id, so the first ACTIVE row is the one invoice BANK payments use.
func ListBanksHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.WithContext(c.UserContext()).Order("id ASC")
		if s := c.Query("status"); s != "" {
			q = q.Where("status = ?", strings.ToUpper(s))
		}
		banks := make([]models.Bank, 0)
		if err := q.Find(&banks).Error; err != nil {
			return err
		}
		return respond.OK(c, fiber.StatusOK, fiber.Map{"banks": banks})
	}
}

// PUT /api/banks/:id
func UpdateBankHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c)
		if err != nil {
			return err
		}
		var body UpdateBankRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Invalid request body")
		}
		if err := validation.Struct(body); err != nil {
			return err
		}

		db := database.DB.WithContext(c.UserContext())
		var bank models.Bank
		if err := db.First(&bank, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound(fmt.Sprintf("bank %d not found", id))
			}
			return err
		}
		before := bank

		if body.Name != nil {
			if bank.Name = strings.TrimSpace(*body.Name); bank.Name == "" {
				return apperr.Validation("name must not be blank")
			}
		}
		if body.AccountTitle != nil {
			bank.AccountTitle = strings.TrimSpace(*body.AccountTitle)
		}
		if body.AccountNumber != nil {
			bank.AccountNumber = strings.TrimSpace(*body.AccountNumber)
		}
		if body.Status != nil {
			bank.Status = models.Status(*body.Status)
		}

		if err := db.Save(&bank).Error; err != nil {
			return err
		}

		audit.Record(c, "bank", bank.ID, models.AuditActionUpdate,
			fmt.Sprintf("Bank updated: %s", bank.Name), before, bank)

		return respond.OK(c, fiber.StatusOK, fiber.Map{"bank": bank})
	}
}
