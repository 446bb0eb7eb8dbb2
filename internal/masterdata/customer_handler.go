package masterdata

import (
	"fmt"
	"strings"

	"aqua-backend/internal/apperr"
	"aqua-backend/internal/audit"
	"aqua-backend/internal/database"
	"aqua-backend/internal/models"
	"aqua-backend/internal/respond"
	"aqua-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateCustomerRequest struct {
	Code           string          `json:"code" validate:"required,max=30"`
	Name           string          `json:"name" validate:"required,max=150"`
	Phone          string          `json:"phone" validate:"max=50"`
	Address        string          `json:"address" validate:"max=255"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Status         string          `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

type UpdateCustomerRequest struct {
	Code           *string          `json:"code" validate:"omitempty,min=1,max=30"`
	Name           *string          `json:"name" validate:"omitempty,min=1,max=150"`
	Phone          *string          `json:"phone" validate:"omitempty,max=50"`
	Address        *string          `json:"address" validate:"omitempty,max=255"`
	OpeningBalance *decimal.Decimal `json:"openingBalance"`
	Status         *string          `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

// POST /api/customers
func CreateCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Invalid request body")
		}
		body.Code = strings.TrimSpace(body.Code)
		body.Name = strings.TrimSpace(body.Name)
		if err := validation.Struct(body); err != nil {
			return err
		}

		customer := models.Customer{
			Code:           body.Code,
			Name:           body.Name,
			Phone:          strings.TrimSpace(body.Phone),
			Address:        strings.TrimSpace(body.Address),
			OpeningBalance: body.OpeningBalance,
			Status:         statusOrDefault(body.Status),
		}
		if err := database.DB.WithContext(c.UserContext()).Create(&customer).Error; err != nil {
			return storeError("customer", err)
		}

		audit.Record(c, "customer", customer.ID, models.AuditActionCreate,
			fmt.Sprintf("Customer added: %s - %s", customer.Code, customer.Name), nil, customer)

		return respond.OK(c, fiber.StatusCreated, fiber.Map{"customer": customer})
	}
}

// GET /api/customers?status=ACTIVE&q=cafe
func ListCustomersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		customers := make([]models.Customer, 0)
		if err := database.DB.WithContext(c.UserContext()).
			Scopes(searchScope(c.Query("status"), c.Query("q"))).
			Order("code ASC").
			Find(&customers).Error; err != nil {
			return err
		}
		return respond.OK(c, fiber.StatusOK, fiber.Map{"customers": customers})
	}
}

// GET /api/customers/:id
func GetCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c)
		if err != nil {
			return err
		}
		var customer models.Customer
		if err := findByID(database.DB.WithContext(c.UserContext()), &customer, "customer", id); err != nil {
			return err
		}
		return respond.OK(c, fiber.StatusOK, fiber.Map{"customer": customer})
	}
}

// PUT /api/customers/:id
func UpdateCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c)
		if err != nil {
			return err
		}
		var body UpdateCustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Invalid request body")
		}
		if err := validation.Struct(body); err != nil {
			return err
		}

		db := database.DB.WithContext(c.UserContext())
		var customer models.Customer
		if err := findByID(db, &customer, "customer", id); err != nil {
			return err
		}
		before := customer

		if body.Code != nil {
			customer.Code = strings.TrimSpace(*body.Code)
		}
		if body.Name != nil {
			customer.Name = strings.TrimSpace(*body.Name)
		}
		if body.Phone != nil {
			customer.Phone = strings.TrimSpace(*body.Phone)
		}
		if body.Address != nil {
			customer.Address = strings.TrimSpace(*body.Address)
		}
		if body.OpeningBalance != nil {
			customer.OpeningBalance = *body.OpeningBalance
		}
		if body.Status != nil {
			customer.Status = models.Status(*body.Status)
		}
		if customer.Code == "" || customer.Name == "" {
			return apperr.Validation("code and name must not be blank")
		}

		if err := db.Save(&customer).Error; err != nil {
			return storeError("customer", err)
		}

		audit.Record(c, "customer", customer.ID, models.AuditActionUpdate,
			fmt.Sprintf("Customer updated: %s", customer.Code), before, customer)

		return respond.OK(c, fiber.StatusOK, fiber.Map{"customer": customer})
	}
}
