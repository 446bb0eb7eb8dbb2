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

type CreateProductRequest struct {
	Code         string          `json:"code" validate:"required,max=30"`
	Name         string          `json:"name" validate:"required,max=150"`
	Unit         string          `json:"unit" validate:"max=20"`
	DefaultPrice decimal.Decimal `json:"defaultPrice" validate:"gte=0"`
	Status       string          `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

type UpdateProductRequest struct {
	Code         *string          `json:"code" validate:"omitempty,min=1,max=30"`
	Name         *string          `json:"name" validate:"omitempty,min=1,max=150"`
	Unit         *string          `json:"unit" validate:"omitempty,max=20"`
	DefaultPrice *decimal.Decimal `json:"defaultPrice" validate:"omitempty,gte=0"`
	Status       *string          `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

// POST /api/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Invalid request body")
		}
		body.Code = strings.TrimSpace(body.Code)
		body.Name = strings.TrimSpace(body.Name)
		if err := validation.Struct(body); err != nil {
			return err
		}

		p := models.Product{
			Code:         body.Code,
			Name:         body.Name,
			Unit:         strings.TrimSpace(body.Unit),
			DefaultPrice: body.DefaultPrice,
			Status:       statusOrDefault(body.Status),
		}
		if err := database.DB.WithContext(c.UserContext()).Create(&p).Error; err != nil {
			return storeError("product", err)
		}

		audit.Record(c, "product", p.ID, models.AuditActionCreate,
			fmt.Sprintf("Product added: %s - %s", p.Code, p.Name), nil, p)

		return respond.OK(c, fiber.StatusCreated, fiber.Map{"product": p})
	}
}

// GET /api/products?status=ACTIVE
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		products := make([]models.Product, 0)
		if err := database.DB.WithContext(c.UserContext()).
			Scopes(searchScope(c.Query("status"), c.Query("q"))).
			Order("code ASC").
			Find(&products).Error; err != nil {
			return err
		}
		return respond.OK(c, fiber.StatusOK, fiber.Map{"products": products})
	}
}

// PUT /api/products/:id
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c)
		if err != nil {
			return err
		}
		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Invalid request body")
		}
		if err := validation.Struct(body); err != nil {
			return err
		}

		db := database.DB.WithContext(c.UserContext())
		var p models.Product
		if err := findByID(db, &p, "product", id); err != nil {
			return err
		}
		before := p

		if body.Code != nil {
			p.Code = strings.TrimSpace(*body.Code)
		}
		if body.Name != nil {
			p.Name = strings.TrimSpace(*body.Name)
		}
		if body.Unit != nil {
			p.Unit = strings.TrimSpace(*body.Unit)
		}
		if body.DefaultPrice != nil {
			p.DefaultPrice = *body.DefaultPrice
		}
		if body.Status != nil {
			p.Status = models.Status(*body.Status)
		}
		if p.Code == "" || p.Name == "" {
			return apperr.Validation("code and name must not be blank")
		}

		if err := db.Save(&p).Error; err != nil {
			return storeError("product", err)
		}

		audit.Record(c, "product", p.ID, models.AuditActionUpdate,
			fmt.Sprintf("Product updated: %s", p.Code), before, p)

		return respond.OK(c, fiber.StatusOK, fiber.Map{"product": p})
	}
}
