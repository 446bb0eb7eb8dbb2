package stock

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
)

type CreateMovementRequest struct {
	OccurredOn   string `json:"occurredOn" validate:"required,date"`
	MovementType string `json:"movementType" validate:"required"`
	ProductID    uint   `json:"productId" validate:"gt=0"`
	Qty          int    `json:"qty" validate:"gt=0"`
	EmployeeID   *uint  `json:"employeeId"`
	Remarks      string `json:"remarks" validate:"max=255"`
}

// toInput validates the request completely before any database access.
func (r CreateMovementRequest) toInput() (MovementInput, error) {
	if err := validation.Struct(r); err != nil {
		return MovementInput{}, err
	}
	mt := models.MovementType(strings.ToUpper(strings.TrimSpace(r.MovementType)))
	if _, err := Classify(mt, r.EmployeeID); err != nil {
		return MovementInput{}, err
	}
	d, err := validation.ParseDate("occurredOn", r.OccurredOn)
	if err != nil {
		return MovementInput{}, err
	}
	return MovementInput{
		OccurredOn:   d,
		MovementType: mt,
		ProductID:    r.ProductID,
		Qty:          r.Qty,
		EmployeeID:   r.EmployeeID,
		Remarks:      strings.TrimSpace(r.Remarks),
	}, nil
}

// POST /api/stock/movements
func CreateMovementHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateMovementRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Invalid request body")
		}
		in, err := body.toInput()
		if err != nil {
			return err
		}

		mv, err := RecordMovement(c.UserContext(), database.DB, in)
		if err != nil {
			return err
		}

		audit.Record(c, "stock_movement", mv.ID, models.AuditActionCreate,
			fmt.Sprintf("%s movement: product %d qty %d", mv.MovementType, mv.ProductID, mv.Qty), nil, mv)

		return respond.OK(c, fiber.StatusCreated, fiber.Map{"movementId": mv.ID})
	}
}

// GET /api/stock/movements?movementType=OUT&employeeId=3&productId=1&from=2024-01-01&to=2024-01-31&limit=100
func ListMovementsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := parseMovementFilter(c)
		if err != nil {
			return err
		}
		rows, err := ListMovements(c.UserContext(), database.DB, f)
		if err != nil {
			return err
		}
		return respond.OK(c, fiber.StatusOK, fiber.Map{"movements": rows})
	}
}

func parseMovementFilter(c *fiber.Ctx) (MovementFilter, error) {
	var f MovementFilter
	if mt := strings.ToUpper(strings.TrimSpace(c.Query("movementType"))); mt != "" {
		switch models.MovementType(mt) {
		case models.MovementSale, models.MovementReturn, models.MovementIn,
			models.MovementOut, models.MovementFilling, models.MovementDamage:
			f.MovementType = models.MovementType(mt)
		default:
			return f, apperr.Validation("movementType is invalid")
		}
	}
	var err error
	if f.EmployeeID, err = validation.QueryID(c, "employeeId"); err != nil {
		return f, err
	}
	if f.ProductID, err = validation.QueryID(c, "productId"); err != nil {
		return f, err
	}
	if f.From, f.To, err = validation.DateRange(c); err != nil {
		return f, err
	}
	if c.Query("limit") != "" {
		f.Limit = c.QueryInt("limit", 0)
		if f.Limit <= 0 {
			return f, apperr.Validation("limit must be a positive integer")
		}
	}
	return f, nil
}

// GET /api/stock/locations
func ListLocationsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		locs, err := ListLocations(c.UserContext(), database.DB)
		if err != nil {
			return err
		}
		return respond.OK(c, fiber.StatusOK, fiber.Map{"locations": locs})
	}
}

// GET /api/stock/balances?locationId=1
func BalancesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		locationID, err := validation.QueryID(c, "locationId")
		if err != nil {
			return err
		}
		rows, err := Balances(c.UserContext(), database.DB, locationID)
		if err != nil {
			return err
		}
		return respond.OK(c, fiber.StatusOK, fiber.Map{"balances": rows})
	}
}
