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
)

type CreateEmployeeRequest struct {
	Code        string `json:"code" validate:"required,max=30"`
	Name        string `json:"name" validate:"required,max=150"`
	Phone       string `json:"phone" validate:"max=50"`
	Designation string `json:"designation" validate:"max=100"`
	Status      string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

type UpdateEmployeeRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=150"`
	Phone       *string `json:"phone" validate:"omitempty,max=50"`
	Designation *string `json:"designation" validate:"omitempty,max=100"`
	Status      *string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

// POST /api/employees
func CreateEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateEmployeeRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Invalid request body")
		}
		body.Code = strings.TrimSpace(body.Code)
		body.Name = strings.TrimSpace(body.Name)
		if err := validation.Struct(body); err != nil {
			return err
		}

		emp := models.Employee{
			Code:        body.Code,
			Name:        body.Name,
			Phone:       strings.TrimSpace(body.Phone),
			Designation: strings.TrimSpace(body.Designation),
			Status:      statusOrDefault(body.Status),
		}
		if err := database.DB.WithContext(c.UserContext()).Create(&emp).Error; err != nil {
			return storeError("employee", err)
		}

		audit.Record(c, "employee", emp.ID, models.AuditActionCreate,
			fmt.Sprintf("Employee added: %s - %s", emp.Code, emp.Name), nil, emp)

		return respond.OK(c, fiber.StatusCreated, fiber.Map{"employee": emp})
	}
}

// GET /api/employees?status=ACTIVE&q=ali
func ListEmployeesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		employees := make([]models.Employee, 0)
		if err := database.DB.WithContext(c.UserContext()).
			Scopes(searchScope(c.Query("status"), c.Query("q"))).
			Order("code ASC").
			Find(&employees).Error; err != nil {
			return err
		}
		return respond.OK(c, fiber.StatusOK, fiber.Map{"employees": employees})
	}
}

// PUT /api/employees/:id
//
// The code is fixed once created: it names the employee's stock location.
func UpdateEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c)
		if err != nil {
			return err
		}
		var body UpdateEmployeeRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Invalid request body")
		}
		if err := validation.Struct(body); err != nil {
			return err
		}

		db := database.DB.WithContext(c.UserContext())
		var emp models.Employee
		if err := findByID(db, &emp, "employee", id); err != nil {
			return err
		}
		before := emp

		if body.Name != nil {
			if emp.Name = strings.TrimSpace(*body.Name); emp.Name == "" {
				return apperr.Validation("name must not be blank")
			}
		}
		if body.Phone != nil {
			emp.Phone = strings.TrimSpace(*body.Phone)
		}
		if body.Designation != nil {
			emp.Designation = strings.TrimSpace(*body.Designation)
		}
		if body.Status != nil {
			emp.Status = models.Status(*body.Status)
		}

		if err := db.Save(&emp).Error; err != nil {
			return err
		}

		audit.Record(c, "employee", emp.ID, models.AuditActionUpdate,
			fmt.Sprintf("Employee updated: %s", emp.Code), before, emp)

		return respond.OK(c, fiber.StatusOK, fiber.Map{"employee": emp})
	}
}
