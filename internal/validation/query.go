package validation

import (
	"time"

	"aqua-backend/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

// QueryID reads an optional positive integer query parameter.
func QueryID(c *fiber.Ctx, key string) (*uint, error) {
	if c.Query(key) == "" {
		return nil, nil
	}
	n := c.QueryInt(key, 0)
	if n <= 0 {
		return nil, apperr.Validation(key + " must be a positive integer")
	}
	id := uint(n)
	return &id, nil
}

// ParamID reads the :id route parameter.
func ParamID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, apperr.Validation("id must be a positive integer")
	}
	return uint(id), nil
}

// DateRange reads the optional from/to query parameters.
func DateRange(c *fiber.Ctx) (from, to *time.Time, err error) {
	if from, err = OptionalDate("from", c.Query("from")); err != nil {
		return nil, nil, err
	}
	if to, err = OptionalDate("to", c.Query("to")); err != nil {
		return nil, nil, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, apperr.Validation("to must not be before from")
	}
	return from, to, nil
}
