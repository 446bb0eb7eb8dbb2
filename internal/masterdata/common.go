// Package masterdata serves the reference records documents point at:
// customers, employees and products.
package masterdata

import (
	"errors"
	"fmt"
	"strings"

	"aqua-backend/internal/apperr"
	"aqua-backend/internal/models"

	"gorm.io/gorm"
)

// storeError turns a duplicate code into a client error.
func storeError(entity string, err error) error {
	if apperr.IsUniqueViolation(err) {
		return apperr.Validation(entity + " code already exists")
	}
	return err
}

func findByID(db *gorm.DB, dest any, entity string, id uint) error {
	if err := db.First(dest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound(fmt.Sprintf("%s %d not found", entity, id))
		}
		return err
	}
	return nil
}

func statusOrDefault(s string) models.Status {
	if s == "" {
		return models.StatusActive
	}
	return models.Status(s)
}

// searchScope filters on status and a case-insensitive code/name match.
func searchScope(status, q string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if status != "" {
			db = db.Where("status = ?", strings.ToUpper(status))
		}
		if q = strings.TrimSpace(q); q != "" {
			like := "%" + q + "%"
			db = db.Where("(code ILIKE ? OR name ILIKE ?)", like, like)
		}
		return db
	}
}
