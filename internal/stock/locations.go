package stock

import (
	"errors"
	"fmt"

	"aqua-backend/internal/apperr"
	"aqua-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	WarehouseCode = "WH-001"
	DamagedCode   = "DMG-001"
)

// WarehouseLocation returns the id of the single WAREHOUSE location,
// creating it on first use.
func WarehouseLocation(db *gorm.DB) (uint, error) {
	return singleton(db, models.LocationWarehouse, WarehouseCode, "Main Warehouse")
}

// DamagedLocation returns the id of the single DAMAGED location, creating it
// on first use.
func DamagedLocation(db *gorm.DB) (uint, error) {
	return singleton(db, models.LocationDamaged, DamagedCode, "Damaged Stock")
}

// EmployeeLocation returns the employee's own location, creating it with the
// employee's code on first use.
func EmployeeLocation(db *gorm.DB, employeeID uint) (uint, error) {
	if id, err := findLocation(db, "location_type = ? AND employee_id = ?", models.LocationEmployee, employeeID); err != nil || id != 0 {
		return id, err
	}

	var emp models.Employee
	if err := db.Select("id", "code", "name").First(&emp, employeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperr.NotFound(fmt.Sprintf("employee %d not found", employeeID))
		}
		return 0, err
	}

	loc := models.StockLocation{
		Code:         emp.Code,
		Name:         emp.Name,
		LocationType: models.LocationEmployee,
		EmployeeID:   &emp.ID,
		Status:       models.StatusActive,
	}
	if err := insertIgnoringConflict(db, &loc); err != nil {
		return 0, err
	}
	return mustFindLocation(db, "location_type = ? AND employee_id = ?", models.LocationEmployee, employeeID)
}

func singleton(db *gorm.DB, t models.LocationType, code, name string) (uint, error) {
	if id, err := findLocation(db, "location_type = ?", t); err != nil || id != 0 {
		return id, err
	}
	loc := models.StockLocation{Code: code, Name: name, LocationType: t, Status: models.StatusActive}
	if err := insertIgnoringConflict(db, &loc); err != nil {
		return 0, err
	}
	return mustFindLocation(db, "location_type = ?", t)
}

// insertIgnoringConflict lets the unique indexes decide concurrent first
// inserts; the loser re-reads the winner's row.
func insertIgnoringConflict(db *gorm.DB, loc *models.StockLocation) error {
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(loc).Error; err != nil {
		return fmt.Errorf("create %s location: %w", loc.LocationType, err)
	}
	return nil
}

func findLocation(db *gorm.DB, query string, args ...any) (uint, error) {
	var loc models.StockLocation
	err := db.Select("id").Where(query, args...).Order("id ASC").Limit(1).Find(&loc).Error
	if err != nil {
		return 0, err
	}
	return loc.ID, nil
}

func mustFindLocation(db *gorm.DB, query string, args ...any) (uint, error) {
	id, err := findLocation(db, query, args...)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		// location code collided with a row of another type
		return 0, fmt.Errorf("stock location could not be created for %v", args)
	}
	return id, nil
}

// ResolveRoute turns route endpoints into location ids. Null sides stay nil.
func ResolveRoute(db *gorm.DB, r Route, employeeID *uint) (from, to *uint, err error) {
	if from, err = resolve(db, r.From, employeeID); err != nil {
		return nil, nil, err
	}
	if to, err = resolve(db, r.To, employeeID); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

func resolve(db *gorm.DB, e Endpoint, employeeID *uint) (*uint, error) {
	var (
		id  uint
		err error
	)
	switch e {
	case EndpointNone:
		return nil, nil
	case EndpointWarehouse:
		id, err = WarehouseLocation(db)
	case EndpointDamaged:
		id, err = DamagedLocation(db)
	case EndpointEmployee:
		if employeeID == nil || *employeeID == 0 {
			return nil, apperr.Validation("employeeId is required")
		}
		id, err = EmployeeLocation(db, *employeeID)
	}
	if err != nil {
		return nil, err
	}
	return &id, nil
}
