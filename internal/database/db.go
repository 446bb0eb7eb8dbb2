package database

import (
	"fmt"

	"aqua-backend/internal/config"
	"aqua-backend/internal/logging"
	"aqua-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) error {
	db, err := Open(cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	if err := Migrate(db); err != nil {
		return err
	}
	DB = db
	logging.Log.Info("database connected, migrations applied")
	return nil
}

func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logging.GormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}

// Migrate creates the schema plus the indexes AutoMigrate cannot express.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Employee{},
		&models.Product{},
		&models.Vendor{},
		&models.Bank{},
		&models.StockLocation{},
		&models.SalesInvoice{},
		&models.SalesInvoiceItem{},
		&models.StockMovement{},
		&models.CustomerPayment{},
		&models.CustomerPaymentAllocation{},
		&models.VendorPurchase{},
		&models.VendorPayment{},
		&models.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	// One WAREHOUSE and one DAMAGED row system-wide, one row per employee.
	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_stock_locations_singleton
			ON stock_locations (location_type)
			WHERE location_type IN ('WAREHOUSE', 'DAMAGED')`,
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_stock_locations_employee
			ON stock_locations (employee_id)
			WHERE employee_id IS NOT NULL`,
	}
	for _, s := range stmts {
		if err := db.Exec(s).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}
