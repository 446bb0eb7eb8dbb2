// Package dbtest opens a real Postgres database for integration tests.
// Tests are skipped unless TEST_DATABASE_DSN is set.
package dbtest

import (
	"os"
	"strings"
	"testing"

	"aqua-backend/internal/database"
	"aqua-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var tables = []string{
	"audit_logs",
	"customer_payment_allocations",
	"customer_payments",
	"stock_movements",
	"sales_invoice_items",
	"sales_invoices",
	"stock_locations",
	"vendor_payments",
	"vendor_purchases",
	"banks",
	"vendors",
	"products",
	"employees",
	"customers",
	"users",
}

// Open returns a migrated, empty database.
func Open(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := strings.TrimSpace(os.Getenv("TEST_DATABASE_DSN"))
	if dsn == "" {
		t.Skip("set TEST_DATABASE_DSN to run integration tests")
	}

	db, err := database.Open(dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Exec("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE").Error; err != nil {
		t.Fatalf("truncate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func Customer(t *testing.T, db *gorm.DB, code string) models.Customer {
	t.Helper()
	c := models.Customer{Code: code, Name: "Customer " + code, Status: models.StatusActive, OpeningBalance: decimal.Zero}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("create customer: %v", err)
	}
	return c
}

func Employee(t *testing.T, db *gorm.DB, code string) models.Employee {
	t.Helper()
	e := models.Employee{Code: code, Name: "Employee " + code, Status: models.StatusActive}
	if err := db.Create(&e).Error; err != nil {
		t.Fatalf("create employee: %v", err)
	}
	return e
}

func Product(t *testing.T, db *gorm.DB, code string) models.Product {
	t.Helper()
	p := models.Product{Code: code, Name: "Product " + code, Unit: "bottle", Status: models.StatusActive, DefaultPrice: decimal.NewFromInt(100)}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p
}

func Vendor(t *testing.T, db *gorm.DB, code string) models.Vendor {
	t.Helper()
	v := models.Vendor{Code: code, Name: "Vendor " + code, Status: models.StatusActive, OpeningBalance: decimal.Zero}
	if err := db.Create(&v).Error; err != nil {
		t.Fatalf("create vendor: %v", err)
	}
	return v
}

func Bank(t *testing.T, db *gorm.DB, name string, status models.Status) models.Bank {
	t.Helper()
	b := models.Bank{Name: name, Status: status}
	if err := db.Create(&b).Error; err != nil {
		t.Fatalf("create bank: %v", err)
	}
	return b
}

func Count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
