// Package ledger holds the read-only balance projections. Nothing here is
// stored: every figure is recomputed from posted documents on each call.
package ledger

import (
	"context"
	"fmt"

	"aqua-backend/internal/apperr"
	"aqua-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CustomerBalance struct {
	CustomerID     uint            `json:"customerId"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Invoiced       decimal.Decimal `json:"invoiced"`
	Received       decimal.Decimal `json:"received"`
	Outstanding    decimal.Decimal `json:"outstanding"`
}

type OutstandingFilter struct {
	CustomerID  *uint
	NonZeroOnly bool
}

const customerOutstandingSQL = `
SELECT t.customer_id, t.code, t.name, t.phone, t.opening_balance, t.invoiced, t.received,
	t.opening_balance + t.invoiced - t.received AS outstanding
FROM (
	SELECT c.id AS customer_id, c.code, c.name, c.phone, c.opening_balance,
		COALESCE((SELECT SUM(si.total_amount) FROM sales_invoices si
			WHERE si.customer_id = c.id AND si.status = @posted), 0) AS invoiced,
		COALESCE((SELECT SUM(p.received_amount) FROM customer_payments p
			WHERE p.customer_id = c.id AND p.status = @posted), 0) AS received
	FROM customers c
	WHERE (@customer_id = 0 OR c.id = @customer_id)
) t`

// CustomerOutstanding returns opening balance + posted invoices - posted
// payments per customer, ordered by customer code.
func CustomerOutstanding(ctx context.Context, db *gorm.DB, f OutstandingFilter) ([]CustomerBalance, error) {
	var customerID uint
	if f.CustomerID != nil {
		customerID = *f.CustomerID
	}
	query := customerOutstandingSQL
	if f.NonZeroOnly {
		query += "\nWHERE t.opening_balance + t.invoiced - t.received <> 0"
	}
	query += "\nORDER BY t.code"

	rows := make([]CustomerBalance, 0)
	err := db.WithContext(ctx).Raw(query, map[string]any{
		"posted":      models.DocStatusPosted,
		"customer_id": customerID,
	}).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CustomerOutstandingByID is CustomerOutstanding for one customer.
func CustomerOutstandingByID(ctx context.Context, db *gorm.DB, customerID uint) (*CustomerBalance, error) {
	rows, err := CustomerOutstanding(ctx, db, OutstandingFilter{CustomerID: &customerID})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperr.NotFound(fmt.Sprintf("customer %d not found", customerID))
	}
	return &rows[0], nil
}
