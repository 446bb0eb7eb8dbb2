package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aqua-backend/internal/apperr"
	"aqua-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	EntryPurchase = "PURCHASE"
	EntryPayment  = "PAYMENT"
)

type VendorLedgerRow struct {
	ID        uint            `json:"id"`
	EntryDate time.Time       `json:"entryDate"`
	EntryType string          `json:"entryType"`
	RefNo     string          `json:"refNo"`
	Remarks   string          `json:"remarks"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Balance   decimal.Decimal `json:"balance"`
}

type VendorStatement struct {
	VendorID       uint              `json:"vendorId"`
	VendorCode     string            `json:"vendorCode"`
	VendorName     string            `json:"vendorName"`
	OpeningBalance decimal.Decimal   `json:"openingBalance"`
	ClosingBalance decimal.Decimal   `json:"closingBalance"`
	Rows           []VendorLedgerRow `json:"rows"`
}

// vendorEntriesSQL lists every posted purchase (debit) and payment (credit)
// of one vendor.
const vendorEntriesSQL = `
SELECT p.id, p.purchase_date AS entry_date, 'PURCHASE' AS entry_type, p.ref_no, p.remarks,
	p.total_amount AS debit, 0::numeric AS credit
FROM vendor_purchases p
WHERE p.vendor_id = @vendor_id AND p.status = @posted
UNION ALL
SELECT y.id, y.payment_date, 'PAYMENT', y.ref_no, y.remarks,
	0::numeric, y.amount
FROM vendor_payments y
WHERE y.vendor_id = @vendor_id AND y.status = @posted`

// The window runs over the vendor's whole history; from/to only trim the
// projected rows so each balance stays cumulative.
const vendorLedgerSQL = `
SELECT r.id, r.entry_date, r.entry_type, r.ref_no, r.remarks, r.debit, r.credit, r.balance
FROM (
	SELECT e.*,
		@opening + SUM(e.debit - e.credit) OVER (
			ORDER BY e.entry_date, e.entry_type, e.ref_no, e.id
			ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW
		) AS balance
	FROM (` + vendorEntriesSQL + `) e
) r
WHERE (CAST(@from AS date) IS NULL OR r.entry_date >= CAST(@from AS date))
	AND (CAST(@to AS date) IS NULL OR r.entry_date <= CAST(@to AS date))
ORDER BY r.entry_date, r.entry_type, r.ref_no, r.id`

const vendorBalanceBeforeSQL = `
SELECT COALESCE(SUM(e.debit - e.credit), 0) AS amount
FROM (` + vendorEntriesSQL + `) e
WHERE e.entry_date < CAST(@from AS date)`

// ledgerArgs binds the named parameters of vendorLedgerSQL and
// vendorBalanceBeforeSQL. gorm reads "@name::type" as one name, so the
// statements cast with CAST(@name AS type).
func ledgerArgs(vendor *models.Vendor, from, to *time.Time) map[string]any {
	return map[string]any{
		"vendor_id": vendor.ID,
		"posted":    models.DocStatusPosted,
		"opening":   vendor.OpeningBalance,
		"from":      from,
		"to":        to,
	}
}

// VendorLedger returns the vendor's entries between from and to (both
// optional, inclusive) with a running balance. OpeningBalance is the balance
// carried into the period.
func VendorLedger(ctx context.Context, db *gorm.DB, vendorID uint, from, to *time.Time) (*VendorStatement, error) {
	db = db.WithContext(ctx)

	var vendor models.Vendor
	if err := db.First(&vendor, vendorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("vendor %d not found", vendorID))
		}
		return nil, err
	}

	args := ledgerArgs(&vendor, from, to)

	rows := make([]VendorLedgerRow, 0)
	if err := db.Raw(vendorLedgerSQL, args).Scan(&rows).Error; err != nil {
		return nil, err
	}

	opening := vendor.OpeningBalance
	if from != nil {
		var before struct{ Amount decimal.Decimal }
		if err := db.Raw(vendorBalanceBeforeSQL, args).Scan(&before).Error; err != nil {
			return nil, err
		}
		opening = opening.Add(before.Amount)
	}

	closing := opening
	if n := len(rows); n > 0 {
		closing = rows[n-1].Balance
	}

	return &VendorStatement{
		VendorID:       vendor.ID,
		VendorCode:     vendor.Code,
		VendorName:     vendor.Name,
		OpeningBalance: opening,
		ClosingBalance: closing,
		Rows:           rows,
	}, nil
}
