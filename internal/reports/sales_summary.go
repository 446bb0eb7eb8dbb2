// Package reports builds the admin summaries over posted invoices and
// payments.
package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"aqua-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

func ParsePeriod(s string) (Period, bool) {
	switch Period(s) {
	case "", PeriodDaily:
		return PeriodDaily, true
	case PeriodWeekly, PeriodMonthly:
		return Period(s), true
	}
	return "", false
}

// DefaultRange ends today and covers 7 days, 8 weeks or 12 months.
func DefaultRange(p Period, now time.Time) (from, to time.Time) {
	to = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch p {
	case PeriodWeekly:
		from = to.AddDate(0, 0, -7*7)
	case PeriodMonthly:
		from = time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -11, 0)
	default:
		from = to.AddDate(0, 0, -6)
	}
	return from, to
}

type SummaryPoint struct {
	Label        string          `json:"label"`
	InvoiceCount int64           `json:"invoiceCount"`
	Invoiced     decimal.Decimal `json:"invoiced"`
	Cash         decimal.Decimal `json:"cash"`
	Bank         decimal.Decimal `json:"bank"`
	Received     decimal.Decimal `json:"received"`
}

type SalesSummary struct {
	Period      Period         `json:"period"`
	From        string         `json:"from"`
	To          string         `json:"to"`
	Points      []SummaryPoint `json:"points"`
	GrandTotals SummaryPoint   `json:"grandTotals"`
}

type invoiceBucket struct {
	Bucket time.Time
	Count  int64
	Total  decimal.Decimal
}

type paymentBucket struct {
	Bucket time.Time
	Method models.PaymentMethod
	Total  decimal.Decimal
}

// truncExpr is only ever built from a validated Period.
func truncExpr(p Period, column string) string {
	switch p {
	case PeriodWeekly:
		return fmt.Sprintf("date_trunc('week', %s)::date", column)
	case PeriodMonthly:
		return fmt.Sprintf("date_trunc('month', %s)::date", column)
	default:
		return column + "::date"
	}
}

// BuildSalesSummary totals posted invoices and payments per bucket between
// from and to, inclusive.
func BuildSalesSummary(ctx context.Context, db *gorm.DB, p Period, from, to time.Time) (*SalesSummary, error) {
	db = db.WithContext(ctx)

	var invoices []invoiceBucket
	err := db.Raw(fmt.Sprintf(`
		SELECT %s AS bucket, COUNT(*) AS count, SUM(total_amount) AS total
		FROM sales_invoices
		WHERE status = ? AND order_date >= ? AND order_date <= ?
		GROUP BY bucket
		ORDER BY bucket`, truncExpr(p, "order_date")),
		models.DocStatusPosted, from, to).Scan(&invoices).Error
	if err != nil {
		return nil, err
	}

	var payments []paymentBucket
	err = db.Raw(fmt.Sprintf(`
		SELECT %s AS bucket, method, SUM(received_amount) AS total
		FROM customer_payments
		WHERE status = ? AND payment_date >= ? AND payment_date <= ?
		GROUP BY bucket, method
		ORDER BY bucket`, truncExpr(p, "payment_date")),
		models.DocStatusPosted, from, to).Scan(&payments).Error
	if err != nil {
		return nil, err
	}

	points, grand := mergeBuckets(invoices, payments)
	return &SalesSummary{
		Period:      p,
		From:        from.Format("2006-01-02"),
		To:          to.Format("2006-01-02"),
		Points:      points,
		GrandTotals: grand,
	}, nil
}

func mergeBuckets(invoices []invoiceBucket, payments []paymentBucket) ([]SummaryPoint, SummaryPoint) {
	byBucket := make(map[time.Time]*SummaryPoint)
	get := func(t time.Time) *SummaryPoint {
		pt, ok := byBucket[t]
		if !ok {
			pt = &SummaryPoint{Label: t.Format("2006-01-02")}
			byBucket[t] = pt
		}
		return pt
	}

	for _, b := range invoices {
		pt := get(b.Bucket)
		pt.InvoiceCount += b.Count
		pt.Invoiced = pt.Invoiced.Add(b.Total)
	}
	for _, b := range payments {
		pt := get(b.Bucket)
		switch b.Method {
		case models.PaymentMethodCash:
			pt.Cash = pt.Cash.Add(b.Total)
		case models.PaymentMethodBank:
			pt.Bank = pt.Bank.Add(b.Total)
		}
		pt.Received = pt.Received.Add(b.Total)
	}

	keys := make([]time.Time, 0, len(byBucket))
	for k := range byBucket {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	points := make([]SummaryPoint, 0, len(keys))
	grand := SummaryPoint{Label: "total"}
	for _, k := range keys {
		pt := *byBucket[k]
		points = append(points, pt)
		grand.InvoiceCount += pt.InvoiceCount
		grand.Invoiced = grand.Invoiced.Add(pt.Invoiced)
		grand.Cash = grand.Cash.Add(pt.Cash)
		grand.Bank = grand.Bank.Add(pt.Bank)
		grand.Received = grand.Received.Add(pt.Received)
	}
	return points, grand
}
