package reports

import (
	"testing"
	"time"

	"aqua-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(day int) time.Time { return time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC) }

func TestMergeBuckets(t *testing.T) {
	invoices := []invoiceBucket{
		{Bucket: d(2), Count: 1, Total: decimal.NewFromInt(300)},
		{Bucket: d(1), Count: 2, Total: decimal.NewFromInt(500)},
	}
	payments := []paymentBucket{
		{Bucket: d(1), Method: models.PaymentMethodCash, Total: decimal.NewFromInt(200)},
		{Bucket: d(1), Method: models.PaymentMethodBank, Total: decimal.NewFromInt(100)},
		{Bucket: d(3), Method: models.PaymentMethodCash, Total: decimal.NewFromInt(50)},
	}

	points, grand := mergeBuckets(invoices, payments)
	require.Len(t, points, 3)
	assert.Equal(t, "2024-03-01", points[0].Label)
	assert.Equal(t, "2024-03-02", points[1].Label)
	assert.Equal(t, "2024-03-03", points[2].Label)

	assert.EqualValues(t, 2, points[0].InvoiceCount)
	assert.Equal(t, "300", points[0].Received.String())
	assert.True(t, points[2].Invoiced.IsZero())

	assert.EqualValues(t, 3, grand.InvoiceCount)
	assert.Equal(t, "800", grand.Invoiced.String())
	assert.Equal(t, "250", grand.Cash.String())
	assert.Equal(t, "100", grand.Bank.String())
	assert.Equal(t, "350", grand.Received.String())
}

func TestParsePeriod(t *testing.T) {
	p, ok := ParsePeriod("")
	assert.True(t, ok)
	assert.Equal(t, PeriodDaily, p)

	p, ok = ParsePeriod("monthly")
	assert.True(t, ok)
	assert.Equal(t, PeriodMonthly, p)

	_, ok = ParsePeriod("yearly")
	assert.False(t, ok)
}

func TestDefaultRange(t *testing.T) {
	now := time.Date(2024, 3, 15, 13, 45, 0, 0, time.UTC)

	from, to := DefaultRange(PeriodDaily, now)
	assert.Equal(t, d(9), from)
	assert.Equal(t, d(15), to)

	from, _ = DefaultRange(PeriodMonthly, now)
	assert.Equal(t, time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC), from)
}
