package sales

import (
	"testing"
	"time"

	"aqua-backend/internal/apperr"
	"aqua-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() PostInvoiceInput {
	return PostInvoiceInput{
		CustomerID: 1,
		OrderDate:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Items: []LineInput{
			{ProductID: 1, UnitPrice: decimal.NewFromInt(100), SaleQty: 5, ReturnQty: 2},
		},
	}
}

func TestTotalsIgnoresReturns(t *testing.T) {
	items := []LineInput{
		{ProductID: 1, UnitPrice: decimal.NewFromInt(100), SaleQty: 5, ReturnQty: 2},
		{ProductID: 2, UnitPrice: decimal.RequireFromString("12.50"), SaleQty: 0, ReturnQty: 4},
		{ProductID: 3, UnitPrice: decimal.RequireFromString("7.25"), SaleQty: 4},
	}
	subtotal, discountTax, total := Totals(items)
	assert.Equal(t, "529.00", subtotal.StringFixed(2))
	assert.True(t, discountTax.IsZero())
	assert.True(t, total.Equal(subtotal))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PostInvoiceInput)
		want   string
	}{
		{"no customer", func(in *PostInvoiceInput) { in.CustomerID = 0 }, "customerId is required"},
		{"no items", func(in *PostInvoiceInput) { in.Items = nil }, "items must contain at least 1 item(s)"},
		{"empty line", func(in *PostInvoiceInput) { in.Items[0].SaleQty, in.Items[0].ReturnQty = 0, 0 }, "items[0]: saleQty or returnQty must be greater than 0"},
		{"negative price", func(in *PostInvoiceInput) { in.Items[0].UnitPrice = decimal.NewFromInt(-1) }, "items[0].unitPrice must not be negative"},
		{"sub-cent price", func(in *PostInvoiceInput) { in.Items[0].UnitPrice = decimal.RequireFromString("10.005") }, "items[0].unitPrice must have at most 2 decimal places"},
		{"sub-cent received", func(in *PostInvoiceInput) { in.ReceivedAmount = decimal.RequireFromString("0.001") }, "receivedAmount must have at most 2 decimal places"},
		{"unknown method", func(in *PostInvoiceInput) { in.PaymentMethod = "CHEQUE" }, "paymentMethod must be one of: CASH, BANK, CREDIT"},
		{"negative received", func(in *PostInvoiceInput) { in.ReceivedAmount = decimal.NewFromInt(-5) }, "receivedAmount must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			err := in.Validate()
			var verr *apperr.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.want, verr.Message)
		})
	}

	require.NoError(t, validInput().Validate())

	trailing := validInput()
	trailing.Items[0].UnitPrice = decimal.RequireFromString("10.500")
	require.NoError(t, trailing.Validate())
}

func TestShouldRecord(t *testing.T) {
	zero := decimal.Zero
	some := decimal.NewFromInt(500)

	skip := PaymentPolicy{SkipPaymentIfZero: true}
	keep := PaymentPolicy{SkipPaymentIfZero: false}

	assert.True(t, skip.ShouldRecord(models.PaymentMethodCash, some))
	assert.True(t, skip.ShouldRecord(models.PaymentMethodBank, some))
	assert.False(t, skip.ShouldRecord(models.PaymentMethodCredit, some))
	assert.False(t, skip.ShouldRecord(models.PaymentMethodCash, zero))

	assert.True(t, keep.ShouldRecord(models.PaymentMethodCash, zero))
	assert.False(t, keep.ShouldRecord(models.PaymentMethodCredit, zero))
}

func TestDocumentNumbers(t *testing.T) {
	assert.Equal(t, "INV-007", FormatInvoiceNo(7))
	assert.Equal(t, "INV-1234", FormatInvoiceNo(1234))
	assert.Equal(t, "RCPT-042", FormatPaymentNo(42))
}

func TestPaymentInputValidate(t *testing.T) {
	base := PaymentInput{
		CustomerID:     1,
		PaymentDate:    time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		Method:         models.PaymentMethodCash,
		ReceivedAmount: decimal.NewFromInt(300),
	}
	require.NoError(t, base.Validate())

	bank := base
	bank.Method = models.PaymentMethodBank
	assert.EqualError(t, bank.Validate(), "bankId is required for BANK payments")

	credit := base
	credit.Method = models.PaymentMethodCredit
	assert.EqualError(t, credit.Validate(), "method must be one of: CASH, BANK")

	over := base
	over.Allocations = []AllocationInput{
		{InvoiceID: 1, Amount: decimal.NewFromInt(200)},
		{InvoiceID: 2, Amount: decimal.NewFromInt(150)},
	}
	assert.EqualError(t, over.Validate(), "allocated total exceeds receivedAmount")

	dup := base
	dup.Allocations = []AllocationInput{
		{InvoiceID: 1, Amount: decimal.NewFromInt(100)},
		{InvoiceID: 1, Amount: decimal.NewFromInt(100)},
	}
	assert.EqualError(t, dup.Validate(), "invoice 1 is allocated more than once")

	fraction := base
	fraction.ReceivedAmount = decimal.RequireFromString("300.125")
	assert.EqualError(t, fraction.Validate(), "receivedAmount must have at most 2 decimal places")

	splitFraction := base
	splitFraction.Allocations = []AllocationInput{{InvoiceID: 1, Amount: decimal.RequireFromString("99.999")}}
	assert.EqualError(t, splitFraction.Validate(), "allocations[0].amount must have at most 2 decimal places")
}
