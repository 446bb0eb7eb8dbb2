package sales

import (
	"context"
	"testing"
	"time"

	"aqua-backend/internal/apperr"
	"aqua-backend/internal/dbtest"
	"aqua-backend/internal/models"
	"aqua-backend/internal/stock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	customer models.Customer
	product  models.Product
}

func setup(t *testing.T) fixture {
	db := dbtest.Open(t)
	return fixture{
		db:       db,
		customer: dbtest.Customer(t, db, "C-001"),
		product:  dbtest.Product(t, db, "P-19L"),
	}
}

func (f fixture) input(method models.PaymentMethod, received int64) PostInvoiceInput {
	return PostInvoiceInput{
		CustomerID: f.customer.ID,
		OrderDate:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Items: []LineInput{
			{ProductID: f.product.ID, UnitPrice: decimal.NewFromInt(100), SaleQty: 5, ReturnQty: 2},
		},
		PaymentMethod:  method,
		ReceivedAmount: decimal.NewFromInt(received),
	}
}

var skipZero = PaymentPolicy{SkipPaymentIfZero: true}

func TestPostInvoiceWritesLinesAndMovements(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	posted, err := PostInvoice(ctx, f.db, f.input(models.PaymentMethodCredit, 0), skipZero)
	require.NoError(t, err)
	assert.Equal(t, FormatInvoiceNo(posted.InvoiceID), posted.InvoiceNo)
	assert.Nil(t, posted.PaymentID)

	data := posted.InvoiceData
	require.NotNil(t, data)
	assert.Equal(t, "500.00", data.TotalAmount.StringFixed(2))
	assert.Equal(t, "500.00", data.SubtotalAmount.StringFixed(2))
	assert.True(t, data.DiscountTaxAmount.IsZero())
	assert.Equal(t, "500.00", data.BalanceDue.StringFixed(2))
	require.Len(t, data.Items, 1)
	assert.Equal(t, 1, data.Items[0].LineNo)
	assert.Equal(t, "500.00", data.Items[0].LineAmount.StringFixed(2))
	assert.Equal(t, "2024-03-01", data.OrderDate)

	wh, err := stock.WarehouseLocation(f.db)
	require.NoError(t, err)

	var moves []models.StockMovement
	require.NoError(t, f.db.Where("sales_invoice_id = ?", posted.InvoiceID).Order("id").Find(&moves).Error)
	require.Len(t, moves, 2)

	sale := moves[0]
	assert.Equal(t, models.MovementSale, sale.MovementType)
	assert.Equal(t, 5, sale.Qty)
	require.NotNil(t, sale.FromLocationID)
	assert.Equal(t, wh, *sale.FromLocationID)
	assert.Nil(t, sale.ToLocationID)
	assert.Equal(t, models.StateFilled, sale.FromState)
	assert.Equal(t, models.StateNA, sale.ToState)

	ret := moves[1]
	assert.Equal(t, models.MovementReturn, ret.MovementType)
	assert.Equal(t, 2, ret.Qty)
	assert.Nil(t, ret.FromLocationID)
	require.NotNil(t, ret.ToLocationID)
	assert.Equal(t, wh, *ret.ToLocationID)
	assert.Equal(t, models.StateNA, ret.FromState)
	assert.Equal(t, models.StateEmpty, ret.ToState)

	assert.Zero(t, dbtest.Count(t, f.db, &models.CustomerPayment{}))
}

func TestPostInvoiceCashPayment(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	posted, err := PostInvoice(ctx, f.db, f.input(models.PaymentMethodCash, 500), skipZero)
	require.NoError(t, err)
	require.NotNil(t, posted.PaymentID)

	var payment models.CustomerPayment
	require.NoError(t, f.db.Preload("Allocations").First(&payment, *posted.PaymentID).Error)
	assert.Equal(t, FormatPaymentNo(payment.ID), payment.PaymentNo)
	assert.Equal(t, models.PaymentMethodCash, payment.Method)
	assert.Nil(t, payment.BankID)
	assert.Equal(t, "500.00", payment.ReceivedAmount.StringFixed(2))
	require.Len(t, payment.Allocations, 1)
	assert.Equal(t, posted.InvoiceID, payment.Allocations[0].InvoiceID)
	assert.Equal(t, "500.00", payment.Allocations[0].AllocatedAmount.StringFixed(2))

	assert.True(t, posted.InvoiceData.BalanceDue.IsZero())
}

func TestPostInvoiceDefaultsToCash(t *testing.T) {
	f := setup(t)

	posted, err := PostInvoice(context.Background(), f.db, f.input("", 200), skipZero)
	require.NoError(t, err)
	require.NotNil(t, posted.PaymentID)

	var payment models.CustomerPayment
	require.NoError(t, f.db.First(&payment, *posted.PaymentID).Error)
	assert.Equal(t, models.PaymentMethodCash, payment.Method)
	assert.Equal(t, "300.00", posted.InvoiceData.BalanceDue.StringFixed(2))
}

func TestPostInvoiceBankUsesFirstActiveBank(t *testing.T) {
	f := setup(t)
	dbtest.Bank(t, f.db, "Closed Bank", models.StatusInactive)
	first := dbtest.Bank(t, f.db, "Main Bank", models.StatusActive)
	dbtest.Bank(t, f.db, "Second Bank", models.StatusActive)

	posted, err := PostInvoice(context.Background(), f.db, f.input(models.PaymentMethodBank, 500), skipZero)
	require.NoError(t, err)

	var payment models.CustomerPayment
	require.NoError(t, f.db.First(&payment, *posted.PaymentID).Error)
	require.NotNil(t, payment.BankID)
	assert.Equal(t, first.ID, *payment.BankID)
}

func TestPostInvoiceBankWithoutActiveBankRollsBack(t *testing.T) {
	f := setup(t)
	dbtest.Bank(t, f.db, "Closed Bank", models.StatusInactive)

	_, err := PostInvoice(context.Background(), f.db, f.input(models.PaymentMethodBank, 500), skipZero)
	require.Error(t, err)
	assert.Equal(t, "No active bank found", err.Error())
	var terr *apperr.TransactionError
	assert.ErrorAs(t, err, &terr)

	assert.Zero(t, dbtest.Count(t, f.db, &models.SalesInvoice{}))
	assert.Zero(t, dbtest.Count(t, f.db, &models.SalesInvoiceItem{}))
	assert.Zero(t, dbtest.Count(t, f.db, &models.StockMovement{}))
	assert.Zero(t, dbtest.Count(t, f.db, &models.CustomerPayment{}))
	assert.Zero(t, dbtest.Count(t, f.db, &models.CustomerPaymentAllocation{}))
}

func TestPostInvoiceUnknownProductRollsBack(t *testing.T) {
	f := setup(t)
	in := f.input(models.PaymentMethodCash, 500)
	in.Items = append(in.Items, LineInput{ProductID: 9999, UnitPrice: decimal.NewFromInt(10), SaleQty: 1})

	_, err := PostInvoice(context.Background(), f.db, in, skipZero)
	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "customerId, salesmanEmployeeId or a productId does not exist", verr.Message)

	assert.Zero(t, dbtest.Count(t, f.db, &models.SalesInvoice{}))
	assert.Zero(t, dbtest.Count(t, f.db, &models.StockMovement{}))
	assert.Zero(t, dbtest.Count(t, f.db, &models.CustomerPayment{}))
}

func TestPostInvoiceZeroPaymentPolicy(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	skipped, err := PostInvoice(ctx, f.db, f.input(models.PaymentMethodCash, 0), skipZero)
	require.NoError(t, err)
	assert.Nil(t, skipped.PaymentID)
	assert.Zero(t, dbtest.Count(t, f.db, &models.CustomerPayment{}))

	kept, err := PostInvoice(ctx, f.db, f.input(models.PaymentMethodCash, 0), PaymentPolicy{SkipPaymentIfZero: false})
	require.NoError(t, err)
	require.NotNil(t, kept.PaymentID)
	assert.EqualValues(t, 1, dbtest.Count(t, f.db, &models.CustomerPayment{}))
	assert.EqualValues(t, 1, dbtest.Count(t, f.db, &models.CustomerPaymentAllocation{}))
}

func TestRecordPaymentAllocations(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	other := dbtest.Customer(t, f.db, "C-002")

	posted, err := PostInvoice(ctx, f.db, f.input(models.PaymentMethodCredit, 0), skipZero)
	require.NoError(t, err)

	payment, err := RecordPayment(ctx, f.db, PaymentInput{
		CustomerID:     f.customer.ID,
		PaymentDate:    time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Method:         models.PaymentMethodCash,
		ReceivedAmount: decimal.NewFromInt(300),
		Allocations:    []AllocationInput{{InvoiceID: posted.InvoiceID, Amount: decimal.NewFromInt(300)}},
	})
	require.NoError(t, err)
	assert.Equal(t, FormatPaymentNo(payment.ID), payment.PaymentNo)

	data, err := LoadInvoiceData(ctx, f.db, posted.InvoiceID)
	require.NoError(t, err)
	assert.Equal(t, "200.00", data.BalanceDue.StringFixed(2))

	_, err = RecordPayment(ctx, f.db, PaymentInput{
		CustomerID:     other.ID,
		PaymentDate:    time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Method:         models.PaymentMethodCash,
		ReceivedAmount: decimal.NewFromInt(50),
		Allocations:    []AllocationInput{{InvoiceID: posted.InvoiceID, Amount: decimal.NewFromInt(50)}},
	})
	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "belongs to another customer")

	rows, err := ListPayments(ctx, f.db, PaymentFilter{CustomerID: &f.customer.ID})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, f.customer.Name, rows[0].CustomerName)
}

func TestLoadInvoiceDataNotFound(t *testing.T) {
	db := dbtest.Open(t)
	_, err := LoadInvoiceData(context.Background(), db, 42)
	var nf *apperr.NotFoundError
	assert.ErrorAs(t, err, &nf)
}
