package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aqua-backend/internal/apperr"
	"aqua-backend/internal/models"
	"aqua-backend/internal/stock"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrNoActiveBank = errors.New("No active bank found")

// PaymentPolicy decides whether an invoice posting records a payment.
type PaymentPolicy struct {
	// SkipPaymentIfZero treats receivedAmount 0 as "no payment", even for
	// CASH and BANK.
	SkipPaymentIfZero bool
}

// ShouldRecord reports whether a payment row is written for method/amount.
func (p PaymentPolicy) ShouldRecord(method models.PaymentMethod, amount decimal.Decimal) bool {
	if method == models.PaymentMethodCredit {
		return false
	}
	if amount.IsZero() && p.SkipPaymentIfZero {
		return false
	}
	return true
}

type LineInput struct {
	ProductID uint
	UnitPrice decimal.Decimal
	SaleQty   int
	ReturnQty int
}

// Amount is unitPrice × saleQty; returned bottles are not credited.
func (l LineInput) Amount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.SaleQty)))
}

type PostInvoiceInput struct {
	CustomerID         uint
	OrderDate          time.Time
	Items              []LineInput
	SalesmanEmployeeID *uint
	PaymentMethod      models.PaymentMethod
	ReceivedAmount     decimal.Decimal
	InvoiceNo          string
	BillNo             string
	BillBookNo         string
	Remarks            string
}

// Validate checks the posting preconditions without touching the database.
func (in PostInvoiceInput) Validate() error {
	if in.CustomerID == 0 {
		return apperr.Validation("customerId is required")
	}
	if in.OrderDate.IsZero() {
		return apperr.Validation("orderDate is required")
	}
	if len(in.Items) == 0 {
		return apperr.Validation("items must contain at least 1 item(s)")
	}
	for i, it := range in.Items {
		switch {
		case it.ProductID == 0:
			return apperr.Validation(fmt.Sprintf("items[%d].productId must be greater than 0", i))
		case it.UnitPrice.IsNegative():
			return apperr.Validation(fmt.Sprintf("items[%d].unitPrice must not be negative", i))
		case !isCents(it.UnitPrice):
			return apperr.Validation(fmt.Sprintf("items[%d].unitPrice must have at most 2 decimal places", i))
		case it.SaleQty < 0 || it.ReturnQty < 0:
			return apperr.Validation(fmt.Sprintf("items[%d]: quantities must not be negative", i))
		case it.SaleQty+it.ReturnQty == 0:
			return apperr.Validation(fmt.Sprintf("items[%d]: saleQty or returnQty must be greater than 0", i))
		}
	}
	switch in.PaymentMethod {
	case "", models.PaymentMethodCash, models.PaymentMethodBank, models.PaymentMethodCredit:
	default:
		return apperr.Validation("paymentMethod must be one of: CASH, BANK, CREDIT")
	}
	if in.ReceivedAmount.IsNegative() {
		return apperr.Validation("receivedAmount must not be negative")
	}
	if !isCents(in.ReceivedAmount) {
		return apperr.Validation("receivedAmount must have at most 2 decimal places")
	}
	return nil
}

// isCents reports whether d fits a numeric(14,2) column without rounding.
func isCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}

// Totals returns subtotal, discount/tax and total. Discount/tax is always
// zero on this path; clients cannot set it.
func Totals(items []LineInput) (subtotal, discountTax, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Amount())
	}
	discountTax = decimal.Zero
	return subtotal, discountTax, subtotal.Add(discountTax)
}

func FormatInvoiceNo(id uint) string { return fmt.Sprintf("INV-%03d", id) }

func FormatPaymentNo(id uint) string { return fmt.Sprintf("RCPT-%03d", id) }

type PostedInvoice struct {
	InvoiceID   uint         `json:"invoiceId"`
	InvoiceNo   string       `json:"invoiceNo"`
	PaymentID   *uint        `json:"paymentId,omitempty"`
	InvoiceData *InvoiceData `json:"invoiceData"`
}

// PostInvoice writes the invoice, its lines, the stock movements for every
// line and the optional payment in one transaction. Nothing is visible
// unless every step succeeds.
func PostInvoice(ctx context.Context, db *gorm.DB, in PostInvoiceInput, policy PaymentPolicy) (*PostedInvoice, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	method := in.PaymentMethod
	if method == "" {
		method = models.PaymentMethodCash
	}

	var posted PostedInvoice
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		warehouseID, err := stock.WarehouseLocation(tx)
		if err != nil {
			return err
		}

		// the id exists before the human-readable number
		invoiceID, err := nextID(tx, "sales_invoices")
		if err != nil {
			return err
		}
		invoiceNo := in.InvoiceNo
		if invoiceNo == "" {
			invoiceNo = FormatInvoiceNo(invoiceID)
		}

		subtotal, discountTax, total := Totals(in.Items)
		inv := models.SalesInvoice{
			ID:                 invoiceID,
			InvoiceNo:          invoiceNo,
			BillNo:             in.BillNo,
			BillBookNo:         in.BillBookNo,
			CustomerID:         in.CustomerID,
			SalesmanEmployeeID: in.SalesmanEmployeeID,
			OrderDate:          in.OrderDate,
			Status:             models.DocStatusPosted,
			SubtotalAmount:     subtotal,
			DiscountTaxAmount:  discountTax,
			TotalAmount:        total,
			Remarks:            in.Remarks,
		}
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}

		for i, it := range in.Items {
			item := models.SalesInvoiceItem{
				InvoiceID:  invoiceID,
				LineNo:     i + 1,
				ProductID:  it.ProductID,
				UnitPrice:  it.UnitPrice,
				SaleQty:    it.SaleQty,
				ReturnQty:  it.ReturnQty,
				LineAmount: it.Amount(),
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			if it.SaleQty > 0 {
				if err := stock.InsertInvoiceMovement(tx, models.MovementSale, warehouseID, invoiceID, it.ProductID, it.SaleQty, in.OrderDate); err != nil {
					return err
				}
			}
			if it.ReturnQty > 0 {
				if err := stock.InsertInvoiceMovement(tx, models.MovementReturn, warehouseID, invoiceID, it.ProductID, it.ReturnQty, in.OrderDate); err != nil {
					return err
				}
			}
		}

		if policy.ShouldRecord(method, in.ReceivedAmount) {
			paymentID, err := recordInvoicePayment(tx, &inv, method, in.ReceivedAmount)
			if err != nil {
				return err
			}
			posted.PaymentID = &paymentID
		}

		posted.InvoiceID = invoiceID
		posted.InvoiceNo = invoiceNo
		return nil
	})
	if err != nil {
		return nil, apperr.Transaction(apperr.MissingReference(err,
			"customerId, salesmanEmployeeId or a productId does not exist"))
	}

	// read back outside the transaction for the receipt
	data, err := LoadInvoiceData(ctx, db, posted.InvoiceID)
	if err != nil {
		return nil, err
	}
	posted.InvoiceData = data
	return &posted, nil
}

// recordInvoicePayment allocates the whole amount to inv.
func recordInvoicePayment(tx *gorm.DB, inv *models.SalesInvoice, method models.PaymentMethod, amount decimal.Decimal) (uint, error) {
	var bankID *uint
	if method == models.PaymentMethodBank {
		id, err := FirstActiveBank(tx)
		if err != nil {
			return 0, err
		}
		bankID = &id
	}

	paymentID, err := nextID(tx, "customer_payments")
	if err != nil {
		return 0, err
	}
	payment := models.CustomerPayment{
		ID:             paymentID,
		PaymentNo:      FormatPaymentNo(paymentID),
		CustomerID:     inv.CustomerID,
		PaymentDate:    inv.OrderDate,
		Method:         method,
		BankID:         bankID,
		ReceivedAmount: amount,
		Status:         models.DocStatusPosted,
		Remarks:        "Received against " + inv.InvoiceNo,
	}
	if err := tx.Create(&payment).Error; err != nil {
		return 0, err
	}
	alloc := models.CustomerPaymentAllocation{
		PaymentID:       paymentID,
		InvoiceID:       inv.ID,
		AllocatedAmount: amount,
	}
	if err := tx.Create(&alloc).Error; err != nil {
		return 0, err
	}
	return paymentID, nil
}

// FirstActiveBank picks the ACTIVE bank with the lowest id.
func FirstActiveBank(tx *gorm.DB) (uint, error) {
	var bank models.Bank
	err := tx.Select("id").Where("status = ?", models.StatusActive).Order("id ASC").Limit(1).Find(&bank).Error
	if err != nil {
		return 0, err
	}
	if bank.ID == 0 {
		return 0, ErrNoActiveBank
	}
	return bank.ID, nil
}

func nextID(tx *gorm.DB, table string) (uint, error) {
	var id uint
	err := tx.Raw("SELECT nextval(pg_get_serial_sequence(?, 'id'))", table).Scan(&id).Error
	if err != nil {
		return 0, fmt.Errorf("allocate %s id: %w", table, err)
	}
	if id == 0 {
		return 0, fmt.Errorf("allocate %s id: sequence returned no value", table)
	}
	return id, nil
}
