package sales

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

type AllocationInput struct {
	InvoiceID uint
	Amount    decimal.Decimal
}

// PaymentInput is a payment received outside invoice posting, optionally
// split across the customer's invoices.
type PaymentInput struct {
	CustomerID     uint
	PaymentDate    time.Time
	Method         models.PaymentMethod
	BankID         *uint
	ReceivedAmount decimal.Decimal
	Remarks        string
	Allocations    []AllocationInput
}

func (in PaymentInput) Validate() error {
	if in.CustomerID == 0 {
		return apperr.Validation("customerId is required")
	}
	if in.PaymentDate.IsZero() {
		return apperr.Validation("paymentDate is required")
	}
	switch in.Method {
	case models.PaymentMethodCash:
	case models.PaymentMethodBank:
		if in.BankID == nil || *in.BankID == 0 {
			return apperr.Validation("bankId is required for BANK payments")
		}
	default:
		return apperr.Validation("method must be one of: CASH, BANK")
	}
	if !in.ReceivedAmount.IsPositive() {
		return apperr.Validation("receivedAmount must be greater than 0")
	}
	if !isCents(in.ReceivedAmount) {
		return apperr.Validation("receivedAmount must have at most 2 decimal places")
	}
	allocated := decimal.Zero
	seen := make(map[uint]bool, len(in.Allocations))
	for i, a := range in.Allocations {
		if a.InvoiceID == 0 {
			return apperr.Validation(fmt.Sprintf("allocations[%d].invoiceId must be greater than 0", i))
		}
		if !a.Amount.IsPositive() {
			return apperr.Validation(fmt.Sprintf("allocations[%d].amount must be greater than 0", i))
		}
		if !isCents(a.Amount) {
			return apperr.Validation(fmt.Sprintf("allocations[%d].amount must have at most 2 decimal places", i))
		}
		if seen[a.InvoiceID] {
			return apperr.Validation(fmt.Sprintf("invoice %d is allocated more than once", a.InvoiceID))
		}
		seen[a.InvoiceID] = true
		allocated = allocated.Add(a.Amount)
	}
	if allocated.GreaterThan(in.ReceivedAmount) {
		return apperr.Validation("allocated total exceeds receivedAmount")
	}
	return nil
}

// RecordPayment stores a posted customer payment and its allocations.
func RecordPayment(ctx context.Context, db *gorm.DB, in PaymentInput) (*models.CustomerPayment, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var payment models.CustomerPayment
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.BankID != nil {
			var bank models.Bank
			if err := tx.First(&bank, *in.BankID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound(fmt.Sprintf("bank %d not found", *in.BankID))
				}
				return err
			}
			if bank.Status != models.StatusActive {
				return apperr.Validation(fmt.Sprintf("bank %s is not active", bank.Name))
			}
		}

		for _, a := range in.Allocations {
			var inv models.SalesInvoice
			if err := tx.Select("id", "customer_id").First(&inv, a.InvoiceID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound(fmt.Sprintf("sales invoice %d not found", a.InvoiceID))
				}
				return err
			}
			if inv.CustomerID != in.CustomerID {
				return apperr.Validation(fmt.Sprintf("sales invoice %d belongs to another customer", a.InvoiceID))
			}
		}

		id, err := nextID(tx, "customer_payments")
		if err != nil {
			return err
		}
		method := in.Method
		bankID := in.BankID
		if method == models.PaymentMethodCash {
			bankID = nil
		}
		payment = models.CustomerPayment{
			ID:             id,
			PaymentNo:      FormatPaymentNo(id),
			CustomerID:     in.CustomerID,
			PaymentDate:    in.PaymentDate,
			Method:         method,
			BankID:         bankID,
			ReceivedAmount: in.ReceivedAmount,
			Status:         models.DocStatusPosted,
			Remarks:        in.Remarks,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		for _, a := range in.Allocations {
			alloc := models.CustomerPaymentAllocation{PaymentID: id, InvoiceID: a.InvoiceID, AllocatedAmount: a.Amount}
			if err := tx.Create(&alloc).Error; err != nil {
				return err
			}
			payment.Allocations = append(payment.Allocations, alloc)
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Transaction(apperr.MissingReference(err, "customerId does not exist"))
	}
	return &payment, nil
}

type PaymentFilter struct {
	CustomerID *uint
	From       *time.Time
	To         *time.Time
}

type PaymentRow struct {
	ID             uint                 `json:"id"`
	PaymentNo      string               `json:"paymentNo"`
	PaymentDate    time.Time            `json:"paymentDate"`
	CustomerID     uint                 `json:"customerId"`
	CustomerName   string               `json:"customerName"`
	Method         models.PaymentMethod `json:"method"`
	BankName       *string              `json:"bankName"`
	ReceivedAmount decimal.Decimal      `json:"receivedAmount"`
	Remarks        string               `json:"remarks"`
}

func ListPayments(ctx context.Context, db *gorm.DB, f PaymentFilter) ([]PaymentRow, error) {
	q := db.WithContext(ctx).
		Table("customer_payments AS p").
		Select("p.id, p.payment_no, p.payment_date, p.customer_id, c.name AS customer_name, p.method, b.name AS bank_name, p.received_amount, p.remarks").
		Joins("JOIN customers c ON c.id = p.customer_id").
		Joins("LEFT JOIN banks b ON b.id = p.bank_id").
		Where("p.status = ?", models.DocStatusPosted)
	if f.CustomerID != nil {
		q = q.Where("p.customer_id = ?", *f.CustomerID)
	}
	if f.From != nil {
		q = q.Where("p.payment_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("p.payment_date <= ?", *f.To)
	}
	rows := make([]PaymentRow, 0)
	if err := q.Order("p.payment_date DESC, p.id DESC").Limit(maxInvoiceList).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
