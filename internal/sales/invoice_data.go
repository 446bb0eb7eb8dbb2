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

// InvoiceData is the denormalized invoice used for receipt printing.
type InvoiceData struct {
	ID                uint              `json:"id"`
	InvoiceNo         string            `json:"invoiceNo"`
	BillNo            string            `json:"billNo"`
	BillBookNo        string            `json:"billBookNo"`
	OrderDate         string            `json:"orderDate"`
	Status            models.DocStatus  `json:"status"`
	Customer          InvoiceParty      `json:"customer"`
	Salesman          *InvoiceParty     `json:"salesman"`
	Items             []InvoiceDataItem `json:"items"`
	SubtotalAmount    decimal.Decimal   `json:"subtotalAmount"`
	DiscountTaxAmount decimal.Decimal   `json:"discountTaxAmount"`
	TotalAmount       decimal.Decimal   `json:"totalAmount"`
	ReceivedAmount    decimal.Decimal   `json:"receivedAmount"`
	BalanceDue        decimal.Decimal   `json:"balanceDue"`
	Remarks           string            `json:"remarks"`
	CreatedAt         time.Time         `json:"createdAt"`
}

type InvoiceParty struct {
	ID      uint   `json:"id"`
	Code    string `json:"code"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type InvoiceDataItem struct {
	LineNo      int             `json:"lineNo"`
	ProductID   uint            `json:"productId"`
	ProductCode string          `json:"productCode"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	SaleQty     int             `json:"saleQty"`
	ReturnQty   int             `json:"returnQty"`
	LineAmount  decimal.Decimal `json:"lineAmount"`
}

func LoadInvoiceData(ctx context.Context, db *gorm.DB, invoiceID uint) (*InvoiceData, error) {
	var inv models.SalesInvoice
	err := db.WithContext(ctx).
		Preload("Customer").
		Preload("Salesman").
		Preload("Items", func(q *gorm.DB) *gorm.DB { return q.Order("line_no ASC") }).
		Preload("Items.Product").
		First(&inv, invoiceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("sales invoice %d not found", invoiceID))
		}
		return nil, err
	}

	var paid struct{ Received decimal.Decimal }
	err = db.WithContext(ctx).
		Table("customer_payment_allocations AS a").
		Joins("JOIN customer_payments p ON p.id = a.payment_id").
		Where("a.invoice_id = ? AND p.status = ?", invoiceID, models.DocStatusPosted).
		Select("COALESCE(SUM(a.allocated_amount), 0) AS received").
		Scan(&paid).Error
	if err != nil {
		return nil, err
	}
	received := paid.Received

	data := &InvoiceData{
		ID:         inv.ID,
		InvoiceNo:  inv.InvoiceNo,
		BillNo:     inv.BillNo,
		BillBookNo: inv.BillBookNo,
		OrderDate:  inv.OrderDate.Format("2006-01-02"),
		Status:     inv.Status,
		Customer: InvoiceParty{
			ID:      inv.Customer.ID,
			Code:    inv.Customer.Code,
			Name:    inv.Customer.Name,
			Phone:   inv.Customer.Phone,
			Address: inv.Customer.Address,
		},
		Items:             make([]InvoiceDataItem, 0, len(inv.Items)),
		SubtotalAmount:    inv.SubtotalAmount,
		DiscountTaxAmount: inv.DiscountTaxAmount,
		TotalAmount:       inv.TotalAmount,
		ReceivedAmount:    received,
		BalanceDue:        inv.TotalAmount.Sub(received),
		Remarks:           inv.Remarks,
		CreatedAt:         inv.CreatedAt,
	}
	if inv.Salesman != nil {
		data.Salesman = &InvoiceParty{ID: inv.Salesman.ID, Code: inv.Salesman.Code, Name: inv.Salesman.Name, Phone: inv.Salesman.Phone}
	}
	for _, it := range inv.Items {
		data.Items = append(data.Items, InvoiceDataItem{
			LineNo:      it.LineNo,
			ProductID:   it.ProductID,
			ProductCode: it.Product.Code,
			ProductName: it.Product.Name,
			UnitPrice:   it.UnitPrice,
			SaleQty:     it.SaleQty,
			ReturnQty:   it.ReturnQty,
			LineAmount:  it.LineAmount,
		})
	}
	return data, nil
}

const maxInvoiceList = 200

type InvoiceFilter struct {
	CustomerID *uint
	From       *time.Time
	To         *time.Time
}

type InvoiceSummary struct {
	ID             uint             `json:"id"`
	InvoiceNo      string           `json:"invoiceNo"`
	BillNo         string           `json:"billNo"`
	BillBookNo     string           `json:"billBookNo"`
	OrderDate      time.Time        `json:"orderDate"`
	CustomerID     uint             `json:"customerId"`
	CustomerName   string           `json:"customerName"`
	SalesmanName   *string          `json:"salesmanName"`
	Status         models.DocStatus `json:"status"`
	TotalAmount    decimal.Decimal  `json:"totalAmount"`
	ReceivedAmount decimal.Decimal  `json:"receivedAmount"`
}

// ListInvoices returns the most recent invoices, newest first.
func ListInvoices(ctx context.Context, db *gorm.DB, f InvoiceFilter) ([]InvoiceSummary, error) {
	q := db.WithContext(ctx).
		Table("sales_invoices AS si").
		Select(`si.id, si.invoice_no, si.bill_no, si.bill_book_no, si.order_date, si.customer_id,
			c.name AS customer_name, e.name AS salesman_name, si.status, si.total_amount,
			COALESCE((SELECT SUM(a.allocated_amount)
				FROM customer_payment_allocations a
				JOIN customer_payments p ON p.id = a.payment_id AND p.status = 'POSTED'
				WHERE a.invoice_id = si.id), 0) AS received_amount`).
		Joins("JOIN customers c ON c.id = si.customer_id").
		Joins("LEFT JOIN employees e ON e.id = si.salesman_employee_id")

	if f.CustomerID != nil {
		q = q.Where("si.customer_id = ?", *f.CustomerID)
	}
	if f.From != nil {
		q = q.Where("si.order_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("si.order_date <= ?", *f.To)
	}

	rows := make([]InvoiceSummary, 0)
	if err := q.Order("si.order_date DESC, si.id DESC").Limit(maxInvoiceList).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
