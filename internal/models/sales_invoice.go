package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type SalesInvoice struct {
	ID                 uint               `gorm:"primaryKey" json:"id"`
	InvoiceNo          string             `gorm:"size:30;uniqueIndex;not null" json:"invoiceNo"`
	BillNo             string             `gorm:"size:30" json:"billNo"`
	BillBookNo         string             `gorm:"size:30" json:"billBookNo"`
	CustomerID         uint               `gorm:"index;not null" json:"customerId"`
	Customer           Customer           `json:"-"`
	SalesmanEmployeeID *uint              `gorm:"index" json:"salesmanEmployeeId"`
	Salesman           *Employee          `gorm:"foreignKey:SalesmanEmployeeID" json:"-"`
	OrderDate          time.Time          `gorm:"type:date;index;not null" json:"orderDate"`
	Status             DocStatus          `gorm:"size:20;not null" json:"status"`
	SubtotalAmount     decimal.Decimal    `gorm:"type:numeric(14,2);not null" json:"subtotalAmount"`
	DiscountTaxAmount  decimal.Decimal    `gorm:"type:numeric(14,2);not null;default:0" json:"discountTaxAmount"`
	TotalAmount        decimal.Decimal    `gorm:"type:numeric(14,2);not null" json:"totalAmount"`
	Remarks            string             `gorm:"size:255" json:"remarks"`
	Items              []SalesInvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
	CreatedAt          time.Time          `json:"createdAt"`
}

type SalesInvoiceItem struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	InvoiceID  uint            `gorm:"uniqueIndex:ux_invoice_line;not null" json:"invoiceId"`
	LineNo     int             `gorm:"uniqueIndex:ux_invoice_line;not null" json:"lineNo"`
	ProductID  uint            `gorm:"index;not null" json:"productId"`
	Product    Product         `json:"-"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"unitPrice"`
	SaleQty    int             `gorm:"not null;default:0" json:"saleQty"`
	ReturnQty  int             `gorm:"not null;default:0" json:"returnQty"`
	LineAmount decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"lineAmount"`
}
