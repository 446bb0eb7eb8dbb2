package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CustomerPayment struct {
	ID             uint                        `gorm:"primaryKey" json:"id"`
	PaymentNo      string                      `gorm:"size:30;uniqueIndex" json:"paymentNo"`
	CustomerID     uint                        `gorm:"index;not null" json:"customerId"`
	Customer       Customer                    `json:"-"`
	PaymentDate    time.Time                   `gorm:"type:date;index;not null" json:"paymentDate"`
	Method         PaymentMethod               `gorm:"size:20;not null" json:"method"`
	BankID         *uint                       `gorm:"index" json:"bankId"`
	Bank           *Bank                       `json:"-"`
	ReceivedAmount decimal.Decimal             `gorm:"type:numeric(14,2);not null" json:"receivedAmount"`
	Status         DocStatus                   `gorm:"size:20;not null" json:"status"`
	Remarks        string                      `gorm:"size:255" json:"remarks"`
	Allocations    []CustomerPaymentAllocation `gorm:"foreignKey:PaymentID" json:"allocations,omitempty"`
	CreatedAt      time.Time                   `json:"createdAt"`
}

type CustomerPaymentAllocation struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	PaymentID       uint            `gorm:"index;not null" json:"paymentId"`
	InvoiceID       uint            `gorm:"index;not null" json:"invoiceId"`
	Invoice         SalesInvoice    `json:"-"`
	AllocatedAmount decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"allocatedAmount"`
}
