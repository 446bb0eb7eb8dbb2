package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Vendor struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Code           string          `gorm:"size:30;uniqueIndex;not null" json:"code"`
	Name           string          `gorm:"size:150;not null" json:"name"`
	Phone          string          `gorm:"size:50" json:"phone"`
	Address        string          `gorm:"size:255" json:"address"`
	OpeningBalance decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"openingBalance"`
	Status         Status          `gorm:"size:20;not null;default:ACTIVE" json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// VendorPurchase is a debit on the vendor ledger.
type VendorPurchase struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	VendorID     uint            `gorm:"index;not null" json:"vendorId"`
	Vendor       Vendor          `json:"-"`
	PurchaseDate time.Time       `gorm:"type:date;index;not null" json:"purchaseDate"`
	RefNo        string          `gorm:"size:50" json:"refNo"`
	TotalAmount  decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"totalAmount"`
	Status       DocStatus       `gorm:"size:20;not null;default:POSTED" json:"status"`
	Remarks      string          `gorm:"size:255" json:"remarks"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// VendorPayment is a credit on the vendor ledger.
type VendorPayment struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	VendorID    uint            `gorm:"index;not null" json:"vendorId"`
	Vendor      Vendor          `json:"-"`
	PaymentDate time.Time       `gorm:"type:date;index;not null" json:"paymentDate"`
	Method      PaymentMethod   `gorm:"size:20;not null" json:"method"`
	BankID      *uint           `gorm:"index" json:"bankId"`
	Bank        *Bank           `json:"-"`
	RefNo       string          `gorm:"size:50" json:"refNo"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Status      DocStatus       `gorm:"size:20;not null;default:POSTED" json:"status"`
	Remarks     string          `gorm:"size:255" json:"remarks"`
	CreatedAt   time.Time       `json:"createdAt"`
}
