package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Code         string          `gorm:"size:30;uniqueIndex;not null" json:"code"`
	Name         string          `gorm:"size:150;not null" json:"name"`
	Unit         string          `gorm:"size:20" json:"unit"` // bottle, gallon ...
	DefaultPrice decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"defaultPrice"`
	Status       Status          `gorm:"size:20;not null;default:ACTIVE" json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}
