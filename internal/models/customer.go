package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
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
