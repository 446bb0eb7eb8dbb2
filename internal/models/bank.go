package models

import "time"

type Bank struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:100;not null" json:"name"`
	AccountTitle  string    `gorm:"size:150" json:"accountTitle"`
	AccountNumber string    `gorm:"size:50" json:"accountNumber"`
	Status        Status    `gorm:"size:20;not null;default:ACTIVE;index" json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
