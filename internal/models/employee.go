package models

import "time"

// Employee is a salesman or driver; each one holds stock at an EMPLOYEE
// location once it has been issued anything.
type Employee struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Code        string    `gorm:"size:30;uniqueIndex;not null" json:"code"`
	Name        string    `gorm:"size:150;not null" json:"name"`
	Phone       string    `gorm:"size:50" json:"phone"`
	Designation string    `gorm:"size:100" json:"designation"`
	Status      Status    `gorm:"size:20;not null;default:ACTIVE" json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
