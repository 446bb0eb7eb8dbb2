package models

import "time"

type LocationType string

const (
	LocationWarehouse LocationType = "WAREHOUSE"
	LocationDamaged   LocationType = "DAMAGED"
	LocationEmployee  LocationType = "EMPLOYEE"
)

type MovementType string

const (
	MovementSale    MovementType = "SALE"
	MovementReturn  MovementType = "RETURN"
	MovementIn      MovementType = "IN"
	MovementOut     MovementType = "OUT"
	MovementFilling MovementType = "FILLING"
	MovementDamage  MovementType = "DAMAGE"
)

// BottleState is the condition of stock at one end of a movement. NA marks
// the customer side, which has no location row.
type BottleState string

const (
	StateFilled BottleState = "FILLED"
	StateEmpty  BottleState = "EMPTY"
	StateNA     BottleState = "NA"
)

// StockLocation is a stock-holding point. WAREHOUSE and DAMAGED are
// singletons; EMPLOYEE rows are unique per employee (see database.Migrate).
type StockLocation struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Code         string       `gorm:"size:30;uniqueIndex;not null" json:"code"`
	Name         string       `gorm:"size:150;not null" json:"name"`
	LocationType LocationType `gorm:"size:20;not null" json:"locationType"`
	EmployeeID   *uint        `json:"employeeId"`
	Employee     *Employee    `json:"-"`
	Status       Status       `gorm:"size:20;not null;default:ACTIVE" json:"status"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// StockMovement is one directed transfer of Qty units. Rows are never
// updated or deleted; stock on hand is the sum over movements.
type StockMovement struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	OccurredOn     time.Time      `gorm:"type:date;index;not null" json:"occurredOn"`
	MovementType   MovementType   `gorm:"size:20;index;not null" json:"movementType"`
	ProductID      uint           `gorm:"index;not null" json:"productId"`
	Product        Product        `json:"-"`
	Qty            int            `gorm:"not null;check:qty > 0" json:"qty"`
	FromLocationID *uint          `gorm:"index" json:"fromLocationId"`
	FromLocation   *StockLocation `gorm:"foreignKey:FromLocationID" json:"-"`
	ToLocationID   *uint          `gorm:"index" json:"toLocationId"`
	ToLocation     *StockLocation `gorm:"foreignKey:ToLocationID" json:"-"`
	FromState      BottleState    `gorm:"size:10;not null" json:"fromState"`
	ToState        BottleState    `gorm:"size:10;not null" json:"toState"`
	Remarks        string         `gorm:"size:255" json:"remarks"`
	SalesInvoiceID *uint          `gorm:"index" json:"salesInvoiceId"`
	CreatedAt      time.Time      `json:"createdAt"`
}
