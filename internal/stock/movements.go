package stock

import (
	"context"
	"time"

	"aqua-backend/internal/apperr"
	"aqua-backend/internal/models"

	"gorm.io/gorm"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

// MovementInput is a standalone movement already parsed and validated at
// the boundary.
type MovementInput struct {
	OccurredOn   time.Time
	MovementType models.MovementType
	ProductID    uint
	Qty          int
	EmployeeID   *uint
	Remarks      string
}

// RecordMovement classifies the movement, resolves both endpoints and inserts
// the row in one transaction.
func RecordMovement(ctx context.Context, db *gorm.DB, in MovementInput) (*models.StockMovement, error) {
	route, err := Classify(in.MovementType, in.EmployeeID)
	if err != nil {
		return nil, err
	}
	// FILLING and DAMAGE never carry an employee
	employeeID := in.EmployeeID
	if !route.NeedsEmployee() {
		employeeID = nil
	}

	var mv models.StockMovement
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		from, to, err := ResolveRoute(tx, route, employeeID)
		if err != nil {
			return err
		}
		mv = models.StockMovement{
			OccurredOn:     in.OccurredOn,
			MovementType:   in.MovementType,
			ProductID:      in.ProductID,
			Qty:            in.Qty,
			FromLocationID: from,
			ToLocationID:   to,
			FromState:      route.FromState,
			ToState:        route.ToState,
			Remarks:        in.Remarks,
		}
		return tx.Create(&mv).Error
	})
	if err != nil {
		return nil, apperr.Transaction(apperr.MissingReference(err, "productId does not exist"))
	}
	return &mv, nil
}

// InsertInvoiceMovement writes one SALE or RETURN movement for an invoice
// line inside the caller's transaction.
func InsertInvoiceMovement(tx *gorm.DB, t models.MovementType, warehouseID uint, invoiceID uint, productID uint, qty int, occurredOn time.Time) error {
	route, err := InvoiceRoute(t)
	if err != nil {
		return err
	}
	mv := models.StockMovement{
		OccurredOn:     occurredOn,
		MovementType:   t,
		ProductID:      productID,
		Qty:            qty,
		FromState:      route.FromState,
		ToState:        route.ToState,
		SalesInvoiceID: &invoiceID,
	}
	if route.From == EndpointWarehouse {
		mv.FromLocationID = &warehouseID
	}
	if route.To == EndpointWarehouse {
		mv.ToLocationID = &warehouseID
	}
	return tx.Create(&mv).Error
}

// MovementFilter narrows ListMovements. Zero values mean "any".
type MovementFilter struct {
	MovementType models.MovementType
	EmployeeID   *uint
	ProductID    *uint
	From         *time.Time
	To           *time.Time
	Limit        int
}

type MovementRow struct {
	ID               uint                `json:"id"`
	OccurredOn       time.Time           `json:"occurredOn"`
	MovementType     models.MovementType `json:"movementType"`
	ProductID        uint                `json:"productId"`
	ProductName      string              `json:"productName"`
	Qty              int                 `json:"qty"`
	FromLocationID   *uint               `json:"fromLocationId"`
	FromLocationName *string             `json:"fromLocationName"`
	ToLocationID     *uint               `json:"toLocationId"`
	ToLocationName   *string             `json:"toLocationName"`
	FromState        models.BottleState  `json:"fromState"`
	ToState          models.BottleState  `json:"toState"`
	Remarks          string              `json:"remarks"`
	SalesInvoiceID   *uint               `json:"salesInvoiceId"`
	CreatedAt        time.Time           `json:"createdAt"`
}

// ClampLimit applies the list default and ceiling.
func ClampLimit(n int) int {
	if n <= 0 {
		return DefaultListLimit
	}
	if n > MaxListLimit {
		return MaxListLimit
	}
	return n
}

func ListMovements(ctx context.Context, db *gorm.DB, f MovementFilter) ([]MovementRow, error) {
	q := db.WithContext(ctx).
		Table("stock_movements AS m").
		Select(`m.id, m.occurred_on, m.movement_type, m.product_id, p.name AS product_name, m.qty,
			m.from_location_id, fl.name AS from_location_name,
			m.to_location_id, tl.name AS to_location_name,
			m.from_state, m.to_state, m.remarks, m.sales_invoice_id, m.created_at`).
		Joins("JOIN products p ON p.id = m.product_id").
		Joins("LEFT JOIN stock_locations fl ON fl.id = m.from_location_id").
		Joins("LEFT JOIN stock_locations tl ON tl.id = m.to_location_id")

	if f.MovementType != "" {
		q = q.Where("m.movement_type = ?", f.MovementType)
	}
	if f.EmployeeID != nil {
		q = q.Where("(fl.employee_id = ? OR tl.employee_id = ?)", *f.EmployeeID, *f.EmployeeID)
	}
	if f.ProductID != nil {
		q = q.Where("m.product_id = ?", *f.ProductID)
	}
	if f.From != nil {
		q = q.Where("m.occurred_on >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("m.occurred_on <= ?", *f.To)
	}

	rows := make([]MovementRow, 0)
	if err := q.Order("m.occurred_on DESC, m.id DESC").Limit(ClampLimit(f.Limit)).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Balance is stock on hand for one product at one location and state.
type Balance struct {
	LocationID   uint                `json:"locationId"`
	LocationCode string              `json:"locationCode"`
	LocationName string              `json:"locationName"`
	LocationType models.LocationType `json:"locationType"`
	ProductID    uint                `json:"productId"`
	ProductName  string              `json:"productName"`
	State        models.BottleState  `json:"state"`
	Qty          int64               `json:"qty"`
}

// Balances derives current stock from the movement log. Nothing is cached.
func Balances(ctx context.Context, db *gorm.DB, locationID *uint) ([]Balance, error) {
	q := db.WithContext(ctx).Raw(`
		SELECT l.id AS location_id, l.code AS location_code, l.name AS location_name,
			l.location_type, p.id AS product_id, p.name AS product_name,
			b.state, SUM(b.qty) AS qty
		FROM (
			SELECT to_location_id AS location_id, to_state AS state, product_id, qty
			FROM stock_movements WHERE to_location_id IS NOT NULL
			UNION ALL
			SELECT from_location_id, from_state, product_id, -qty
			FROM stock_movements WHERE from_location_id IS NOT NULL
		) b
		JOIN stock_locations l ON l.id = b.location_id
		JOIN products p ON p.id = b.product_id
		WHERE (CAST(? AS BIGINT) IS NULL OR l.id = ?)
		GROUP BY l.id, l.code, l.name, l.location_type, p.id, p.name, b.state
		HAVING SUM(b.qty) <> 0
		ORDER BY l.id, p.id, b.state`, locationID, locationID)

	rows := make([]Balance, 0)
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func ListLocations(ctx context.Context, db *gorm.DB) ([]models.StockLocation, error) {
	locs := make([]models.StockLocation, 0)
	if err := db.WithContext(ctx).Order("location_type ASC, code ASC").Find(&locs).Error; err != nil {
		return nil, err
	}
	return locs, nil
}
