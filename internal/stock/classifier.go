package stock

import (
	"fmt"

	"aqua-backend/internal/apperr"
	"aqua-backend/internal/models"
)

// Endpoint is one side of a movement before it is resolved to a location id.
type Endpoint int

const (
	// EndpointNone is the customer/market side; the movement column stays null.
	EndpointNone Endpoint = iota
	EndpointWarehouse
	EndpointDamaged
	EndpointEmployee
)

func (e Endpoint) String() string {
	switch e {
	case EndpointWarehouse:
		return "warehouse"
	case EndpointDamaged:
		return "damaged"
	case EndpointEmployee:
		return "employee"
	default:
		return "none"
	}
}

// Route is the location/state transition a movement type stands for.
type Route struct {
	From      Endpoint
	To        Endpoint
	FromState models.BottleState
	ToState   models.BottleState
}

// NeedsEmployee reports whether either side is the employee's location.
func (r Route) NeedsEmployee() bool {
	return r.From == EndpointEmployee || r.To == EndpointEmployee
}

var standaloneRoutes = map[models.MovementType]Route{
	models.MovementFilling: {EndpointWarehouse, EndpointWarehouse, models.StateEmpty, models.StateFilled},
	models.MovementDamage:  {EndpointWarehouse, EndpointDamaged, models.StateFilled, models.StateFilled},
	models.MovementOut:     {EndpointWarehouse, EndpointEmployee, models.StateFilled, models.StateFilled},
	models.MovementIn:      {EndpointEmployee, EndpointWarehouse, models.StateFilled, models.StateFilled},
	models.MovementReturn:  {EndpointEmployee, EndpointWarehouse, models.StateEmpty, models.StateEmpty},
}

var invoiceRoutes = map[models.MovementType]Route{
	models.MovementSale:   {EndpointWarehouse, EndpointNone, models.StateFilled, models.StateNA},
	models.MovementReturn: {EndpointNone, EndpointWarehouse, models.StateNA, models.StateEmpty},
}

// StandaloneTypes are the movement types accepted by the stock movement
// endpoint. SALE only comes from invoice posting.
var StandaloneTypes = []models.MovementType{
	models.MovementIn,
	models.MovementOut,
	models.MovementReturn,
	models.MovementFilling,
	models.MovementDamage,
}

// Classify returns the route for a standalone movement. IN, OUT and RETURN
// move stock to or from an employee and fail without one; FILLING and
// DAMAGE ignore employeeID.
func Classify(t models.MovementType, employeeID *uint) (Route, error) {
	r, ok := standaloneRoutes[t]
	if !ok {
		return Route{}, apperr.Validation(fmt.Sprintf("movementType must be one of IN, OUT, RETURN, FILLING, DAMAGE (got %q)", t))
	}
	if r.NeedsEmployee() && (employeeID == nil || *employeeID == 0) {
		return Route{}, apperr.Validation("employeeId is required")
	}
	return r, nil
}

// InvoiceRoute returns the route for movements emitted by invoice posting.
func InvoiceRoute(t models.MovementType) (Route, error) {
	r, ok := invoiceRoutes[t]
	if !ok {
		return Route{}, fmt.Errorf("no invoice route for movement type %q", t)
	}
	return r, nil
}
