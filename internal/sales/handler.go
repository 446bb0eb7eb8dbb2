package sales

import (
	"fmt"
	"strings"

	"aqua-backend/internal/apperr"
	"aqua-backend/internal/audit"
	"aqua-backend/internal/database"
	"aqua-backend/internal/models"
	"aqua-backend/internal/respond"
	"aqua-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type InvoiceItemRequest struct {
	ProductID uint            `json:"productId" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unitPrice" validate:"gte=0"`
	SaleQty   int             `json:"saleQty" validate:"gte=0"`
	ReturnQty int             `json:"returnQty" validate:"gte=0"`
}

// CreateInvoiceRequest has no discount/tax field on purpose: the server
// always posts discountTaxAmount = 0.
type CreateInvoiceRequest struct {
	CustomerID         uint                 `json:"customerId" validate:"gt=0"`
	OrderDate          string               `json:"orderDate" validate:"required,date"`
	Items              []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
	SalesmanEmployeeID *uint                `json:"salesmanEmployeeId" validate:"omitempty,gt=0"`
	InvoiceNo          string               `json:"invoiceNo" validate:"max=30"`
	BillNo             string               `json:"billNo" validate:"max=30"`
	BillBookNo         string               `json:"billBookNo" validate:"max=30"`
	Remarks            string               `json:"remarks" validate:"max=255"`
	PaymentMethod      string               `json:"paymentMethod"`
	ReceivedAmount     decimal.Decimal      `json:"receivedAmount" validate:"gte=0"`
}

func (r CreateInvoiceRequest) toInput() (PostInvoiceInput, error) {
	if err := validation.Struct(r); err != nil {
		return PostInvoiceInput{}, err
	}
	d, err := validation.ParseDate("orderDate", r.OrderDate)
	if err != nil {
		return PostInvoiceInput{}, err
	}
	in := PostInvoiceInput{
		CustomerID:         r.CustomerID,
		OrderDate:          d,
		Items:              make([]LineInput, 0, len(r.Items)),
		SalesmanEmployeeID: r.SalesmanEmployeeID,
		PaymentMethod:      models.PaymentMethod(strings.ToUpper(strings.TrimSpace(r.PaymentMethod))),
		ReceivedAmount:     r.ReceivedAmount,
		InvoiceNo:          strings.TrimSpace(r.InvoiceNo),
		BillNo:             strings.TrimSpace(r.BillNo),
		BillBookNo:         strings.TrimSpace(r.BillBookNo),
		Remarks:            strings.TrimSpace(r.Remarks),
	}
	for _, it := range r.Items {
		in.Items = append(in.Items, LineInput{
			ProductID: it.ProductID,
			UnitPrice: it.UnitPrice,
			SaleQty:   it.SaleQty,
			ReturnQty: it.ReturnQty,
		})
	}
	return in, in.Validate()
}

// POST /api/sales-invoices
func CreateInvoiceHandler(policy PaymentPolicy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateInvoiceRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Invalid request body")
		}
		in, err := body.toInput()
		if err != nil {
			return err
		}

		posted, err := PostInvoice(c.UserContext(), database.DB, in, policy)
		if err != nil {
			return err
		}

		audit.Record(c, "sales_invoice", posted.InvoiceID, models.AuditActionCreate,
			fmt.Sprintf("Invoice %s posted: total %s", posted.InvoiceNo, posted.InvoiceData.TotalAmount.StringFixed(2)),
			nil, posted.InvoiceData)

		return respond.OK(c, fiber.StatusCreated, fiber.Map{
			"invoiceId":   posted.InvoiceID,
			"invoiceNo":   posted.InvoiceNo,
			"invoiceData": posted.InvoiceData,
		})
	}
}

// GET /api/sales-invoices?customerId=1&from=2024-01-01&to=2024-01-31
func ListInvoicesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			f   InvoiceFilter
			err error
		)
		if f.CustomerID, err = validation.QueryID(c, "customerId"); err != nil {
			return err
		}
		if f.From, f.To, err = validation.DateRange(c); err != nil {
			return err
		}
		rows, err := ListInvoices(c.UserContext(), database.DB, f)
		if err != nil {
			return err
		}
		return respond.OK(c, fiber.StatusOK, fiber.Map{"invoices": rows})
	}
}

// GET /api/sales-invoices/:id
func GetInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c)
		if err != nil {
			return err
		}
		data, err := LoadInvoiceData(c.UserContext(), database.DB, id)
		if err != nil {
			return err
		}
		return respond.OK(c, fiber.StatusOK, fiber.Map{"invoice": data})
	}
}

type AllocationRequest struct {
	InvoiceID uint            `json:"invoiceId" validate:"gt=0"`
	Amount    decimal.Decimal `json:"amount" validate:"gt=0"`
}

type CreatePaymentRequest struct {
	CustomerID     uint                `json:"customerId" validate:"gt=0"`
	PaymentDate    string              `json:"paymentDate" validate:"required,date"`
	Method         string              `json:"method" validate:"required"`
	BankID         *uint               `json:"bankId"`
	ReceivedAmount decimal.Decimal     `json:"receivedAmount" validate:"gt=0"`
	Remarks        string              `json:"remarks" validate:"max=255"`
	Allocations    []AllocationRequest `json:"allocations" validate:"dive"`
}

// POST /api/customer-payments
func CreatePaymentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePaymentRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Invalid request body")
		}
		if err := validation.Struct(body); err != nil {
			return err
		}
		d, err := validation.ParseDate("paymentDate", body.PaymentDate)
		if err != nil {
			return err
		}
		in := PaymentInput{
			CustomerID:     body.CustomerID,
			PaymentDate:    d,
			Method:         models.PaymentMethod(strings.ToUpper(strings.TrimSpace(body.Method))),
			BankID:         body.BankID,
			ReceivedAmount: body.ReceivedAmount,
			Remarks:        strings.TrimSpace(body.Remarks),
		}
		for _, a := range body.Allocations {
			in.Allocations = append(in.Allocations, AllocationInput{InvoiceID: a.InvoiceID, Amount: a.Amount})
		}
		if err := in.Validate(); err != nil {
			return err
		}

		payment, err := RecordPayment(c.UserContext(), database.DB, in)
		if err != nil {
			return err
		}

		audit.Record(c, "customer_payment", payment.ID, models.AuditActionCreate,
			fmt.Sprintf("Payment %s received: %s", payment.PaymentNo, payment.ReceivedAmount.StringFixed(2)), nil, payment)

		return respond.OK(c, fiber.StatusCreated, fiber.Map{"payment": payment})
	}
}

// GET /api/customer-payments?customerId=1&from=...&to=...
func ListPaymentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			f   PaymentFilter
			err error
		)
		if f.CustomerID, err = validation.QueryID(c, "customerId"); err != nil {
			return err
		}
		if f.From, f.To, err = validation.DateRange(c); err != nil {
			return err
		}
		rows, err := ListPayments(c.UserContext(), database.DB, f)
		if err != nil {
			return err
		}
		return respond.OK(c, fiber.StatusOK, fiber.Map{"payments": rows})
	}
}
