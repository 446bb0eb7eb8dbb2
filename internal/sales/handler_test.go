package sales

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"aqua-backend/internal/respond"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every request here is rejected before the handler touches the database.
func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: respond.ErrorHandler})
	app.Post("/api/sales-invoices", CreateInvoiceHandler(PaymentPolicy{SkipPaymentIfZero: true}))
	app.Get("/api/sales-invoices", ListInvoicesHandler())
	app.Get("/api/sales-invoices/:id", GetInvoiceHandler())
	app.Post("/api/customer-payments", CreatePaymentHandler())
	return app
}

func call(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestCreateInvoiceValidation(t *testing.T) {
	app := newTestApp()
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"line with no quantities",
			`{"customerId":1,"orderDate":"2024-03-01","items":[{"productId":1,"unitPrice":100,"saleQty":0,"returnQty":0}]}`,
			"items[0]: saleQty or returnQty must be greater than 0",
		},
		{
			"second line empty",
			`{"customerId":1,"orderDate":"2024-03-01","items":[{"productId":1,"unitPrice":100,"saleQty":1},{"productId":2,"unitPrice":50}]}`,
			"items[1]: saleQty or returnQty must be greater than 0",
		},
		{
			"price below one cent",
			`{"customerId":1,"orderDate":"2024-03-01","items":[{"productId":1,"unitPrice":10.005,"saleQty":3}]}`,
			"items[0].unitPrice must have at most 2 decimal places",
		},
		{
			"no items",
			`{"customerId":1,"orderDate":"2024-03-01","items":[]}`,
			"items must contain at least 1 item(s)",
		},
		{
			"missing customer",
			`{"orderDate":"2024-03-01","items":[{"productId":1,"unitPrice":100,"saleQty":1}]}`,
			"customerId must be greater than 0",
		},
		{
			"negative quantity",
			`{"customerId":1,"orderDate":"2024-03-01","items":[{"productId":1,"unitPrice":100,"saleQty":-1}]}`,
			"items[0].saleQty must not be negative",
		},
		{
			"negative price",
			`{"customerId":1,"orderDate":"2024-03-01","items":[{"productId":1,"unitPrice":-3,"saleQty":1}]}`,
			"items[0].unitPrice must not be negative",
		},
		{
			"bad payment method",
			`{"customerId":1,"orderDate":"2024-03-01","paymentMethod":"cheque","items":[{"productId":1,"unitPrice":100,"saleQty":1}]}`,
			"paymentMethod must be one of: CASH, BANK, CREDIT",
		},
		{
			"bad date",
			`{"customerId":1,"orderDate":"1-3-2024","items":[{"productId":1,"unitPrice":100,"saleQty":1}]}`,
			"orderDate must be a date in YYYY-MM-DD format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := call(t, app, http.MethodPost, "/api/sales-invoices", tt.body)
			assert.Equal(t, 400, status)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.want, body["message"])
		})
	}
}

func TestListInvoicesRejectsBadFilters(t *testing.T) {
	app := newTestApp()

	status, body := call(t, app, http.MethodGet, "/api/sales-invoices?customerId=abc", "")
	assert.Equal(t, 400, status)
	assert.Equal(t, "customerId must be a positive integer", body["message"])

	status, body = call(t, app, http.MethodGet, "/api/sales-invoices?from=2024-03-10&to=2024-03-01", "")
	assert.Equal(t, 400, status)
	assert.Equal(t, "to must not be before from", body["message"])

	status, body = call(t, app, http.MethodGet, "/api/sales-invoices/0", "")
	assert.Equal(t, 400, status)
	assert.Equal(t, "id must be a positive integer", body["message"])
}

func TestCreatePaymentValidation(t *testing.T) {
	app := newTestApp()

	status, body := call(t, app, http.MethodPost, "/api/customer-payments",
		`{"customerId":1,"paymentDate":"2024-03-02","method":"BANK","receivedAmount":200}`)
	assert.Equal(t, 400, status)
	assert.Equal(t, "bankId is required for BANK payments", body["message"])

	status, body = call(t, app, http.MethodPost, "/api/customer-payments",
		`{"customerId":1,"paymentDate":"2024-03-02","method":"CASH","receivedAmount":0}`)
	assert.Equal(t, 400, status)
	assert.Equal(t, "receivedAmount must be greater than 0", body["message"])

	status, body = call(t, app, http.MethodPost, "/api/customer-payments",
		`{"customerId":1,"paymentDate":"2024-03-02","method":"CASH","receivedAmount":100,"allocations":[{"invoiceId":1,"amount":0}]}`)
	assert.Equal(t, 400, status)
	assert.Equal(t, "allocations[0].amount must be greater than 0", body["message"])
}
