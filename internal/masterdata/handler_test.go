package masterdata

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

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: respond.ErrorHandler})
	app.Post("/api/customers", CreateCustomerHandler())
	app.Put("/api/customers/:id", UpdateCustomerHandler())
	app.Post("/api/employees", CreateEmployeeHandler())
	app.Post("/api/products", CreateProductHandler())
	app.Put("/api/products/:id", UpdateProductHandler())
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

func TestMasterDataValidation(t *testing.T) {
	app := newTestApp()
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   string
	}{
		{"customer without code", http.MethodPost, "/api/customers", `{"name":"Blue Cafe"}`, "code is required"},
		{"customer blank name", http.MethodPost, "/api/customers", `{"code":"C-1","name":"   "}`, "name is required"},
		{"customer bad status", http.MethodPost, "/api/customers", `{"code":"C-1","name":"Cafe","status":"CLOSED"}`, "status must be one of: ACTIVE, INACTIVE"},
		{"customer long code", http.MethodPost, "/api/customers", `{"code":"` + strings.Repeat("X", 31) + `","name":"Cafe"}`, "code must be at most 30 characters"},
		{"customer update bad id", http.MethodPut, "/api/customers/abc", `{"name":"Cafe"}`, "id must be a positive integer"},
		{"customer update empty name", http.MethodPut, "/api/customers/3", `{"name":""}`, "name must be at least 1 characters"},
		{"employee without name", http.MethodPost, "/api/employees", `{"code":"EMP-1"}`, "name is required"},
		{"product negative price", http.MethodPost, "/api/products", `{"code":"P-1","name":"19L","defaultPrice":-5}`, "defaultPrice must not be negative"},
		{"product update negative price", http.MethodPut, "/api/products/1", `{"defaultPrice":-1}`, "defaultPrice must not be negative"},
		{"broken json", http.MethodPost, "/api/products", `{"code":`, "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := call(t, app, tt.method, tt.path, tt.body)
			assert.Equal(t, 400, status)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.want, body["message"])
		})
	}
}
