package main

import (
	"aqua-backend/internal/admin"
	"aqua-backend/internal/audit"
	"aqua-backend/internal/auth"
	"aqua-backend/internal/config"
	"aqua-backend/internal/database"
	"aqua-backend/internal/debug"
	"aqua-backend/internal/ledger"
	"aqua-backend/internal/logging"
	"aqua-backend/internal/masterdata"
	"aqua-backend/internal/reports"
	"aqua-backend/internal/respond"
	"aqua-backend/internal/sales"
	"aqua-backend/internal/stock"
	"aqua-backend/internal/vendor"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.Load()
	logging.Init(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logging.Log.WithError(err).Fatal("invalid configuration")
	}

	// amounts go out as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	if err := database.Init(cfg); err != nil {
		logging.Log.WithError(err).Fatal("database init failed")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: respond.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logging.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,OPTIONS",
		AllowCredentials: true,
	}))

	api := app.Group("/api")
	api.Use(auth.Middleware(cfg))

	// Public
	api.Post("/auth/bootstrap", auth.BootstrapHandler())
	api.Post("/auth/login", auth.LoginHandler(cfg))
	api.Post("/auth/logout", auth.LogoutHandler(cfg))
	api.Get("/auth/me", auth.MeHandler(cfg))
	api.Get("/debug/health", debug.HealthHandler())

	// Master data
	api.Get("/customers", masterdata.ListCustomersHandler())
	api.Post("/customers", masterdata.CreateCustomerHandler())
	api.Get("/customers/outstanding", ledger.CustomerOutstandingHandler())
	api.Get("/customers/:id", masterdata.GetCustomerHandler())
	api.Put("/customers/:id", masterdata.UpdateCustomerHandler())
	api.Get("/customers/:id/outstanding", ledger.CustomerOutstandingByIDHandler())

	api.Get("/employees", masterdata.ListEmployeesHandler())
	api.Post("/employees", masterdata.CreateEmployeeHandler())
	api.Put("/employees/:id", masterdata.UpdateEmployeeHandler())

	api.Get("/products", masterdata.ListProductsHandler())
	api.Post("/products", masterdata.CreateProductHandler())
	api.Put("/products/:id", masterdata.UpdateProductHandler())

	// Vendors
	api.Get("/vendors", vendor.ListVendorsHandler())
	api.Post("/vendors", vendor.CreateVendorHandler())
	api.Put("/vendors/:id", vendor.UpdateVendorHandler())
	api.Get("/vendors/:id/ledger", ledger.VendorLedgerHandler())
	api.Get("/vendor-purchases", vendor.ListPurchasesHandler())
	api.Post("/vendor-purchases", vendor.CreatePurchaseHandler())
	api.Get("/vendor-payments", vendor.ListPaymentsHandler())
	api.Post("/vendor-payments", vendor.CreatePaymentHandler())

	// Stock
	api.Post("/stock/movements", stock.CreateMovementHandler())
	api.Get("/stock/movements", stock.ListMovementsHandler())
	api.Get("/stock/locations", stock.ListLocationsHandler())
	api.Get("/stock/balances", stock.BalancesHandler())

	// Sales
	policy := sales.PaymentPolicy{SkipPaymentIfZero: cfg.SkipPaymentIfZero}
	api.Post("/sales-invoices", sales.CreateInvoiceHandler(policy))
	api.Get("/sales-invoices", sales.ListInvoicesHandler())
	api.Get("/sales-invoices/:id", sales.GetInvoiceHandler())
	api.Post("/customer-payments", sales.CreatePaymentHandler())
	api.Get("/customer-payments", sales.ListPaymentsHandler())

	// Admin only (see ADMIN_PATH_PREFIXES)
	api.Get("/banks", admin.ListBanksHandler())
	api.Post("/banks", admin.CreateBankHandler())
	api.Put("/banks/:id", admin.UpdateBankHandler())
	api.Get("/users", admin.ListUsersHandler())
	api.Post("/users", admin.CreateUserHandler())
	api.Get("/audit-logs", audit.ListAuditLogsHandler())
	api.Get("/reports/sales-summary", reports.SalesSummaryHandler())
	api.Get("/reports/customer-outstanding", reports.CustomerOutstandingReportHandler())

	addr := ":" + cfg.HTTPPort
	logging.Log.WithField("addr", addr).Info("server listening")
	if err := app.Listen(addr); err != nil {
		logging.Log.WithError(err).Fatal("server stopped")
	}
}
