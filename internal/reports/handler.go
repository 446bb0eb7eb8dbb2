package reports

import (
	"time"

	"aqua-backend/internal/apperr"
	"aqua-backend/internal/database"
	"aqua-backend/internal/export"
	"aqua-backend/internal/ledger"
	"aqua-backend/internal/respond"
	"aqua-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GET /api/reports/sales-summary?period=daily&from=2024-03-01&to=2024-03-07
func SalesSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := ParsePeriod(c.Query("period"))
		if !ok {
			return apperr.Validation("period must be one of: daily, weekly, monthly")
		}
		fromQ, toQ, err := validation.DateRange(c)
		if err != nil {
			return err
		}
		from, to := DefaultRange(p, time.Now())
		if fromQ != nil {
			from = *fromQ
		}
		if toQ != nil {
			to = *toQ
		}
		if to.Before(from) {
			return apperr.Validation("to must not be before from")
		}

		summary, err := BuildSalesSummary(c.UserContext(), database.DB, p, from, to)
		if err != nil {
			return err
		}
		return respond.OK(c, fiber.StatusOK, fiber.Map{"summary": summary})
	}
}

// GET /api/reports/customer-outstanding?format=xlsx
func CustomerOutstandingReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := ledger.CustomerOutstanding(c.UserContext(), database.DB, ledger.OutstandingFilter{
			NonZeroOnly: c.QueryBool("nonZero", true),
		})
		if err != nil {
			return err
		}

		if c.Query("format") != "xlsx" {
			return respond.OK(c, fiber.StatusOK, fiber.Map{"customers": rows})
		}

		cells := make([][]any, 0, len(rows))
		for _, r := range rows {
			cells = append(cells, []any{
				r.Code, r.Name, r.Phone,
				r.OpeningBalance.InexactFloat64(), r.Invoiced.InexactFloat64(),
				r.Received.InexactFloat64(), r.Outstanding.InexactFloat64(),
			})
		}
		return export.Send(c, "customer-outstanding.xlsx",
			[]string{"Code", "Name", "Phone", "Opening", "Invoiced", "Received", "Outstanding"}, cells)
	}
}
