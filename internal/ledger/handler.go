package ledger

import (
	"fmt"

	"aqua-backend/internal/database"
	"aqua-backend/internal/export"
	"aqua-backend/internal/respond"
	"aqua-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GET /api/vendors/:id/ledger?from=2024-01-01&to=2024-01-31&format=xlsx
func VendorLedgerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c)
		if err != nil {
			return err
		}
		from, to, err := validation.DateRange(c)
		if err != nil {
			return err
		}
		l, err := VendorLedger(c.UserContext(), database.DB, id, from, to)
		if err != nil {
			return err
		}

		if c.Query("format") == "xlsx" {
			rows := make([][]any, 0, len(l.Rows)+1)
			rows = append(rows, []any{"", "OPENING", "", "", "", "", l.OpeningBalance.InexactFloat64()})
			for _, r := range l.Rows {
				rows = append(rows, []any{
					r.EntryDate.Format(validation.DateLayout), r.EntryType, r.RefNo, r.Remarks,
					r.Debit.InexactFloat64(), r.Credit.InexactFloat64(), r.Balance.InexactFloat64(),
				})
			}
			return export.Send(c, fmt.Sprintf("vendor-%s-ledger.xlsx", l.VendorCode),
				[]string{"Date", "Type", "Ref No", "Remarks", "Debit", "Credit", "Balance"}, rows)
		}

		return respond.OK(c, fiber.StatusOK, fiber.Map{"ledger": l})
	}
}

// GET /api/customers/outstanding?nonZero=true
func CustomerOutstandingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := CustomerOutstanding(c.UserContext(), database.DB, OutstandingFilter{
			NonZeroOnly: c.QueryBool("nonZero", false),
		})
		if err != nil {
			return err
		}
		return respond.OK(c, fiber.StatusOK, fiber.Map{"customers": rows})
	}
}

// GET /api/customers/:id/outstanding
func CustomerOutstandingByIDHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c)
		if err != nil {
			return err
		}
		row, err := CustomerOutstandingByID(c.UserContext(), database.DB, id)
		if err != nil {
			return err
		}
		return respond.OK(c, fiber.StatusOK, fiber.Map{"customer": row})
	}
}
