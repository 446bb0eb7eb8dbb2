package export

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWorkbook(t *testing.T) {
	f, err := Workbook([]string{"Code", "Name", "Outstanding"}, [][]any{
		{"C-001", "Blue Cafe", 1250.5},
		{"C-002", "Corner Shop", 0.0},
	})
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Code", "Name", "Outstanding"}, rows[0])
	assert.Equal(t, "Blue Cafe", rows[1][1])
	assert.Equal(t, "1250.5", rows[1][2])
}

func TestSend(t *testing.T) {
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		return Send(c, "report.xlsx", []string{"A"}, [][]any{{"one"}})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, contentType, resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="report.xlsx"`, resp.Header.Get("Content-Disposition"))

	f, err := excelize.OpenReader(resp.Body)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue("Sheet1", "A2")
	require.NoError(t, err)
	assert.Equal(t, "one", v)
}
