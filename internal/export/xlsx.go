// Package export renders report rows as .xlsx downloads.
package export

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

const (
	sheetName   = "Sheet1"
	contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Workbook builds a one-sheet workbook with a bold header row.
func Workbook(headers []string, rows [][]any) (*excelize.File, error) {
	f := excelize.NewFile()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			f.Close()
			return nil, err
		}
	}
	if len(headers) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		if err := f.SetCellStyle(sheetName, "A1", last, bold); err != nil {
			f.Close()
			return nil, err
		}
	}

	for r, row := range rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				f.Close()
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				f.Close()
				return nil, err
			}
		}
	}
	return f, nil
}

// Send writes the workbook as an attachment.
func Send(c *fiber.Ctx, filename string, headers []string, rows [][]any) error {
	f, err := Workbook(headers, rows)
	if err != nil {
		return err
	}
	defer f.Close()

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return f.Write(c.Response().BodyWriter())
}
