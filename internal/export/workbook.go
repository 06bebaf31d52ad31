// Package export renders survey responses into xlsx workbooks.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/dqi/internal/surveyapi"
	"github.com/xuri/excelize/v2"
)

// SingleSheet is the sheet name used for one employee's workbook, and for
// the placeholder sheet of an empty bulk workbook.
const SingleSheet = "Survey Responses"

// maxSheetName is Excel's limit on sheet name length.
const maxSheetName = 31

// defaultSheet is the sheet excelize creates in a new file.
const defaultSheet = "Sheet1"

// SingleFileName is the file name for one employee's export.
func SingleFileName(empID string) string {
	return fmt.Sprintf("survey_responses_%s.xlsx", empID)
}

// BulkFileName is the file name for a bulk export made on the given day.
func BulkFileName(day time.Time) string {
	return fmt.Sprintf("all_survey_responses_%s.xlsx", day.Format(time.DateOnly))
}

// sheetNameReplacer strips characters Excel rejects in sheet names.
var sheetNameReplacer = strings.NewReplacer(
	":", "_", `\`, "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_",
)

// SheetName is the bulk-export sheet name for an employee.
func SheetName(empID string) string {
	name := sheetNameReplacer.Replace("Emp_" + empID)
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	return name
}

// Sheet is a named set of rows.
type Sheet struct {
	Name string
	Rows []surveyapi.Row
}

// Workbook builds an xlsx file with one sheet per entry, in order. With no
// sheets the file still carries one empty SingleSheet. The caller closes
// the returned file.
func Workbook(sheets []Sheet) (*excelize.File, error) {
	f := excelize.NewFile()
	if len(sheets) == 0 {
		if err := f.SetSheetName(defaultSheet, SingleSheet); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("name sheet: %w", err)
		}
		return f, nil
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for i, s := range sheets {
		if i == 0 {
			err = f.SetSheetName(defaultSheet, s.Name)
		} else {
			_, err = f.NewSheet(s.Name)
		}
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("add sheet %q: %w", s.Name, err)
		}
		if err := writeRows(f, s.Name, s.Rows, bold); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("write sheet %q: %w", s.Name, err)
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

// writeRows writes a bold header of column names followed by one line per row.
func writeRows(f *excelize.File, sheet string, rows []surveyapi.Row, headerStyle int) error {
	header := surveyapi.Header(rows)
	if len(header) == 0 {
		return nil
	}

	cells := make([]any, len(header))
	for i, col := range header {
		cells[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &cells); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}

	for r, row := range rows {
		vals := make([]any, len(header))
		for i, col := range header {
			vals[i] = row.Get(col)
		}
		start, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, start, &vals); err != nil {
			return err
		}
	}
	return nil
}
