// Package parser reads typed worksheet rows from workbook containers.
package parser

import (
	"io"
	"strconv"

	"github.com/ukaji3/heatgrid-go/pkg/heatgrid/models"
	"github.com/xuri/excelize/v2"
)

// RecordColumns is the number of leading columns a record row uses:
// the identifier followed by the four field columns.
const RecordColumns = 1 + models.FieldCount

// XLSXSource reads rows from an Office Open XML workbook.
type XLSXSource struct {
	f *excelize.File
}

// OpenXLSX opens an xlsx workbook from r.
func OpenXLSX(r io.Reader) (*XLSXSource, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	return &XLSXSource{f: f}, nil
}

// OpenXLSXFile opens the xlsx workbook at path.
func OpenXLSXFile(path string) (*XLSXSource, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return &XLSXSource{f: f}, nil
}

// SheetNames returns the worksheet names in workbook order.
func (s *XLSXSource) SheetNames() []string {
	return s.f.GetSheetList()
}

// Rows returns the typed rows of a sheet.
func (s *XLSXSource) Rows(sheetName string) ([]models.CellRow, error) {
	return ExtractRows(s.f, sheetName)
}

// Close releases the workbook.
func (s *XLSXSource) Close() error {
	return s.f.Close()
}

// ExtractRows extracts typed cells from the first RecordColumns columns of every row.
// Empty rows inside the used range are returned as empty CellRows.
func ExtractRows(f *excelize.File, sheetName string) ([]models.CellRow, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	dates := newDateFormats(f)
	result := make([]models.CellRow, 0, len(rows))
	for rowIdx, row := range rows {
		width := min(len(row), RecordColumns)
		cells := make(models.CellRow, width)

		for colIdx := 0; colIdx < width; colIdx++ {
			raw := row[colIdx]
			if raw == "" {
				cells[colIdx] = models.Cell{Kind: models.CellEmpty}
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			typ, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, err
			}
			cell := convertXLSXValue(raw, typ)
			if cell.Kind == models.CellNumber {
				// Serial dates carry no type attribute, only a date number format.
				isDate, err := dates.isDate(sheetName, cellName)
				if err != nil {
					return nil, err
				}
				if isDate {
					cell = models.Cell{Kind: models.CellOther, Text: raw}
				}
			}
			cells[colIdx] = cell
		}

		result = append(result, cells)
	}

	return result, nil
}

// convertXLSXValue maps a raw cell value and its OOXML type attribute to a Cell.
// Numeric cells usually carry no type attribute at all.
func convertXLSXValue(raw string, typ excelize.CellType) models.Cell {
	switch typ {
	case excelize.CellTypeBool:
		return models.Cell{Kind: models.CellBool, Text: raw}
	case excelize.CellTypeError:
		return models.Cell{Kind: models.CellError, Text: raw}
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return models.TextCell(raw)
	case excelize.CellTypeDate:
		return models.Cell{Kind: models.CellOther, Text: raw}
	}

	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		c := models.NumberCell(v)
		c.Text = raw
		return c
	}
	return models.TextCell(raw)
}
