package parser

import (
	"io"
	"strings"

	xlsb "github.com/TsubasaBE/go-xlsb"
	"github.com/TsubasaBE/go-xlsb/workbook"
	"github.com/ukaji3/heatgrid-go/pkg/heatgrid/models"
)

// excelErrors lists the error literals the binary format reports as strings.
// Codes without a literal are reported as "0x" followed by two hex digits.
var excelErrors = map[string]bool{
	"#NULL!":        true,
	"#DIV/0!":       true,
	"#VALUE!":       true,
	"#REF!":         true,
	"#NAME?":        true,
	"#NUM!":         true,
	"#N/A":          true,
	"#GETTING_DATA": true,
}

// XLSBSource reads rows from a binary workbook.
type XLSBSource struct {
	wb *workbook.Workbook
}

// OpenXLSB opens an xlsb workbook from r. size must be the total byte length.
func OpenXLSB(r io.ReaderAt, size int64) (*XLSBSource, error) {
	wb, err := xlsb.OpenReader(r, size)
	if err != nil {
		return nil, err
	}
	return &XLSBSource{wb: wb}, nil
}

// OpenXLSBFile opens the xlsb workbook at path.
func OpenXLSBFile(path string) (*XLSBSource, error) {
	wb, err := xlsb.Open(path)
	if err != nil {
		return nil, err
	}
	return &XLSBSource{wb: wb}, nil
}

// SheetNames returns the worksheet names in workbook order.
func (s *XLSBSource) SheetNames() []string {
	return s.wb.Sheets()
}

// Rows returns the typed rows of a sheet. Gaps between used rows are
// returned as empty rows, matching the xlsx reader.
func (s *XLSBSource) Rows(sheetName string) ([]models.CellRow, error) {
	ws, err := s.wb.SheetByName(sheetName)
	if err != nil {
		return nil, err
	}

	var result []models.CellRow
	for row := range ws.Rows(false) {
		width := min(len(row), RecordColumns)
		cells := make(models.CellRow, width)
		for i := 0; i < width; i++ {
			cells[i] = convertXLSBValue(row[i].V)
		}
		result = append(result, trimEmpty(cells))
	}
	return result, nil
}

// Close releases the workbook.
func (s *XLSBSource) Close() error {
	return s.wb.Close()
}

func convertXLSBValue(v any) models.Cell {
	switch val := v.(type) {
	case nil:
		return models.Cell{Kind: models.CellEmpty}
	case float64:
		return models.NumberCell(val)
	case bool:
		text := "0"
		if val {
			text = "1"
		}
		return models.Cell{Kind: models.CellBool, Text: text}
	case string:
		if isErrorLiteral(val) {
			return models.Cell{Kind: models.CellError, Text: val}
		}
		return models.TextCell(val)
	}
	return models.Cell{Kind: models.CellOther}
}

func isErrorLiteral(s string) bool {
	if excelErrors[s] {
		return true
	}
	if len(s) != 4 || !strings.HasPrefix(s, "0x") {
		return false
	}
	return strings.Trim(s[2:], "0123456789abcdef") == ""
}

// trimEmpty drops trailing empty cells so dense rows look like the sparse
// rows the xlsx reader returns.
func trimEmpty(row models.CellRow) models.CellRow {
	n := len(row)
	for n > 0 && row[n-1].Kind == models.CellEmpty {
		n--
	}
	return row[:n]
}
