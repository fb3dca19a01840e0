package parser

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ukaji3/heatgrid-go/pkg/heatgrid/models"
)

func TestConvertXLSBValue(t *testing.T) {
	tests := []struct {
		input    any
		expected models.Cell
	}{
		{nil, models.Cell{Kind: models.CellEmpty}},
		{3.5, models.Cell{Kind: models.CellNumber, Num: 3.5}},
		{true, models.Cell{Kind: models.CellBool, Text: "1"}},
		{false, models.Cell{Kind: models.CellBool, Text: "0"}},
		{"label", models.Cell{Kind: models.CellText, Text: "label"}},
		{"#N/A", models.Cell{Kind: models.CellError, Text: "#N/A"}},
		{"#REF!", models.Cell{Kind: models.CellError, Text: "#REF!"}},
		{"0xff", models.Cell{Kind: models.CellError, Text: "0xff"}},
		{"0x1f", models.Cell{Kind: models.CellError, Text: "0x1f"}},
		{"0x", models.Cell{Kind: models.CellText, Text: "0x"}},
		{"0xfff", models.Cell{Kind: models.CellText, Text: "0xfff"}},
		{"0xzz", models.Cell{Kind: models.CellText, Text: "0xzz"}},
		{42, models.Cell{Kind: models.CellOther}},
	}

	for _, tt := range tests {
		result := convertXLSBValue(tt.input)
		if result != tt.expected {
			t.Errorf("convertXLSBValue(%v) = %+v, expected %+v", tt.input, result, tt.expected)
		}
	}
}

func TestTrimEmpty(t *testing.T) {
	empty := models.Cell{Kind: models.CellEmpty}

	assert.Equal(t, models.CellRow{}, trimEmpty(models.CellRow{empty, empty}))
	assert.Equal(t, models.CellRow{models.NumberCell(1)}, trimEmpty(models.CellRow{models.NumberCell(1), empty}))
	assert.Equal(t,
		models.CellRow{empty, models.NumberCell(2)},
		trimEmpty(models.CellRow{empty, models.NumberCell(2), empty, empty}))
}

func TestOpenXLSB_InvalidData(t *testing.T) {
	data := []byte("definitely not a workbook")
	_, err := OpenXLSB(bytes.NewReader(data), int64(len(data)))
	assert.Error(t, err)
}
