package output

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/heatgrid-go/pkg/heatgrid/models"
)

func sampleWorkbook() *models.Workbook {
	wb := models.NewWorkbook()
	wb.Set("Zeta", []models.Record{
		{ID: 1, Field1: []float64{1.5, 2}, Field2: []float64{0, 0}, Field3: []float64{3, 4}, Field4: []float64{5, 6}},
		models.NewRecord(2, [4]float64{0.1, 0.2, 0.3, 1e-9}),
	})
	wb.Set("Alpha <&>", []models.Record{
		models.NewRecord(math.MaxInt32+1, [4]float64{math.MaxFloat64, -math.SmallestNonzeroFloat64, 1.0 / 3.0, -7}),
	})
	wb.Set("Empty", []models.Record{})
	return wb
}

func TestRoundTrip(t *testing.T) {
	wb := sampleWorkbook()

	for _, pretty := range []bool{false, true} {
		data, err := ToJSON(wb, pretty)
		require.NoError(t, err)

		decoded, err := FromJSON(data)
		require.NoError(t, err)

		assert.Equal(t, wb.SheetNames(), decoded.SheetNames())
		for _, sheet := range wb.Sheets() {
			got, ok := decoded.Get(sheet.Name)
			require.True(t, ok, "sheet %q missing", sheet.Name)
			assert.Equal(t, sheet.Records, got)
		}
	}
}

func TestToJSON_Shape(t *testing.T) {
	wb := models.NewWorkbook()
	wb.Set("S", []models.Record{models.NewRecord(3, [4]float64{1, 2, 3, 4})})
	wb.Set("Blank", nil)

	data, err := ToJSON(wb, false)
	require.NoError(t, err)
	assert.JSONEq(t, `{"S":[{"id":3,"field1":[1],"field2":[2],"field3":[3],"field4":[4]}],"Blank":[]}`, string(data))
	assert.Equal(t, byte('S'), data[2], "sheet order must be preserved")
}

func TestSheetToJSON(t *testing.T) {
	data, err := SheetToJSON(&models.Sheet{Name: "S"}, false)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestFromJSON_LegacyFieldNames(t *testing.T) {
	wb, err := FromJSON([]byte(`{"Sheet1":[{"id":4,"as1":[1,2],"as2":[3,4],"as3":[5,6],"as4":[7,8]}]}`))
	require.NoError(t, err)

	records, ok := wb.Get("Sheet1")
	require.True(t, ok)
	require.Len(t, records, 1)
	assert.Equal(t, []float64{7, 8}, records[0].Field4)
}

func TestFromJSON_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		sheet string
	}{
		{"not json", `not json`, ""},
		{"array root", `[]`, ""},
		{"truncated", `{"S":[`, "S"},
		{"records not array", `{"S":{"id":1}}`, "S"},
		{"missing id", `{"S":[{"field1":[1],"field2":[1],"field3":[1],"field4":[1]}]}`, "S"},
		{"fractional id", `{"S":[{"id":1.5,"field1":[1],"field2":[1],"field3":[1],"field4":[1]}]}`, "S"},
		{"empty series", `{"S":[{"id":1,"field1":[],"field2":[],"field3":[],"field4":[]}]}`, "S"},
		{"unequal series", `{"S":[{"id":1,"field1":[1,2],"field2":[1],"field3":[1],"field4":[1]}]}`, "S"},
		{"three rows", `{"S":[{"id":1,"field1":[1,2,3],"field2":[1,2,3],"field3":[1,2,3],"field4":[1,2,3]}]}`, "S"},
		{"trailing data", `{}{}`, ""},
		{"null sheet", `{"S": null}`, "S"},
		{"null record", `{"S":[null]}`, "S"},
		{"uppercase keys", `{"S":[{"ID":1,"FIELD1":[1],"FIELD2":[1],"FIELD3":[1],"FIELD4":[1]}]}`, "S"},
		{"wrong series type", `{"S":[{"id":1,"field1":"x","field2":[1],"field3":[1],"field4":[1]}]}`, "S"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wb, err := FromJSON([]byte(tt.input))
			assert.Nil(t, wb)

			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr), "expected DecodeError, got %v", err)
			assert.Equal(t, tt.sheet, decodeErr.SheetName)
		})
	}
}

func TestFromJSONLenient(t *testing.T) {
	wb := FromJSONLenient([]byte(`{"S": oops}`))
	require.NotNil(t, wb)
	assert.Equal(t, 0, wb.Len())

	wb = FromJSONLenient([]byte(`{"S":null}`))
	assert.Equal(t, 0, wb.Len())

	wb = FromJSONLenient([]byte(`{"S":[{"id":1,"field1":[1],"field2":[2],"field3":[3],"field4":[4]}]}`))
	assert.Equal(t, 1, wb.RecordCount())
}
