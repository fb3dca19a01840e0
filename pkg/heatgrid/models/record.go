package models

import "math"

// FieldCount is the number of field series tracked per record.
const FieldCount = 4

// MaxRowsPerRecord is the maximum number of physical rows a record may span.
const MaxRowsPerRecord = 2

// Record is one logical entity reassembled from one or two physical rows.
type Record struct {
	// ID is taken from the first row's first column, truncated toward zero.
	ID int64 `json:"id"`
	// Field1 to Field4 hold one value per physical row, in row order.
	Field1 []float64 `json:"field1"`
	Field2 []float64 `json:"field2"`
	Field3 []float64 `json:"field3"`
	Field4 []float64 `json:"field4"`
}

// NewRecord creates a single-row record.
func NewRecord(id int64, values [FieldCount]float64) Record {
	return Record{
		ID:     id,
		Field1: []float64{values[0]},
		Field2: []float64{values[1]},
		Field3: []float64{values[2]},
		Field4: []float64{values[3]},
	}
}

// Series returns the four field series in order.
func (r Record) Series() [FieldCount][]float64 {
	return [FieldCount][]float64{r.Field1, r.Field2, r.Field3, r.Field4}
}

// Len returns the common series length, or -1 if the series lengths differ.
func (r Record) Len() int {
	series := r.Series()
	n := len(series[0])
	for _, s := range series[1:] {
		if len(s) != n {
			return -1
		}
	}
	return n
}

// Valid reports whether all series share a length between 1 and MaxRowsPerRecord.
func (r Record) Valid() bool {
	n := r.Len()
	return n >= 1 && n <= MaxRowsPerRecord
}

// AppendRow adds one value to each series.
func (r *Record) AppendRow(values [FieldCount]float64) {
	r.Field1 = append(r.Field1, values[0])
	r.Field2 = append(r.Field2, values[1])
	r.Field3 = append(r.Field3, values[2])
	r.Field4 = append(r.Field4, values[3])
}

// TruncateID converts a spreadsheet number to a record id.
// NaN maps to 0 and values outside the int64 range saturate.
func TruncateID(v float64) int64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt64:
		return math.MaxInt64
	case v <= math.MinInt64:
		return math.MinInt64
	}
	return int64(v)
}
