// Package output encodes and decodes the sheet to records interchange format.
//
// The format is a JSON object whose keys are sheet names and whose values are
// arrays of records:
//
//	{"Sheet1": [{"id": 1, "field1": [1.5, 2], "field2": [0, 0], "field3": [3, 4], "field4": [5, 6]}]}
//
// Sheet order is preserved in both directions.
package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/ukaji3/heatgrid-go/pkg/heatgrid/models"
)

// ToJSON serializes a workbook.
func ToJSON(wb *models.Workbook, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sheet := range wb.Sheets() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(sheet.Name)
		if err != nil {
			return nil, err
		}
		records := sheet.Records
		if records == nil {
			records = []models.Record{}
		}
		value, err := json.Marshal(records)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')

	if !pretty {
		return buf.Bytes(), nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// SheetToJSON serializes the records of a single sheet as a JSON array.
func SheetToJSON(sheet *models.Sheet, pretty bool) ([]byte, error) {
	records := sheet.Records
	if records == nil {
		records = []models.Record{}
	}
	if pretty {
		return json.MarshalIndent(records, "", "  ")
	}
	return json.Marshal(records)
}

// wireRecord accepts both the current field names and the as1..as4 names
// written by earlier versions of the tool.
type wireRecord struct {
	ID                             *int64
	Field1, Field2, Field3, Field4 []float64
	As1, As2, As3, As4             []float64
}

// decodeRecord matches keys exactly. Unknown keys are ignored.
func decodeRecord(obj map[string]json.RawMessage) (models.Record, error) {
	var w wireRecord
	targets := map[string]any{
		"id":     &w.ID,
		"field1": &w.Field1,
		"field2": &w.Field2,
		"field3": &w.Field3,
		"field4": &w.Field4,
		"as1":    &w.As1,
		"as2":    &w.As2,
		"as3":    &w.As3,
		"as4":    &w.As4,
	}
	for key, value := range obj {
		dst, ok := targets[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(value, dst); err != nil {
			return models.Record{}, fmt.Errorf("%s: %w", key, err)
		}
	}
	return w.record()
}

func (w wireRecord) record() (models.Record, error) {
	if w.ID == nil {
		return models.Record{}, errors.New("record without id")
	}
	r := models.Record{
		ID:     *w.ID,
		Field1: pick(w.Field1, w.As1),
		Field2: pick(w.Field2, w.As2),
		Field3: pick(w.Field3, w.As3),
		Field4: pick(w.Field4, w.As4),
	}
	if !r.Valid() {
		return models.Record{}, fmt.Errorf("record %d: series must have equal length of 1 to %d", r.ID, models.MaxRowsPerRecord)
	}
	return r, nil
}

func pick(current, legacy []float64) []float64 {
	if current != nil {
		return current
	}
	return legacy
}

// FromJSON decodes a workbook. Any syntax or shape problem yields a *DecodeError.
func FromJSON(data []byte) (*models.Workbook, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, NewDecodeError("", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, NewDecodeError("", fmt.Errorf("expected object, got %v", tok))
	}

	wb := models.NewWorkbook()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, NewDecodeError("", err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, NewDecodeError("", fmt.Errorf("expected sheet name, got %v", tok))
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, NewDecodeError(name, err)
		}
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return nil, NewDecodeError(name, errors.New("sheet value is null"))
		}
		var objs []map[string]json.RawMessage
		if err := json.Unmarshal(raw, &objs); err != nil {
			return nil, NewDecodeError(name, err)
		}
		records := make([]models.Record, 0, len(objs))
		for _, obj := range objs {
			r, err := decodeRecord(obj)
			if err != nil {
				return nil, NewDecodeError(name, err)
			}
			records = append(records, r)
		}
		wb.Set(name, records)
	}

	if _, err := dec.Token(); err != nil {
		return nil, NewDecodeError("", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, NewDecodeError("", errors.New("trailing data after workbook object"))
	}
	return wb, nil
}

// FromJSONLenient decodes a workbook and substitutes an empty workbook when
// the text cannot be decoded.
func FromJSONLenient(data []byte) *models.Workbook {
	wb, err := FromJSON(data)
	if err != nil {
		return models.NewWorkbook()
	}
	return wb
}
