package heatgrid

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/heatgrid-go/pkg/heatgrid/models"
)

// xlsbCell is one cell of the binary fixture. isErr writes errCode as an
// error cell instead of value.
type xlsbCell struct {
	col     uint32
	value   float64
	errCode byte
	isErr   bool
}

// buildXLSB writes a single-sheet binary workbook named "Binary". rows maps a
// zero-based row index to its cells; indices missing from order are gaps.
func buildXLSB(t *testing.T, order []uint32, rows map[uint32][]xlsbCell) []byte {
	t.Helper()

	writeID := func(buf *bytes.Buffer, id int) {
		if id < 0x80 {
			buf.WriteByte(byte(id))
		} else {
			buf.WriteByte(byte(id & 0xFF))
			buf.WriteByte(byte(id >> 8))
		}
	}
	writeLen := func(buf *bytes.Buffer, n int) {
		for {
			b := n & 0x7F
			n >>= 7
			if n > 0 {
				buf.WriteByte(byte(b) | 0x80)
			} else {
				buf.WriteByte(byte(b))
				break
			}
		}
	}
	writeRec := func(buf *bytes.Buffer, id int, payload []byte) {
		writeID(buf, id)
		writeLen(buf, len(payload))
		buf.Write(payload)
	}
	encStr := func(s string) []byte {
		runes := []rune(s)
		var sb bytes.Buffer
		_ = binary.Write(&sb, binary.LittleEndian, uint32(len(runes)))
		for _, r := range runes {
			_ = binary.Write(&sb, binary.LittleEndian, uint16(r))
		}
		return sb.Bytes()
	}
	le32 := func(v uint32) []byte {
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, v)
		return b
	}

	// xl/workbook.bin
	var wb bytes.Buffer
	writeRec(&wb, 0x0183, nil) // WORKBOOK start
	writeRec(&wb, 0x018F, nil) // SHEETS start
	var sheetRec bytes.Buffer
	sheetRec.Write(le32(0))
	sheetRec.Write(le32(1))
	sheetRec.Write(encStr("rId1"))
	sheetRec.Write(encStr("Binary"))
	writeRec(&wb, 0x019C, sheetRec.Bytes())
	writeRec(&wb, 0x0190, nil) // SHEETS end
	writeRec(&wb, 0x0184, nil) // WORKBOOK end

	// xl/worksheets/sheet1.bin
	var ws bytes.Buffer
	writeRec(&ws, 0x0181, nil) // WORKSHEET start
	var dim bytes.Buffer
	dim.Write(le32(order[0]))
	dim.Write(le32(order[len(order)-1]))
	dim.Write(le32(0))
	dim.Write(le32(4))
	writeRec(&ws, 0x0194, dim.Bytes()) // DIMENSION
	writeRec(&ws, 0x0191, nil)         // SHEETDATA start

	for _, r := range order {
		writeRec(&ws, 0x0000, le32(r)) // ROW
		for _, c := range rows[r] {
			var cell bytes.Buffer
			cell.Write(le32(c.col))
			cell.Write(le32(0)) // style
			if c.isErr {
				cell.WriteByte(c.errCode)
				writeRec(&ws, 0x0003, cell.Bytes()) // BoolErr
				continue
			}
			var f64 [8]byte
			binary.LittleEndian.PutUint64(f64[:], math.Float64bits(c.value))
			cell.Write(f64[:])
			writeRec(&ws, 0x0005, cell.Bytes()) // FLOAT
		}
	}

	writeRec(&ws, 0x0192, nil) // SHEETDATA end
	writeRec(&ws, 0x0182, nil) // WORKSHEET end

	var zipBuf bytes.Buffer
	zw := zip.NewWriter(&zipBuf)
	addFile := func(name string, data []byte) {
		f, err := zw.Create(name)
		require.NoError(t, err)
		_, err = f.Write(data)
		require.NoError(t, err)
	}
	relsXML := `<?xml version="1.0" encoding="UTF-8"?>` +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="worksheet" Target="worksheets/sheet1.bin"/>` +
		`</Relationships>`
	addFile("xl/_rels/workbook.bin.rels", []byte(relsXML))
	addFile("xl/workbook.bin", wb.Bytes())
	addFile("xl/worksheets/sheet1.bin", ws.Bytes())
	require.NoError(t, zw.Close())
	return zipBuf.Bytes()
}

func numbers(start uint32, values ...float64) []xlsbCell {
	cells := make([]xlsbCell, len(values))
	for i, v := range values {
		cells[i] = xlsbCell{col: start + uint32(i), value: v}
	}
	return cells
}

// binaryFixture lays out, by zero-based row:
//
//	0: gap
//	1: id 1 with fields 10..40
//	2: continuation (no id cell) with fields 11..41
//	3: id 2 with fields 1..4
//	4: unknown error code in the id column
//	5: continuation with fields 5..8
func binaryFixture(t *testing.T) []byte {
	return buildXLSB(t, []uint32{1, 2, 3, 4, 5}, map[uint32][]xlsbCell{
		1: numbers(0, 1, 10, 20, 30, 40),
		2: numbers(1, 11, 21, 31, 41),
		3: numbers(0, 2, 1, 2, 3, 4),
		4: append([]xlsbCell{{col: 0, errCode: 0xFF, isErr: true}}, numbers(1, 9, 9, 9, 9)...),
		5: numbers(1, 5, 6, 7, 8),
	})
}

func assertBinaryRecords(t *testing.T, wb *models.Workbook) {
	t.Helper()

	assert.Equal(t, []string{"Binary"}, wb.SheetNames())
	records, ok := wb.Get("Binary")
	require.True(t, ok)
	require.Len(t, records, 2)

	assert.Equal(t, models.Record{
		ID:     1,
		Field1: []float64{10, 11},
		Field2: []float64{20, 21},
		Field3: []float64{30, 31},
		Field4: []float64{40, 41},
	}, records[0])
	assert.Equal(t, models.Record{
		ID:     2,
		Field1: []float64{1, 5},
		Field2: []float64{2, 6},
		Field3: []float64{3, 7},
		Field4: []float64{4, 8},
	}, records[1])
}

func TestAssembleBytes_XLSB(t *testing.T) {
	data := binaryFixture(t)

	format, err := DetectFormat(data)
	require.NoError(t, err)
	assert.Equal(t, FormatXLSB, format)

	wb, err := AssembleBytes(data, DefaultOptions())
	require.NoError(t, err)
	assertBinaryRecords(t, wb)
}

func TestAssemble_XLSBFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsb")
	require.NoError(t, os.WriteFile(path, binaryFixture(t), 0644))

	wb, err := Assemble(path, DefaultOptions())
	require.NoError(t, err)
	assertBinaryRecords(t, wb)
}
