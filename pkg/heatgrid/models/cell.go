// Package models defines data structures for record assembly and rendering.
package models

// CellKind is the dynamic type of a cell value as reported by the workbook reader.
type CellKind int

const (
	// CellEmpty is a blank cell.
	CellEmpty CellKind = iota
	// CellNumber is a numeric cell (including formula cells with a numeric result).
	CellNumber
	// CellText is a string cell.
	CellText
	// CellBool is a boolean cell.
	CellBool
	// CellError is an Excel error value such as #DIV/0!.
	CellError
	// CellOther is any value the reader could not place in the kinds above (e.g. ISO date cells).
	CellOther
)

// Cell is a single typed cell value.
type Cell struct {
	// Kind is the value type.
	Kind CellKind
	// Num holds the value when Kind is CellNumber.
	Num float64
	// Text holds the raw text for every non-empty kind.
	Text string
}

// Number returns the numeric value and whether the cell is numeric.
func (c Cell) Number() (float64, bool) {
	if c.Kind != CellNumber {
		return 0, false
	}
	return c.Num, true
}

// NumberCell returns a numeric cell.
func NumberCell(v float64) Cell {
	return Cell{Kind: CellNumber, Num: v}
}

// TextCell returns a string cell.
func TextCell(s string) Cell {
	return Cell{Kind: CellText, Text: s}
}

// CellRow is one physical worksheet row. Column A is index 0; the slice may be
// shorter than the widest row of the sheet, in which case trailing cells are absent.
type CellRow []Cell

// At returns the cell at the 0-based column index and whether it is present.
func (r CellRow) At(col int) (Cell, bool) {
	if col < 0 || col >= len(r) {
		return Cell{}, false
	}
	return r[col], true
}

// NumberAt returns the numeric value at col, or 0 when the cell is absent or not numeric.
func (r CellRow) NumberAt(col int) float64 {
	c, ok := r.At(col)
	if !ok {
		return 0
	}
	v, _ := c.Number()
	return v
}
