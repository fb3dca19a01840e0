// Package assembler groups physical worksheet rows into records.
//
// A record starts on an identifier row (numeric first column) and may absorb
// exactly one continuation row (blank or text first column). Each sheet is
// assembled by its own SheetAssembler; no state is shared between sheets.
package assembler

import (
	"github.com/ukaji3/heatgrid-go/pkg/heatgrid/models"
)

// Column layout of a physical row (0-based).
const (
	idColumn         = 0
	firstFieldColumn = 1
)

// Logger receives per-row diagnostics.
type Logger interface {
	Debug(format string, args ...interface{})
}

// Options configures a SheetAssembler.
type Options struct {
	// Logger receives a debug line for every transition. May be nil.
	Logger Logger
}

// RowClass is the classification of a row by its first-column cell.
type RowClass int

const (
	// RowIdentifier starts a new record.
	RowIdentifier RowClass = iota
	// RowContinuation carries the second set of field values.
	RowContinuation
	// RowUnrecognized is discarded.
	RowUnrecognized
)

func (c RowClass) String() string {
	switch c {
	case RowIdentifier:
		return "identifier"
	case RowContinuation:
		return "continuation"
	default:
		return "unrecognized"
	}
}

// Classify returns the class of row.
func Classify(row models.CellRow) RowClass {
	c, ok := row.At(idColumn)
	if !ok {
		return RowContinuation
	}
	switch c.Kind {
	case models.CellNumber:
		return RowIdentifier
	case models.CellEmpty, models.CellText:
		return RowContinuation
	default:
		return RowUnrecognized
	}
}

// fieldValues reads the four field columns; absent or non-numeric cells read as 0.
func fieldValues(row models.CellRow) [models.FieldCount]float64 {
	var v [models.FieldCount]float64
	for i := range v {
		v[i] = row.NumberAt(firstFieldColumn + i)
	}
	return v
}

type state int

const (
	stateEmpty  state = iota // no pending record
	stateOpen                // pending record holds one row
	statePaired              // pending record holds two rows
)

// SheetAssembler is the per-sheet state machine. The zero value is not usable;
// use NewSheetAssembler.
type SheetAssembler struct {
	opts    Options
	state   state
	pending models.Record
	out     []models.Record
	rowNum  int
}

// NewSheetAssembler returns an assembler in the empty state.
func NewSheetAssembler(opts Options) *SheetAssembler {
	return &SheetAssembler{opts: opts, out: []models.Record{}}
}

// Feed consumes the next physical row.
func (a *SheetAssembler) Feed(row models.CellRow) {
	a.rowNum++

	switch Classify(row) {
	case RowIdentifier:
		a.seal()
		c, _ := row.At(idColumn)
		values := fieldValues(row)
		a.pending = models.NewRecord(models.TruncateID(c.Num), values)
		a.state = stateOpen
		a.debugf("row %d: new record %d %v", a.rowNum, a.pending.ID, values)

	case RowContinuation:
		switch a.state {
		case stateOpen:
			values := fieldValues(row)
			a.pending.AppendRow(values)
			a.state = statePaired
			a.debugf("row %d: second row for record %d %v", a.rowNum, a.pending.ID, values)
		case statePaired:
			a.debugf("row %d: record %d already has %d rows, row skipped", a.rowNum, a.pending.ID, models.MaxRowsPerRecord)
		default:
			a.debugf("row %d: continuation without a record, row skipped", a.rowNum)
		}

	case RowUnrecognized:
		a.debugf("row %d: unrecognized first cell, row skipped", a.rowNum)
	}
}

// Finish flushes the pending record and returns the sheet's records.
// The assembler must not be fed afterwards.
func (a *SheetAssembler) Finish() []models.Record {
	a.seal()
	return a.out
}

func (a *SheetAssembler) seal() {
	if a.state == stateEmpty {
		return
	}
	a.out = append(a.out, a.pending)
	a.pending = models.Record{}
	a.state = stateEmpty
}

func (a *SheetAssembler) debugf(format string, args ...interface{}) {
	if a.opts.Logger != nil {
		a.opts.Logger.Debug(format, args...)
	}
}

// AssembleRows assembles one sheet's rows.
func AssembleRows(rows []models.CellRow, opts Options) []models.Record {
	a := NewSheetAssembler(opts)
	for _, row := range rows {
		a.Feed(row)
	}
	return a.Finish()
}
