package heatgrid

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/ukaji3/heatgrid-go/pkg/heatgrid/assembler"
	"github.com/ukaji3/heatgrid-go/pkg/heatgrid/models"
	"github.com/ukaji3/heatgrid-go/pkg/heatgrid/parser"
)

// RowSource supplies the sheets of a workbook and their typed rows.
type RowSource interface {
	SheetNames() []string
	Rows(sheetName string) ([]models.CellRow, error)
	Close() error
}

// Assemble reads the workbook at path and assembles its records.
func Assemble(path string, opts Options) (*models.Workbook, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, NewSourceReadError("", fmt.Errorf("%w: %s", ErrFileNotFound, path))
	}

	format := opts.Format
	if format == FormatAuto {
		format = FormatFromPath(path)
	}
	if format == FormatAuto {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, NewSourceReadError("", err)
		}
		return AssembleBytes(data, opts)
	}

	src, err := openFile(path, format)
	if err != nil {
		return nil, NewSourceReadError("", err)
	}
	defer src.Close()

	return AssembleSource(src, opts)
}

// AssembleBytes assembles the records of an in-memory workbook.
func AssembleBytes(data []byte, opts Options) (*models.Workbook, error) {
	format := opts.Format
	if format == FormatAuto {
		detected, err := DetectFormat(data)
		if err != nil {
			return nil, NewSourceReadError("", err)
		}
		format = detected
	}

	src, err := openBytes(data, format)
	if err != nil {
		return nil, NewSourceReadError("", err)
	}
	defer src.Close()

	return AssembleSource(src, opts)
}

// AssembleSource assembles every sheet of src. Each sheet gets its own
// assembler state. A sheet whose rows cannot be read aborts the whole call.
func AssembleSource(src RowSource, opts Options) (*models.Workbook, error) {
	wb := models.NewWorkbook()

	for _, sheetName := range src.SheetNames() {
		rows, err := src.Rows(sheetName)
		if err != nil {
			return nil, NewSourceReadError(sheetName, err)
		}
		wb.Set(sheetName, assembler.AssembleRows(rows, opts.assemblerOptions()))
	}

	return wb, nil
}

func openFile(path string, format Format) (RowSource, error) {
	switch format {
	case FormatXLSX:
		return parser.OpenXLSXFile(path)
	case FormatXLSB:
		return parser.OpenXLSBFile(path)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

func openBytes(data []byte, format Format) (RowSource, error) {
	switch format {
	case FormatXLSX:
		return parser.OpenXLSX(bytes.NewReader(data))
	case FormatXLSB:
		return parser.OpenXLSB(bytes.NewReader(data), int64(len(data)))
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}
