package heatgrid

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input is not a zip-based workbook container.
var ErrInvalidFormat = errors.New("invalid workbook format")

// ErrUnsupportedFormat indicates a zip container that holds neither an xlsx nor an xlsb workbook.
var ErrUnsupportedFormat = errors.New("unsupported workbook format")

// SourceReadError reports that the workbook or one of its sheets could not be read.
// It aborts the whole assembly; no partial result accompanies it.
type SourceReadError struct {
	SheetName string // empty when the container itself failed to open
	Err       error
}

func (e *SourceReadError) Error() string {
	if e.SheetName == "" {
		return fmt.Sprintf("source read error: %v", e.Err)
	}
	return fmt.Sprintf("source read error in sheet %q: %v", e.SheetName, e.Err)
}

func (e *SourceReadError) Unwrap() error {
	return e.Err
}

// NewSourceReadError creates a new SourceReadError.
func NewSourceReadError(sheetName string, err error) *SourceReadError {
	return &SourceReadError{
		SheetName: sheetName,
		Err:       err,
	}
}
