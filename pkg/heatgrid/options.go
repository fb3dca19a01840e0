// Package heatgrid reassembles two-row spreadsheet records and renders them as heatmaps.
package heatgrid

import (
	"fmt"

	"github.com/ukaji3/heatgrid-go/pkg/heatgrid/assembler"
)

// Format identifies the workbook container format.
type Format string

const (
	// FormatAuto detects the format from the file extension or container contents.
	FormatAuto Format = ""
	// FormatXLSX is the Office Open XML workbook format (.xlsx, .xlsm).
	FormatXLSX Format = "xlsx"
	// FormatXLSB is the binary workbook format (.xlsb).
	FormatXLSB Format = "xlsb"
)

// Logger receives per-row diagnostics during assembly.
type Logger = assembler.Logger

// Options configures assembly behavior.
type Options struct {
	// Format forces a container format. FormatAuto detects it.
	Format Format
	// Logger receives debug diagnostics. If nil, nothing is logged.
	Logger Logger
}

// DefaultOptions returns default assembly options.
func DefaultOptions() Options {
	return Options{
		Format: FormatAuto,
	}
}

// ParseFormat converts a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "auto":
		return FormatAuto, nil
	case "xlsx", "xlsm":
		return FormatXLSX, nil
	case "xlsb":
		return FormatXLSB, nil
	}
	return FormatAuto, fmt.Errorf("invalid format: %s (must be auto, xlsx, or xlsb)", s)
}

func (o Options) assemblerOptions() assembler.Options {
	return assembler.Options{Logger: o.Logger}
}
