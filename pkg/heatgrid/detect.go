package heatgrid

import (
	"archive/zip"
	"bytes"
	"path/filepath"
	"strings"
)

// Workbook part names that identify the container format.
const (
	xlsxWorkbookPart = "xl/workbook.xml"
	xlsbWorkbookPart = "xl/workbook.bin"
)

// FormatFromPath maps a file extension to a format, or FormatAuto when the
// extension is not recognized.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	case ".xlsb":
		return FormatXLSB
	}
	return FormatAuto
}

// DetectFormat inspects the zip directory of data to tell xlsx from xlsb.
func DetectFormat(data []byte) (Format, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return FormatAuto, ErrInvalidFormat
	}

	for _, f := range r.File {
		switch strings.ToLower(f.Name) {
		case xlsxWorkbookPart:
			return FormatXLSX, nil
		case xlsbWorkbookPart:
			return FormatXLSB, nil
		}
	}
	return FormatAuto, ErrUnsupportedFormat
}
