package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// dateFormats reports whether a cell's number format displays a date or time.
// Results are cached per style index.
type dateFormats struct {
	f     *excelize.File
	cache map[int]bool
}

func newDateFormats(f *excelize.File) *dateFormats {
	return &dateFormats{f: f, cache: make(map[int]bool)}
}

func (d *dateFormats) isDate(sheetName, cellName string) (bool, error) {
	idx, err := d.f.GetCellStyle(sheetName, cellName)
	if err != nil {
		return false, err
	}
	if v, ok := d.cache[idx]; ok {
		return v, nil
	}

	style, err := d.f.GetStyle(idx)
	if err != nil {
		return false, err
	}
	v := isDateStyle(style)
	d.cache[idx] = v
	return v, nil
}

func isDateStyle(style *excelize.Style) bool {
	if style.CustomNumFmt != nil {
		return isDateFormatCode(*style.CustomNumFmt)
	}
	return isBuiltInDateFormat(style.NumFmt)
}

// isBuiltInDateFormat covers the built-in date and time ids, including the
// East Asian locale ids.
func isBuiltInDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22,
		id >= 27 && id <= 36,
		id >= 45 && id <= 47,
		id >= 50 && id <= 58,
		id >= 71 && id <= 81:
		return true
	}
	return false
}

// isDateFormatCode looks for date or time tokens outside quoted text,
// escapes and bracketed sections.
func isDateFormatCode(code string) bool {
	var escaped, quoted, bracketed bool
	for _, r := range strings.ToLower(code) {
		switch {
		case escaped:
			escaped = false
		case quoted:
			quoted = r != '"'
		case bracketed:
			bracketed = r != ']'
		case r == '\\' || r == '_' || r == '*':
			escaped = true
		case r == '"':
			quoted = true
		case r == '[':
			bracketed = true
		case strings.ContainsRune("ymdhs", r):
			return true
		}
	}
	return false
}
