package output

import "fmt"

// DecodeError reports interchange text that does not have the sheet to records shape.
type DecodeError struct {
	SheetName string // empty when the error is not tied to one sheet
	Err       error
}

func (e *DecodeError) Error() string {
	if e.SheetName == "" {
		return fmt.Sprintf("decode error: %v", e.Err)
	}
	return fmt.Sprintf("decode error in sheet %q: %v", e.SheetName, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewDecodeError creates a new DecodeError.
func NewDecodeError(sheetName string, err error) *DecodeError {
	return &DecodeError{
		SheetName: sheetName,
		Err:       err,
	}
}
