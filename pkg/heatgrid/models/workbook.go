package models

// Workbook maps sheet names to record sequences, preserving insertion order.
type Workbook struct {
	sheets []Sheet
	index  map[string]int
}

// NewWorkbook returns an empty workbook.
func NewWorkbook() *Workbook {
	return &Workbook{index: make(map[string]int)}
}

// Set stores records under name. An existing sheet keeps its position.
func (w *Workbook) Set(name string, records []Record) {
	if w.index == nil {
		w.index = make(map[string]int)
	}
	if i, ok := w.index[name]; ok {
		w.sheets[i].Records = records
		return
	}
	w.index[name] = len(w.sheets)
	w.sheets = append(w.sheets, Sheet{Name: name, Records: records})
}

// Get returns the records stored under name.
func (w *Workbook) Get(name string) ([]Record, bool) {
	if w == nil {
		return nil, false
	}
	i, ok := w.index[name]
	if !ok {
		return nil, false
	}
	return w.sheets[i].Records, true
}

// Sheets returns the sheets in insertion order.
func (w *Workbook) Sheets() []Sheet {
	if w == nil {
		return nil
	}
	return w.sheets
}

// SheetNames returns the sheet names in insertion order.
func (w *Workbook) SheetNames() []string {
	names := make([]string, 0, len(w.Sheets()))
	for _, s := range w.Sheets() {
		names = append(names, s.Name)
	}
	return names
}

// Len returns the number of sheets.
func (w *Workbook) Len() int {
	return len(w.Sheets())
}

// RecordCount returns the total number of records across all sheets.
func (w *Workbook) RecordCount() int {
	n := 0
	for _, s := range w.Sheets() {
		n += len(s.Records)
	}
	return n
}
