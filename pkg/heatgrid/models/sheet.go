package models

// Sheet pairs a sheet name with its records in order of first appearance.
type Sheet struct {
	// Name is the worksheet tab name.
	Name string
	// Records contains the assembled records.
	Records []Record
}
