package domain

import "time"

// Section is one titled block of the scan report. Exactly one of three states
// holds: Err is set (the category query failed), Items is empty (a positive
// "none found"), or Items carries the flagged resources.
type Section struct {
	Category ResourceCategory
	Title    string
	Items    []string
	Err      error
}

// ScanReport is the complete outcome of one scanner invocation.
type ScanReport struct {
	GeneratedAt time.Time
	Sections    []Section
}

// Failed reports how many sections carry an error marker.
func (r ScanReport) Failed() int {
	n := 0
	for _, s := range r.Sections {
		if s.Err != nil {
			n++
		}
	}
	return n
}

// Flagged reports the total number of itemized findings across all sections.
func (r ScanReport) Flagged() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Items)
	}
	return n
}
