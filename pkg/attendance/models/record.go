// Package models defines data structures for attendance sheets and lookups.
package models

import "strings"

// Mark is a single session marker read from a sheet.
type Mark string

const (
	// Present marks a session the student attended.
	Present Mark = "P"
	// Absent marks a session the student missed.
	Absent Mark = "A"
)

// ParseMark returns the marker for a cell value.
// Only the literal values "P" and "A" are markers.
func ParseMark(s string) (Mark, bool) {
	switch Mark(s) {
	case Present, Absent:
		return Mark(s), true
	}
	return "", false
}

// AttendanceRecord is one student's attendance in one course.
type AttendanceRecord struct {
	// Name is the student's display name.
	Name string `json:"name"`
	// CourseName is the course the record was read from.
	CourseName string `json:"course_name"`
	// Section is the student's section within the course.
	Section string `json:"section"`
	// TotalAbsent is the absent count as stated on the sheet.
	TotalAbsent int `json:"total_absent"`
	// TotalPresent is the present count as stated on the sheet.
	TotalPresent int `json:"total_present"`
	// Sessions holds the per-session markers in column order.
	Sessions []Mark `json:"sessions"`
}

// TotalClasses returns TotalPresent + TotalAbsent.
func (r AttendanceRecord) TotalClasses() int {
	return r.TotalPresent + r.TotalAbsent
}

// SessionTally counts the markers in Sessions.
// The result is independent of TotalPresent and TotalAbsent, which are read
// from separate columns and may disagree with it.
func (r AttendanceRecord) SessionTally() (present, absent int) {
	for _, m := range r.Sessions {
		switch m {
		case Present:
			present++
		case Absent:
			absent++
		}
	}
	return present, absent
}

// NormalizeRoll trims and upper-cases a roll number.
func NormalizeRoll(roll string) string {
	return strings.ToUpper(strings.TrimSpace(roll))
}
