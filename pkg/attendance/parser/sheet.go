// Package parser turns attendance workbooks into course sheets.
package parser

import (
	"strings"

	"github.com/ukaji3/attendance-go/pkg/attendance/models"
)

// Layout holds the fixed cell positions of an attendance sheet.
// All positions are 0-based.
type Layout struct {
	CourseRow       int
	CourseCol       int
	FirstStudentRow int
	RollCol         int
	NameCol         int
	SectionCol      int
	AbsentCol       int
	PresentCol      int
	FirstSessionCol int
}

// DefaultLayout returns the layout used by the published attendance sheets.
func DefaultLayout() Layout {
	return Layout{
		CourseRow:       2,
		CourseCol:       2,
		FirstStudentRow: 6,
		RollCol:         1,
		NameCol:         2,
		SectionCol:      3,
		AbsentCol:       4,
		PresentCol:      5,
		FirstSessionCol: 6,
	}
}

// ParseRows extracts the course name and student records from the rows of
// one sheet. It returns ErrNoCourseName, with an empty sheet, when the course
// name cell is blank or whitespace only. Rows with a blank roll number are skipped; a roll
// number repeated within the sheet keeps its last row.
func ParseRows(rows [][]string, layout Layout) (models.CourseSheet, error) {
	courseName := strings.TrimSpace(cellAt(rows, layout.CourseRow, layout.CourseCol))
	if courseName == "" {
		return models.CourseSheet{Records: map[string]models.AttendanceRecord{}}, ErrNoCourseName
	}

	records := make(map[string]models.AttendanceRecord)
	for rowIdx := layout.FirstStudentRow; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		roll := models.NormalizeRoll(cellIn(row, layout.RollCol))
		if roll == "" {
			continue
		}
		records[roll] = models.AttendanceRecord{
			Name:         strings.TrimSpace(cellIn(row, layout.NameCol)),
			CourseName:   courseName,
			Section:      strings.TrimSpace(cellIn(row, layout.SectionCol)),
			TotalAbsent:  parseCount(cellIn(row, layout.AbsentCol)),
			TotalPresent: parseCount(cellIn(row, layout.PresentCol)),
			Sessions:     parseSessions(row, layout.FirstSessionCol),
		}
	}

	return models.CourseSheet{
		CourseName: courseName,
		Records:    records,
	}, nil
}

// parseSessions keeps the P/A markers from col onwards, in column order.
func parseSessions(row []string, col int) []models.Mark {
	sessions := []models.Mark{}
	for i := col; i < len(row); i++ {
		if m, ok := models.ParseMark(row[i]); ok {
			sessions = append(sessions, m)
		}
	}
	return sessions
}
