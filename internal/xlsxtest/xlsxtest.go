// Package xlsxtest builds attendance workbooks for tests.
package xlsxtest

import (
	"fmt"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Student is one row of a generated sheet.
type Student struct {
	Roll     string
	Name     string
	Section  string
	Absent   any
	Present  any
	Sessions []string
}

// Row returns the student's cells in sheet column order.
func (s Student) Row() []any {
	row := []any{"", s.Roll, s.Name, s.Section, s.Absent, s.Present}
	for _, m := range s.Sessions {
		row = append(row, m)
	}
	return row
}

// Rows lays out a sheet: course name at C3, header at row 6, students from row 7.
func Rows(course string, students ...Student) [][]string {
	rows := make([][]string, 6, 6+len(students))
	rows[0] = []string{"Attendance Sheet"}
	rows[2] = []string{"", "Course", course}
	rows[5] = []string{"S.No", "Roll No", "Name", "Section", "Absent", "Present"}
	for _, s := range students {
		row := []string{"", s.Roll, s.Name, s.Section, toString(s.Absent), toString(s.Present)}
		rows = append(rows, append(row, s.Sessions...))
	}
	return rows
}

// Workbook writes an xlsx file with the course name and students and returns its bytes.
func Workbook(t testing.TB, course string, students ...Student) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetCellValue(sheet, "A1", "Attendance Sheet"); err != nil {
		t.Fatalf("set title: %v", err)
	}
	if course != "" {
		if err := f.SetCellValue(sheet, "B3", "Course"); err != nil {
			t.Fatalf("set label: %v", err)
		}
		if err := f.SetCellValue(sheet, "C3", course); err != nil {
			t.Fatalf("set course: %v", err)
		}
	}
	header := []any{"S.No", "Roll No", "Name", "Section", "Absent", "Present"}
	if err := f.SetSheetRow(sheet, "A6", &header); err != nil {
		t.Fatalf("set header: %v", err)
	}
	for i, s := range students {
		cell, err := excelize.CoordinatesToCellName(1, 7+i)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		row := s.Row()
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row %d: %v", i, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
