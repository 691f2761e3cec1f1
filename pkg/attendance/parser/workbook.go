package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ukaji3/attendance-go/pkg/attendance/models"
	"github.com/xuri/excelize/v2"
)

// ParseWorkbook reads an xlsx workbook and parses its first sheet.
// name identifies the file in errors. Every failure, including a blank
// course name, is returned as a *ParseError.
func ParseWorkbook(r io.Reader, name string, layout Layout) (sheet models.CourseSheet, err error) {
	defer func() {
		if p := recover(); p != nil {
			sheet = models.CourseSheet{}
			err = NewParseError(name, fmt.Errorf("panic while reading cells: %v", p))
		}
	}()

	f, err := excelize.OpenReader(r)
	if err != nil {
		return models.CourseSheet{}, NewParseError(name, err)
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return models.CourseSheet{}, NewParseError(name, ErrNoSheets)
	}

	rows, err := f.GetRows(sheetList[0])
	if err != nil {
		return models.CourseSheet{}, NewParseError(name, err)
	}

	sheet, err = ParseRows(rows, layout)
	if err != nil {
		return sheet, NewParseError(name, err)
	}
	return sheet, nil
}

// ParseBytes is ParseWorkbook over an in-memory file.
func ParseBytes(data []byte, name string, layout Layout) (models.CourseSheet, error) {
	return ParseWorkbook(bytes.NewReader(data), name, layout)
}

// ParseFile parses a workbook on disk.
func ParseFile(path string, layout Layout) (models.CourseSheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.CourseSheet{}, NewParseError(filepath.Base(path), err)
	}
	defer f.Close()

	return ParseWorkbook(f, filepath.Base(path), layout)
}
