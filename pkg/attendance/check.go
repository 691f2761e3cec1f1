// Package attendance answers roll number lookups over a loaded index.
package attendance

import (
	"math"

	"github.com/ukaji3/attendance-go/pkg/attendance/models"
)

// Check collects every course record for a roll number and summarizes it.
// It returns ErrNoData for an empty index and ErrNotFound when no course
// holds the roll number.
func Check(idx *models.Index, rollNumber string) (*models.Report, error) {
	if idx.Empty() {
		return nil, ErrNoData
	}
	roll := models.NormalizeRoll(rollNumber)
	if roll == "" {
		return nil, ErrNotFound
	}

	report := &models.Report{RollNumber: roll}
	for _, course := range idx.Courses() {
		rec, ok := idx.Record(course, roll)
		if !ok {
			continue
		}
		if report.StudentName == "" && rec.Name != "" {
			report.StudentName = rec.Name
		}
		report.TotalPresent += rec.TotalPresent
		report.TotalClasses += rec.TotalClasses()
		report.Subjects = append(report.Subjects, subjectReport(course, rec))
	}

	if len(report.Subjects) == 0 {
		return nil, ErrNotFound
	}

	report.TotalAbsent = report.TotalClasses - report.TotalPresent
	report.OverallPercentage = Percentage(report.TotalPresent, report.TotalClasses, 1)
	report.Band = models.BandFor(report.OverallPercentage)
	return report, nil
}

func subjectReport(course string, rec models.AttendanceRecord) models.SubjectReport {
	pct := Percentage(rec.TotalPresent, rec.TotalClasses(), 2)
	return models.SubjectReport{
		CourseName:   course,
		Section:      rec.Section,
		TotalClasses: rec.TotalClasses(),
		TotalPresent: rec.TotalPresent,
		TotalAbsent:  rec.TotalAbsent,
		Percentage:   pct,
		Band:         models.BandFor(pct),
		Sessions:     rec.Sessions,
	}
}

// Percentage returns present/total*100 rounded to the given number of
// decimals, or 0 when total is 0.
func Percentage(present, total, decimals int) float64 {
	if total == 0 {
		return 0
	}
	scale := math.Pow(10, float64(decimals))
	return math.Round(float64(present)/float64(total)*100*scale) / scale
}
