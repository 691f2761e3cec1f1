package models

// Band classifies an attendance percentage for display.
type Band string

const (
	BandHigh   Band = "high"
	BandMedium Band = "medium"
	BandLow    Band = "low"
)

// BandFor returns the band for a percentage: >=75 high, >=60 medium, else low.
func BandFor(percentage float64) Band {
	switch {
	case percentage >= 75:
		return BandHigh
	case percentage >= 60:
		return BandMedium
	default:
		return BandLow
	}
}

// SubjectReport is the attendance summary for one matched course.
type SubjectReport struct {
	CourseName   string  `json:"course_name"`
	Section      string  `json:"section"`
	TotalClasses int     `json:"total_classes"`
	TotalPresent int     `json:"total_present"`
	TotalAbsent  int     `json:"total_absent"`
	Percentage   float64 `json:"percentage"`
	Band         Band    `json:"band"`
	Sessions     []Mark  `json:"sessions,omitempty"`
}

// Report is the result of a roll number lookup.
type Report struct {
	RollNumber        string          `json:"roll_number"`
	StudentName       string          `json:"student_name"`
	TotalClasses      int             `json:"total_classes"`
	TotalPresent      int             `json:"total_present"`
	TotalAbsent       int             `json:"total_absent"`
	OverallPercentage float64         `json:"overall_percentage"`
	Band              Band            `json:"band"`
	Subjects          []SubjectReport `json:"subjects"`
}
