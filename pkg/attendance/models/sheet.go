package models

// CourseSheet is the parsed content of one attendance file.
type CourseSheet struct {
	// CourseName is empty when the file carried no course name.
	CourseName string `json:"course_name"`
	// Records maps normalized roll number to record.
	Records map[string]AttendanceRecord `json:"records"`
}

// Empty reports whether the sheet contributes nothing to an index.
func (s CourseSheet) Empty() bool {
	return s.CourseName == ""
}
