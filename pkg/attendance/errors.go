package attendance

import "errors"

// ErrNotFound indicates the roll number matched no course.
var ErrNotFound = errors.New("roll number not found")

// ErrNoData indicates no attendance data has been loaded.
var ErrNoData = errors.New("no attendance data available")
