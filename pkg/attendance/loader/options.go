package loader

import (
	"time"

	"github.com/ukaji3/attendance-go/pkg/attendance/parser"
)

// Options configures a load cycle.
type Options struct {
	// Concurrency caps the number of in-flight fetches. 0 means no limit.
	Concurrency int
	// FetchTimeout bounds each request. 0 means no timeout.
	FetchTimeout time.Duration
	// Layout is the sheet layout handed to the parser.
	Layout parser.Layout
}

// DefaultOptions returns default load options.
func DefaultOptions() Options {
	return Options{
		FetchTimeout: 30 * time.Second,
		Layout:       parser.DefaultLayout(),
	}
}
