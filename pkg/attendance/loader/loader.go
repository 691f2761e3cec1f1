// Package loader downloads attendance files and merges them into an index.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/ukaji3/attendance-go/pkg/attendance/models"
	"github.com/ukaji3/attendance-go/pkg/attendance/parser"
	"golang.org/x/sync/errgroup"
)

// Stats summarizes one load cycle.
type Stats struct {
	Total       int           `json:"total"`
	Fetched     int           `json:"fetched"`
	Parsed      int           `json:"parsed"`
	FetchFailed int           `json:"fetch_failed"`
	ParseFailed int           `json:"parse_failed"`
	NoCourse    int           `json:"no_course"`
	Courses     int           `json:"courses"`
	Elapsed     time.Duration `json:"elapsed"`
}

type status int

const (
	statusOK status = iota
	statusFetchFailed
	statusParseFailed
	statusNoCourse
)

type result struct {
	status status
	sheet  models.CourseSheet
}

// Loader fetches and parses attendance files.
type Loader struct {
	client *http.Client
	opts   Options
	logger log.Logger
}

// New creates a Loader. A nil client uses http.DefaultClient and a nil
// logger discards output.
func New(client *http.Client, opts Options, logger log.Logger) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Loader{
		client: client,
		opts:   opts,
		logger: log.With(logger, "component", "loader"),
	}
}

// Load fetches every source concurrently and builds a new Index.
// Failed sources are logged and skipped; Load itself never fails.
// Sheets are merged in source order once all fetches have settled, so for a
// roll number present in two files of the same course the later source wins.
func (l *Loader) Load(ctx context.Context, sources []models.Source) (*models.Index, Stats) {
	start := time.Now()
	level.Info(l.logger).Log("msg", "starting load", "files", len(sources))

	results := make([]result, len(sources))
	var g errgroup.Group
	if l.opts.Concurrency > 0 {
		g.SetLimit(l.opts.Concurrency)
	}
	for i, src := range sources {
		g.Go(func() error {
			results[i] = l.loadSource(ctx, src)
			return nil
		})
	}
	_ = g.Wait()

	idx, stats := merge(sources, results)
	stats.Elapsed = time.Since(start)
	level.Info(l.logger).Log(
		"msg", "load complete",
		"files", stats.Total,
		"parsed", stats.Parsed,
		"fetch_failed", stats.FetchFailed,
		"parse_failed", stats.ParseFailed,
		"no_course", stats.NoCourse,
		"courses", stats.Courses,
		"took", stats.Elapsed,
	)
	return idx, stats
}

// LoadFiles parses local workbooks in order and builds a new Index.
func (l *Loader) LoadFiles(paths []string) (*models.Index, Stats) {
	start := time.Now()

	sources := make([]models.Source, len(paths))
	results := make([]result, len(paths))
	for i, path := range paths {
		sources[i] = models.Source{Name: filepath.Base(path), Path: filepath.Dir(path)}
		sheet, err := parser.ParseFile(path, l.opts.Layout)
		results[i] = l.classify(sources[i], sheet, err)
	}

	idx, stats := merge(sources, results)
	stats.Elapsed = time.Since(start)
	return idx, stats
}

func merge(sources []models.Source, results []result) (*models.Index, Stats) {
	stats := Stats{Total: len(sources)}
	b := models.NewIndexBuilder()
	for i, r := range results {
		switch r.status {
		case statusFetchFailed:
			stats.FetchFailed++
			continue
		case statusParseFailed:
			stats.Fetched++
			stats.ParseFailed++
			continue
		case statusNoCourse:
			stats.Fetched++
			stats.NoCourse++
			continue
		}
		stats.Fetched++
		stats.Parsed++
		b.Merge(r.sheet, sources[i])
	}
	idx := b.Build()
	stats.Courses = idx.Len()
	return idx, stats
}

func (l *Loader) loadSource(ctx context.Context, src models.Source) result {
	data, err := l.fetch(ctx, src.URL)
	if err != nil {
		level.Warn(l.logger).Log("msg", "skipping file", "file", src.Name, "path", src.Path, "err", err)
		return result{status: statusFetchFailed}
	}
	sheet, err := parser.ParseBytes(data, src.Name, l.opts.Layout)
	return l.classify(src, sheet, err)
}

func (l *Loader) classify(src models.Source, sheet models.CourseSheet, err error) result {
	switch {
	case errors.Is(err, parser.ErrNoCourseName):
		level.Warn(l.logger).Log("msg", "no course name found", "file", src.Name)
		return result{status: statusNoCourse}
	case err != nil:
		level.Error(l.logger).Log("msg", "error processing file", "file", src.Name, "err", err)
		return result{status: statusParseFailed}
	}
	level.Debug(l.logger).Log("msg", "processed", "file", src.Name, "course", sheet.CourseName, "students", len(sheet.Records))
	return result{status: statusOK, sheet: sheet}
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	if l.opts.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.opts.FetchTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	return data, nil
}
