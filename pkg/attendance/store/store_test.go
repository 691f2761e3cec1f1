package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/attendance-go/pkg/attendance/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), "sqlite3", filepath.Join(t.TempDir(), "cache", "attendance.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func buildIndex(present int) *models.Index {
	b := models.NewIndexBuilder()
	b.Merge(models.CourseSheet{
		CourseName: "HRM",
		Records: map[string]models.AttendanceRecord{
			"R001": {Name: "Alice", CourseName: "HRM", Section: "A", TotalPresent: present, TotalAbsent: 1,
				Sessions: []models.Mark{models.Present, models.Absent}},
		},
	}, models.Source{Name: "HRM (A) Attendance Sheet.xlsx", Path: "HRM", URL: "https://example.com/HRM/a.xlsx"})
	b.Merge(models.CourseSheet{
		CourseName: "DT",
		Records: map[string]models.AttendanceRecord{
			"R001": {Name: "Alice", CourseName: "DT", TotalPresent: 2},
		},
	}, models.Source{Name: "DT (A) Attendance Sheet.xlsx", Path: "DT"})
	return b.Build()
}

func TestLoadEmpty(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestSaveLoad(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, buildIndex(5)))

	idx, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"HRM", "DT"}, idx.Courses())
	rec, ok := idx.Record("HRM", "R001")
	require.True(t, ok)
	assert.Equal(t, 5, rec.TotalPresent)
	assert.Equal(t, []models.Mark{models.Present, models.Absent}, rec.Sessions)
	assert.Equal(t, "https://example.com/HRM/a.xlsx", idx.Sources("HRM")[0].URL)
}

func TestSaveOverwrites(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, buildIndex(5)))
	require.NoError(t, s.Save(ctx, buildIndex(9)))

	idx, err := s.Load(ctx)
	require.NoError(t, err)
	rec, _ := idx.Record("HRM", "R001")
	assert.Equal(t, 9, rec.TotalPresent)

	var rows int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM kv_cache`).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestLoadCorrupt(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.db.Exec(`INSERT INTO kv_cache (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`, CacheKey, "{broken")
	require.NoError(t, err)

	_, err = s.Load(ctx)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestOpenInvalidDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "whatever")
	assert.Error(t, err)
}

func TestRebind(t *testing.T) {
	pg := &Store{driver: "postgres"}
	assert.Equal(t, "SELECT a FROM t WHERE b = $1 AND c = $2", pg.rebind("SELECT a FROM t WHERE b = ? AND c = ?"))

	lite := &Store{driver: "sqlite3"}
	assert.Equal(t, "SELECT ?", lite.rebind("SELECT ?"))
}
