// Package store persists the attendance index as a single cached blob.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/ukaji3/attendance-go/pkg/attendance/models"
)

// CacheKey is the key the index is stored under.
const CacheKey = "attendanceCache"

// ErrCacheMiss indicates no index has been saved yet.
var ErrCacheMiss = errors.New("attendance cache is empty")

// Store keeps the latest index in a key/value table.
type Store struct {
	db     *sql.DB
	driver string
}

// Open connects to the cache database and creates the table if needed.
// driver is "sqlite3" or "postgres".
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	switch driver {
	case "sqlite3":
		if dir := filepath.Dir(dsn); dir != "." && dsn != ":memory:" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create cache directory: %w", err)
			}
		}
	case "postgres":
	default:
		return nil, fmt.Errorf("invalid cache driver: %s (must be sqlite3 or postgres)", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	if driver == "sqlite3" {
		db.SetMaxOpenConns(1)
	}

	s := &Store{db: db, driver: driver}
	if err := s.createTable(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) createTable(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS kv_cache (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create kv_cache table: %w", err)
	}
	return nil
}

// Save overwrites the cached index.
func (s *Store) Save(ctx context.Context, idx *models.Index) error {
	data, err := json.Marshal(idx)
	if err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}

	_, err = s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO kv_cache (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`), CacheKey, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save index: %w", err)
	}
	return nil
}

// Load returns the cached index, or ErrCacheMiss.
func (s *Store) Load(ctx context.Context) (*models.Index, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT value FROM kv_cache WHERE key = ?`), CacheKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	idx := &models.Index{}
	if err := json.Unmarshal([]byte(value), idx); err != nil {
		return nil, fmt.Errorf("failed to decode cached index: %w", err)
	}
	return idx, nil
}

// rebind rewrites ? placeholders to $n for postgres.
func (s *Store) rebind(query string) string {
	if s.driver != "postgres" {
		return query
	}
	out := make([]byte, 0, len(query)+8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			out = append(out, fmt.Sprintf("$%d", n)...)
			continue
		}
		out = append(out, query[i])
	}
	return string(out)
}
