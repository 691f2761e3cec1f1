package attendance

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/ukaji3/attendance-go/pkg/attendance/loader"
	"github.com/ukaji3/attendance-go/pkg/attendance/models"
	"github.com/ukaji3/attendance-go/pkg/attendance/store"
)

// Cache persists the latest index between runs.
type Cache interface {
	Save(ctx context.Context, idx *models.Index) error
	Load(ctx context.Context) (*models.Index, error)
}

// Service owns the current index. A reload builds a fresh index and swaps
// it in whole; readers never see a partially merged one.
type Service struct {
	loader  *loader.Loader
	sources []models.Source
	cache   Cache
	logger  log.Logger
	current atomic.Pointer[models.Index]
}

// NewService creates a Service. cache may be nil.
func NewService(l *loader.Loader, sources []models.Source, cache Cache, logger log.Logger) *Service {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Service{
		loader:  l,
		sources: sources,
		cache:   cache,
		logger:  log.With(logger, "component", "service"),
	}
}

// Index returns the current index, which may be nil before the first load.
func (s *Service) Index() *models.Index {
	return s.current.Load()
}

// Sources returns the configured sources.
func (s *Service) Sources() []models.Source {
	return s.sources
}

// Warm installs the cached index, if any. It reports whether one was found.
// An empty cached index counts as a miss.
func (s *Service) Warm(ctx context.Context) (bool, error) {
	if s.cache == nil {
		return false, nil
	}
	idx, err := s.cache.Load(ctx)
	if errors.Is(err, store.ErrCacheMiss) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if idx.Empty() {
		level.Warn(s.logger).Log("msg", "ignoring empty cached index")
		return false, nil
	}
	s.current.Store(idx)
	level.Info(s.logger).Log("msg", "loaded cached index", "courses", idx.Len())
	return true, nil
}

// Reload runs a load cycle, publishes the new index and writes it to the
// cache. Cache failures are logged and do not fail the reload.
// When no file could be parsed the current index and the cache are left as
// they are.
func (s *Service) Reload(ctx context.Context) loader.Stats {
	idx, stats := s.loader.Load(ctx, s.sources)
	if stats.Parsed == 0 && stats.Total > 0 {
		level.Warn(s.logger).Log("msg", "reload produced no data, keeping previous index", "files", stats.Total)
		s.current.CompareAndSwap(nil, idx)
		return stats
	}
	s.current.Store(idx)

	if s.cache != nil {
		if err := s.cache.Save(ctx, idx); err != nil {
			level.Error(s.logger).Log("msg", "failed to save cache", "err", err)
		}
	}
	return stats
}

// Check looks a roll number up in the current index.
func (s *Service) Check(rollNumber string) (*models.Report, error) {
	return Check(s.Index(), rollNumber)
}
