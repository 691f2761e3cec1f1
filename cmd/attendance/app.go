package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/ukaji3/attendance-go/internal/config"
	"github.com/ukaji3/attendance-go/internal/logging"
	"github.com/ukaji3/attendance-go/pkg/attendance"
	"github.com/ukaji3/attendance-go/pkg/attendance/loader"
	"github.com/ukaji3/attendance-go/pkg/attendance/manifest"
	"github.com/ukaji3/attendance-go/pkg/attendance/store"
)

// app holds what every command needs.
type app struct {
	cfg    *config.Config
	logger log.Logger
	svc    *attendance.Service
	store  *store.Store
}

func newApp(ctx context.Context) (*app, error) {
	cfg, logger, err := loadEnv()
	if err != nil {
		return nil, err
	}

	m := manifest.Default()
	if cfg.ManifestPath != "" {
		if m, err = manifest.LoadFile(cfg.ManifestPath); err != nil {
			return nil, err
		}
	}
	if cfg.BaseURL != "" {
		m.BaseURL = cfg.BaseURL
	}

	a := &app{cfg: cfg, logger: logger}

	var cache attendance.Cache
	if !noCache {
		a.store, err = store.Open(ctx, cfg.CacheDriver, cfg.CacheDSN)
		if err != nil {
			level.Warn(logger).Log("msg", "cache unavailable, continuing without it", "err", err)
		} else {
			cache = a.store
		}
	}

	l := loader.New(nil, loaderOptions(cfg), logger)

	a.svc = attendance.NewService(l, m.Sources(), cache, logger)
	return a, nil
}

// loadEnv reads the configuration and builds the logger, without touching
// the cache.
func loadEnv() (*config.Config, log.Logger, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, err
	}
	applyFlags(cfg)

	logger, err := logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func loaderOptions(cfg *config.Config) loader.Options {
	opts := loader.DefaultOptions()
	opts.Concurrency = cfg.Concurrency
	opts.FetchTimeout = cfg.FetchTimeout
	return opts
}

func applyFlags(cfg *config.Config) {
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if manifestPath != "" {
		cfg.ManifestPath = manifestPath
	}
	if cacheDriver != "" {
		cfg.CacheDriver = cacheDriver
	}
	if cacheDSN != "" {
		cfg.CacheDSN = cacheDSN
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
}

// ensureIndex installs the cached index, or loads one when there is none.
func (a *app) ensureIndex(ctx context.Context, refresh bool) error {
	if !refresh {
		found, err := a.svc.Warm(ctx)
		if err != nil {
			level.Warn(a.logger).Log("msg", "ignoring unreadable cache", "err", err)
		}
		if found {
			return nil
		}
	}
	return logging.TimeFunction(a.logger, "load", func() error {
		stats := a.svc.Reload(ctx)
		if stats.Parsed == 0 && stats.Total > 0 {
			return fmt.Errorf("no attendance files could be loaded (%d attempted)", stats.Total)
		}
		return nil
	})
}

func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
	}
}
