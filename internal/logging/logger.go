// Package logging builds the structured logger shared by every command.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	gokitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// New creates a logfmt (or JSON) logger with timestamp and caller keys,
// filtered to the given level ("debug", "info", "warn", "error").
func New(w io.Writer, format, lvl string) (gokitlog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	w = gokitlog.NewSyncWriter(w)

	var logger gokitlog.Logger
	switch strings.ToLower(format) {
	case "", "logfmt":
		logger = gokitlog.NewLogfmtLogger(w)
	case "json":
		logger = gokitlog.NewJSONLogger(w)
	default:
		return nil, fmt.Errorf("invalid log format: %s (must be logfmt or json)", format)
	}

	opt, err := levelOption(lvl)
	if err != nil {
		return nil, err
	}
	logger = level.NewFilter(logger, opt)
	logger = gokitlog.With(logger, "ts", gokitlog.DefaultTimestampUTC, "caller", gokitlog.DefaultCaller)

	return logger, nil
}

func levelOption(lvl string) (level.Option, error) {
	switch strings.ToLower(lvl) {
	case "debug":
		return level.AllowDebug(), nil
	case "", "info":
		return level.AllowInfo(), nil
	case "warn", "warning":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	default:
		return nil, fmt.Errorf("invalid log level: %s", lvl)
	}
}

// Nop returns a logger that discards everything.
func Nop() gokitlog.Logger {
	return gokitlog.NewNopLogger()
}

// TimeFunction runs fn and logs how long it took.
func TimeFunction(logger gokitlog.Logger, name string, fn func() error) error {
	startTime := time.Now()
	level.Debug(logger).Log("msg", "starting", "op", name)

	err := fn()

	elapsed := time.Since(startTime)
	if err != nil {
		level.Error(logger).Log("msg", "completed with error", "op", name, "err", err, "took", elapsed)
	} else {
		level.Info(logger).Log("msg", "completed", "op", name, "took", elapsed)
	}

	return err
}
