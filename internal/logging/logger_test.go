package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-kit/log/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "logfmt", "warn")
	require.NoError(t, err)

	level.Info(logger).Log("msg", "hidden")
	level.Warn(logger).Log("msg", "shown", "file", "a.xlsx")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "file=a.xlsx")
	assert.Contains(t, out, "level=warn")
	assert.Contains(t, out, "ts=")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "json", "debug")
	require.NoError(t, err)

	level.Debug(logger).Log("msg", "hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestNewRejectsUnknownSettings(t *testing.T) {
	_, err := New(nil, "xml", "info")
	assert.Error(t, err)

	_, err = New(nil, "logfmt", "loud")
	assert.Error(t, err)
}

func TestTimeFunction(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "logfmt", "info")
	require.NoError(t, err)

	boom := errors.New("boom")
	assert.ErrorIs(t, TimeFunction(logger, "load", func() error { return boom }), boom)
	assert.Contains(t, buf.String(), "op=load")
	assert.Contains(t, buf.String(), "err=boom")
}
