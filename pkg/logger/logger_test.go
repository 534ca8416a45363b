package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flightdesk/pkg/logger"
)

type ctxKey struct{}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	return rec
}

func TestNew_Extractors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, flush := logger.New(logger.Config{Output: &buf}, logger.FromContext(ctxKey{}, "request_id"), nil)
	defer flush()

	ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
	log.With(slog.String("component", "test")).InfoContext(ctx, "hello")

	rec := decode(t, &buf)
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "req-1", rec["request_id"])
	assert.Equal(t, "test", rec["component"])
}

func TestNew_SkipsEmptyValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, _ := logger.New(logger.Config{Output: &buf}, logger.FromContext(ctxKey{}, "request_id"))
	log.InfoContext(context.Background(), "hello")

	assert.NotContains(t, decode(t, &buf), "request_id")
}

func TestNew_LevelAndFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, _ := logger.New(logger.Config{Output: &buf, Level: "warn", Format: "text"})

	log.Info("dropped")
	assert.Empty(t, buf.String())

	log.Warn("kept")
	assert.Contains(t, buf.String(), "msg=kept")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, logger.ParseLevel(tt.in))
		})
	}
}

func TestFanout(t *testing.T) {
	t.Parallel()

	var debug, errs bytes.Buffer
	h := logger.Fanout(
		slog.NewJSONHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewJSONHandler(&errs, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	log := slog.New(h).WithGroup("g")

	log.Debug("d")
	assert.Contains(t, debug.String(), `"msg":"d"`)
	assert.Empty(t, errs.String())

	log.Error("e", slog.Int("n", 1))
	assert.Contains(t, errs.String(), `"g":{"n":1}`)
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	log := logger.Discard()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}
