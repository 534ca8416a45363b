package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// Config selects the output format and optional Sentry forwarding.
type Config struct {
	Output      io.Writer
	Level       string `yaml:"level"`
	Format      string `yaml:"format"` // json or text
	SentryDSN   string `yaml:"sentry_dsn"`
	Environment string `yaml:"environment"`
	Release     string `yaml:"release"`
}

// New builds a logger from cfg. Extractors run on every record, on both
// the local handler and Sentry.
//
// The returned flush waits for buffered Sentry events and is safe to call
// when Sentry is disabled.
func New(cfg Config, extractors ...Extractor) (*slog.Logger, func()) {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	level := ParseLevel(cfg.Level)

	var local slog.Handler
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "text") {
		local = slog.NewTextHandler(out, opts)
	} else {
		local = slog.NewJSONHandler(out, opts)
	}

	noop := func() {}
	if cfg.SentryDSN == "" {
		return slog.New(Decorate(local, extractors...)), noop
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
		EnableLogs:  true,
	}); err != nil {
		slog.New(local).Error("sentry init failed, logging locally only", slog.String("error", err.Error()))
		return slog.New(Decorate(local, extractors...)), noop
	}

	remote := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	flush := func() { sentry.Flush(2 * time.Second) }
	return slog.New(Decorate(Fanout(local, remote), extractors...)), flush
}

// ParseLevel maps debug, info, warn and error to slog levels.
// Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
