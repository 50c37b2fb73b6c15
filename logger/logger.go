// Package logger provides a thin wrapper around zerolog.Logger configured
// from the application's LoggingConfig. The Logger type embeds
// zerolog.Logger, so the full zerolog API is available directly.
package logger

import (
	"context"
	"io"
	"os"

	"github.com/eduardocodes/bitcoin-influencer/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

// New constructs a JSON logger per the logging configuration. File
// output rotates via lumberjack using the configured size/age limits.
// The returned logger is also installed as zerolog's global logger so
// package-level logging and context extraction share the same sink.
func New(cfg config.LoggingConfig) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var out io.Writer
	switch cfg.Output {
	case "file":
		out = rotatingWriter(cfg)
	case "both":
		out = zerolog.MultiLevelWriter(os.Stdout, rotatingWriter(cfg))
	default:
		out = os.Stdout
	}

	l := zerolog.New(out).With().
		Str("service", "bitcoin-influencer").
		Timestamp().
		Logger()
	log.Logger = l

	return &Logger{l}
}

func rotatingWriter(cfg config.LoggingConfig) io.Writer {
	return &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
}

// Nop returns a *Logger that discards all log output. Intended for tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// WithContext attaches the logger to ctx for downstream extraction.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.Logger.WithContext(ctx)
}
