package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/aleister1102/kkupeople/internal/config"
)

// New creates the application logger. Console output always goes to stderr
// because stdout carries the JSON result; a log file is added when
// configured, rotated with lumberjack.
func New(cfg config.LogConfig) (zerolog.Logger, error) {
	level := parseLevel(cfg.LogLevel)

	writers := []io.Writer{consoleWriter(cfg.LogFormat)}
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
			return zerolog.Logger{}, err
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.MaxLogSizeMB,
			MaxBackups: cfg.MaxLogBackups,
			Compress:   true,
		})
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()

	zerolog.SetGlobalLevel(level)
	return logger, nil
}

func consoleWriter(format string) io.Writer {
	switch strings.ToLower(format) {
	case "json":
		return os.Stderr
	case "text":
		return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339, NoColor: true}
	default:
		return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}
