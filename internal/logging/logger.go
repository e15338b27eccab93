// Package logging is a small facade over zerolog used by every deckgen
// package. Call InitLogger once at startup; the package-level helpers are
// safe for concurrent use.
package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu     sync.RWMutex
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger().Level(zerolog.InfoLevel)
)

// InitLogger configures the global logger. Human-readable output goes to
// stderr; when file is set, JSON lines are also written to a rotating file.
// An unknown level falls back to info.
func InitLogger(file string, maxSizeMB, maxBackups, maxAgeDays int, compress bool, level string) {
	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	if file != "" {
		rotating := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			Compress:   compress,
		}
		out = zerolog.MultiLevelWriter(out, rotating)
	}

	l := zerolog.New(out).With().Timestamp().Logger().Level(parseLevel(level))

	mu.Lock()
	logger = l
	mu.Unlock()
}

// SetLogLevel changes the level of the global logger.
func SetLogLevel(level string) {
	mu.Lock()
	logger = logger.Level(parseLevel(level))
	mu.Unlock()
}

// SetLoggerForTest replaces the global logger.
func SetLoggerForTest(l zerolog.Logger) {
	mu.Lock()
	logger = l
	mu.Unlock()
}

// Logger returns a copy of the global logger for callers that need the full
// zerolog API.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// Debug logs msg with alternating key/value pairs at debug level.
func Debug(msg string, kv ...interface{}) { emit(zerolog.DebugLevel, msg, kv) }

// Info logs at info level.
func Info(msg string, kv ...interface{}) { emit(zerolog.InfoLevel, msg, kv) }

// Warn logs at warn level.
func Warn(msg string, kv ...interface{}) { emit(zerolog.WarnLevel, msg, kv) }

// Error logs at error level.
func Error(msg string, kv ...interface{}) { emit(zerolog.ErrorLevel, msg, kv) }

func emit(level zerolog.Level, msg string, kv []interface{}) {
	mu.RLock()
	l := logger
	mu.RUnlock()

	ev := l.WithLevel(level)
	if ev == nil {
		return
	}
	if len(kv)%2 == 1 {
		kv = append(kv, "(MISSING)")
	}
	ev.Fields(kv).Msg(msg)
}
