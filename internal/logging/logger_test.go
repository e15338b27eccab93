package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestLogger configures a logger with a custom writer for tests
func setupTestLogger(output *bytes.Buffer, level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	SetLoggerForTest(zerolog.New(output).With().Timestamp().Logger().Level(lvl))
}

func TestInfoLogging(t *testing.T) {
	var buf bytes.Buffer
	setupTestLogger(&buf, "info")

	Info("deck saved", "slides", 17, "partial", false)

	out := buf.String()
	assert.Contains(t, out, "deck saved")
	assert.Contains(t, out, `"slides":17`)
	assert.Contains(t, out, `"partial":false`)
	assert.Contains(t, out, `"level":"info"`)
}

func TestDebugHiddenAtInfo(t *testing.T) {
	var buf bytes.Buffer
	setupTestLogger(&buf, "info")

	Debug("asset missing", "path", "slide-images/s2-hook.png")

	assert.Empty(t, buf.String())
}

func TestDebugVisibleAtDebug(t *testing.T) {
	var buf bytes.Buffer
	setupTestLogger(&buf, "debug")

	Debug("asset missing", "path", "slide-images/s2-hook.png")

	assert.Contains(t, buf.String(), `"path":"slide-images/s2-hook.png"`)
}

func TestErrorValues(t *testing.T) {
	var buf bytes.Buffer
	setupTestLogger(&buf, "error")

	Warn("not shown")
	Error("write failed", "error", errors.New("disk full"))

	out := buf.String()
	assert.NotContains(t, out, "not shown")
	assert.Contains(t, out, `"error":"disk full"`)
}

func TestOddKeyValues(t *testing.T) {
	var buf bytes.Buffer
	setupTestLogger(&buf, "info")

	Info("odd", "dangling")

	assert.Contains(t, buf.String(), `"dangling":"(MISSING)"`)
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	setupTestLogger(&buf, "warn")

	Info("hidden")
	SetLogLevel("info")
	Info("should be visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "should be visible")
}

func TestInitLoggerWritesFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "deckgen.log")
	InitLogger(logFile, 1, 1, 1, false, "invalid")
	SetLogLevel("invalid")

	Info("hello", "k", "v")
	Debug("dropped")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"k":"v"`)
	assert.NotContains(t, string(data), "dropped")
	assert.Equal(t, zerolog.InfoLevel, Logger().GetLevel())
}
