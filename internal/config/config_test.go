package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "presentation.pptx", cfg.Output)
	assert.Equal(t, "slide-images", cfg.ImagesDir)
	assert.Equal(t, 1920, cfg.Render.Width)
	assert.Equal(t, 500*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, filepath.Join(".", "presentation.pptx"), cfg.OutputPath())
}

func TestLoadFrom_EmptyPathAndMissingFile(t *testing.T) {
	cfg, err := LoadFrom("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFrom_Valid(t *testing.T) {
	p := writeConfig(t, `base_dir: "/srv/deck"
output: "out/talk.pptx"
build_time: "2026-03-14T09:00:00Z"
logger:
  level: debug
render:
  width: 1280
  concurrency: 2
watch:
  debounce: 2s
`)
	cfg, err := LoadFrom(p)
	require.NoError(t, err)

	assert.Equal(t, "/srv/deck", cfg.BaseDir)
	assert.Equal(t, filepath.Join("/srv/deck", "out/talk.pptx"), cfg.OutputPath())
	assert.Equal(t, filepath.Join("/srv/deck", "slide-images"), cfg.ImagesPath())
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, 10, cfg.Logger.MaxSizeMB, "unset keys keep defaults")
	assert.Equal(t, 1280, cfg.Render.Width)
	assert.Equal(t, 2*time.Second, cfg.Watch.Debounce)

	ts, err := cfg.ResolveBuildTime()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC), ts)
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yml  string
	}{
		{name: "malformed yaml", yml: "output: [\n"},
		{name: "empty output", yml: "output: \"\"\n"},
		{name: "zero width", yml: "render:\n  width: 0\n"},
		{name: "negative concurrency", yml: "render:\n  concurrency: -1\n"},
		{name: "negative debounce", yml: "watch:\n  debounce: -1s\n"},
		{name: "bad build time", yml: "build_time: yesterday\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFrom(writeConfig(t, tc.yml))
			assert.Error(t, err)
		})
	}
}

func TestLoad_UsesConfigPathEnv(t *testing.T) {
	p := writeConfig(t, "output: env.pptx\n")
	t.Setenv("CONFIG_PATH", p)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "env.pptx", cfg.Output)
}

func TestResolve(t *testing.T) {
	cfg := Default()
	cfg.BaseDir = "/base"
	assert.Equal(t, "/abs/logo.png", cfg.Resolve("/abs/logo.png"))
	assert.Equal(t, filepath.Join("/base", "logo.png"), cfg.Resolve("logo.png"))
	assert.Equal(t, "", cfg.Resolve(""))
}

func TestResolveBuildTime(t *testing.T) {
	t.Run("source date epoch", func(t *testing.T) {
		t.Setenv("SOURCE_DATE_EPOCH", "1767225600")
		ts, err := Default().ResolveBuildTime()
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), ts)
	})
	t.Run("invalid epoch", func(t *testing.T) {
		t.Setenv("SOURCE_DATE_EPOCH", "soon")
		_, err := Default().ResolveBuildTime()
		assert.Error(t, err)
	})
	t.Run("fallback", func(t *testing.T) {
		t.Setenv("SOURCE_DATE_EPOCH", "")
		ts, err := Default().ResolveBuildTime()
		require.NoError(t, err)
		assert.Equal(t, DefaultBuildTime, ts)
	})
}
