// Package config loads deckgen settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	BaseDir   string `yaml:"base_dir"`
	Output    string `yaml:"output"`
	ImagesDir string `yaml:"images_dir"`
	Logo      string `yaml:"logo"`
	// BuildTime stamps the document properties (RFC 3339). Empty means
	// SOURCE_DATE_EPOCH, then DefaultBuildTime.
	BuildTime string `yaml:"build_time"`

	Logger LoggerConfig `yaml:"logger"`
	Render RenderConfig `yaml:"render"`
	Server ServerConfig `yaml:"server"`
	Watch  WatchConfig  `yaml:"watch"`
}

type LoggerConfig struct {
	File       string `yaml:"file"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

type RenderConfig struct {
	OutDir      string   `yaml:"out_dir"`
	Width       int      `yaml:"width"`
	Concurrency int      `yaml:"concurrency"`
	FontDirs    []string `yaml:"font_dirs"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// DefaultBuildTime is used when neither build_time nor SOURCE_DATE_EPOCH is set.
var DefaultBuildTime = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		BaseDir:   ".",
		Output:    "presentation.pptx",
		ImagesDir: "slide-images",
		Logo:      "MarjUnterbergNursHealthStud_Logo_Vert_White.png",
		Logger: LoggerConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Render: RenderConfig{
			OutDir:      "previews",
			Width:       1920,
			Concurrency: 4,
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: ":8080",
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
	}
}

// Load reads the file named by CONFIG_PATH, or returns defaults when unset.
func Load() (Config, error) {
	return LoadFrom(os.Getenv("CONFIG_PATH"))
}

// LoadFrom reads path over the defaults. An empty path or a missing file
// yields the defaults; a malformed or invalid file is an error.
func LoadFrom(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Output) == "":
		return errors.New("output must not be empty")
	case c.Render.Width <= 0:
		return fmt.Errorf("render.width must be positive, got %d", c.Render.Width)
	case c.Render.Concurrency <= 0:
		return fmt.Errorf("render.concurrency must be positive, got %d", c.Render.Concurrency)
	case c.Watch.Debounce < 0:
		return fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce)
	case c.Server.Port == "":
		return errors.New("server.port must not be empty")
	}
	if c.BuildTime != "" {
		if _, err := time.Parse(time.RFC3339, c.BuildTime); err != nil {
			return fmt.Errorf("build_time: %w", err)
		}
	}
	return nil
}

// Resolve returns p joined to the base directory unless it is absolute.
func (c Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

// OutputPath is the resolved path of the generated deck.
func (c Config) OutputPath() string { return c.Resolve(c.Output) }

// ImagesPath is the resolved slide image directory.
func (c Config) ImagesPath() string { return c.Resolve(c.ImagesDir) }

// LogoPath is the resolved logo file.
func (c Config) LogoPath() string { return c.Resolve(c.Logo) }

// ResolveBuildTime returns the timestamp written into the document
// properties: build_time, then SOURCE_DATE_EPOCH, then DefaultBuildTime.
func (c Config) ResolveBuildTime() (time.Time, error) {
	if c.BuildTime != "" {
		t, err := time.Parse(time.RFC3339, c.BuildTime)
		if err != nil {
			return time.Time{}, fmt.Errorf("build_time: %w", err)
		}
		return t.UTC(), nil
	}
	if v := os.Getenv("SOURCE_DATE_EPOCH"); v != "" {
		secs, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("SOURCE_DATE_EPOCH: %w", err)
		}
		return time.Unix(secs, 0).UTC(), nil
	}
	return DefaultBuildTime, nil
}
