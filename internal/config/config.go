package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dshills/reflow/internal/config/loader"
	"github.com/dshills/reflow/internal/logging"
	"github.com/dshills/reflow/internal/renderer/measure"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "REFLOW_"

// Config holds every reflow setting.
type Config struct {
	Editor EditorConfig `toml:"editor" yaml:"editor"`
	Panel  PanelConfig  `toml:"panel" yaml:"panel"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// EditorConfig controls wrapping and measurement.
type EditorConfig struct {
	// WrapWidth is the target width of physical lines. Zero wraps at the
	// panel width.
	WrapWidth int `toml:"wrapWidth" yaml:"wrapWidth"`

	// FontSize is the nominal size handed to the measurer.
	FontSize int `toml:"fontSize" yaml:"fontSize"`

	// Measurer names the width measurer ("cells", "graphemes", "font", "monospace").
	Measurer string `toml:"measurer" yaml:"measurer"`

	// FontPath is a TrueType/OpenType file for the "font" measurer.
	FontPath string `toml:"fontPath" yaml:"fontPath"`

	// EastAsianWidth counts ambiguous-width runes as two cells.
	EastAsianWidth bool `toml:"eastAsianWidth" yaml:"eastAsianWidth"`

	// MeasureCacheSize bounds the memoized measurements. Zero disables the cache.
	MeasureCacheSize int `toml:"measureCacheSize" yaml:"measureCacheSize"`
}

// PanelConfig controls the initial panel.
type PanelConfig struct {
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
	Path   string `toml:"path" yaml:"path"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level      string `toml:"level" yaml:"level"`
	Format     string `toml:"format" yaml:"format"`
	File       string `toml:"file" yaml:"file"`
	MaxSizeMB  int    `toml:"maxSizeMb" yaml:"maxSizeMb"`
	MaxBackups int    `toml:"maxBackups" yaml:"maxBackups"`
	MaxAgeDays int    `toml:"maxAgeDays" yaml:"maxAgeDays"`
}

// Default returns the built-in configuration.
func Default() *Config {
	lc := logging.DefaultConfig()
	return &Config{
		Editor: EditorConfig{
			WrapWidth:        0,
			FontSize:         75,
			Measurer:         measure.NameCells,
			MeasureCacheSize: 4096,
		},
		Panel: PanelConfig{
			Width:  500,
			Height: 500,
			Path:   "untitled.txt",
		},
		Log: LogConfig{
			Level:      strings.ToLower(lc.Level.String()),
			Format:     lc.Format,
			MaxSizeMB:  lc.MaxSizeMB,
			MaxBackups: lc.MaxBackups,
			MaxAgeDays: lc.MaxAgeDays,
		},
	}
}

// DefaultPath returns the user configuration file path.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "reflow", "config.toml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "reflow", "config.toml")
}

// Load resolves defaults, the file at path and the environment.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	return LoadWithFS(loader.DefaultFS(), path)
}

// LoadWithFS is Load over a custom file system.
func LoadWithFS(fsys loader.FileSystem, path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := loader.NewFileLoaderWithFS(fsys).LoadInto(path, cfg); err != nil {
			return nil, err
		}
	}

	env := loader.NewEnvLoader(EnvPrefix)
	env.AddMapping(EnvPrefix+"MEASURER", "editor.measurer")
	if err := loader.Overlay(env.Load(), cfg); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var measurerNames = []string{
	measure.NameCells,
	measure.NameGraphemes,
	measure.NameFont,
	measure.NameMonospace,
}

var levelNames = []string{"debug", "info", "warn", "warning", "error"}

// Validate reports every invalid setting, joined.
func (c *Config) Validate() error {
	var errs []error
	add := func(path, msg string, value any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value})
	}

	if c.Editor.WrapWidth < 0 {
		add("editor.wrapWidth", "must not be negative", c.Editor.WrapWidth)
	}
	if c.Editor.FontSize <= 0 {
		add("editor.fontSize", "must be positive", c.Editor.FontSize)
	}
	if !slices.Contains(measurerNames, c.Editor.Measurer) {
		add("editor.measurer", "unknown measurer", c.Editor.Measurer)
	}
	if c.Editor.MeasureCacheSize < 0 {
		add("editor.measureCacheSize", "must not be negative", c.Editor.MeasureCacheSize)
	}
	if c.Panel.Width <= 0 {
		add("panel.width", "must be positive", c.Panel.Width)
	}
	if c.Panel.Height <= 0 {
		add("panel.height", "must be positive", c.Panel.Height)
	}
	if !slices.Contains(levelNames, strings.ToLower(c.Log.Level)) {
		add("log.level", "unknown log level", c.Log.Level)
	}
	if c.Log.Format != logging.FormatText && c.Log.Format != logging.FormatJSON {
		add("log.format", "must be text or json", c.Log.Format)
	}

	return errors.Join(errs...)
}

// MeasureOptions returns the options for measure.New.
func (c *Config) MeasureOptions() measure.Options {
	return measure.Options{
		FontPath:  c.Editor.FontPath,
		EastAsian: c.Editor.EastAsianWidth,
	}
}

// Logging returns the logger configuration.
func (c *Config) Logging() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = logging.ParseLogLevel(strings.ToLower(c.Log.Level))
	lc.Format = c.Log.Format
	lc.File = c.Log.File
	lc.MaxSizeMB = c.Log.MaxSizeMB
	lc.MaxBackups = c.Log.MaxBackups
	lc.MaxAgeDays = c.Log.MaxAgeDays
	return lc
}
