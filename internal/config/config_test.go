package config

import (
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/dshills/reflow/internal/logging"
)

type memFS struct {
	files map[string][]byte
}

func newMemFS() *memFS {
	return &memFS{files: make(map[string][]byte)}
}

func (m *memFS) add(path, content string) {
	m.files[path] = []byte(content)
}

func (m *memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *memFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return fileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type fileInfo struct{ name string }

func (f fileInfo) Name() string       { return f.name }
func (f fileInfo) Size() int64        { return 0 }
func (f fileInfo) Mode() fs.FileMode  { return 0644 }
func (f fileInfo) ModTime() time.Time { return time.Time{} }
func (f fileInfo) IsDir() bool        { return false }
func (f fileInfo) Sys() any           { return nil }

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Editor.FontSize != 75 {
		t.Errorf("FontSize = %d, want 75", cfg.Editor.FontSize)
	}
	if cfg.Editor.WrapWidth != 0 {
		t.Errorf("WrapWidth = %d, want 0", cfg.Editor.WrapWidth)
	}
	if cfg.Panel.Width != 500 || cfg.Panel.Height != 500 {
		t.Errorf("panel = %dx%d, want 500x500", cfg.Panel.Width, cfg.Panel.Height)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
}

func TestLoadWithFS_TOML(t *testing.T) {
	memfs := newMemFS()
	memfs.add("/reflow.toml", `
[editor]
wrapWidth = 40
measurer = "graphemes"

[log]
level = "debug"
format = "json"
`)

	cfg, err := LoadWithFS(memfs, "/reflow.toml")
	if err != nil {
		t.Fatalf("LoadWithFS failed: %v", err)
	}
	if cfg.Editor.WrapWidth != 40 {
		t.Errorf("WrapWidth = %d, want 40", cfg.Editor.WrapWidth)
	}
	if cfg.Editor.Measurer != "graphemes" {
		t.Errorf("Measurer = %q, want graphemes", cfg.Editor.Measurer)
	}
	if cfg.Editor.FontSize != 75 {
		t.Errorf("FontSize = %d, want default 75", cfg.Editor.FontSize)
	}
	if lc := cfg.Logging(); lc.Level != logging.LogLevelDebug || lc.Format != logging.FormatJSON {
		t.Errorf("Logging() = %v/%s, want DEBUG/json", lc.Level, lc.Format)
	}
}

func TestLoadWithFS_YAML(t *testing.T) {
	memfs := newMemFS()
	memfs.add("/reflow.yml", "panel:\n  width: 120\n  height: 40\n")

	cfg, err := LoadWithFS(memfs, "/reflow.yml")
	if err != nil {
		t.Fatalf("LoadWithFS failed: %v", err)
	}
	if cfg.Panel.Width != 120 || cfg.Panel.Height != 40 {
		t.Errorf("panel = %dx%d, want 120x40", cfg.Panel.Width, cfg.Panel.Height)
	}
}

func TestLoadWithFS_MissingFile(t *testing.T) {
	cfg, err := LoadWithFS(newMemFS(), "/absent.toml")
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if cfg.Editor.Measurer != "cells" {
		t.Errorf("Measurer = %q, want cells", cfg.Editor.Measurer)
	}
}

func TestLoadWithFS_Env(t *testing.T) {
	t.Setenv("REFLOW_EDITOR_WRAP_WIDTH", "64")
	t.Setenv("REFLOW_MEASURER", "monospace")

	memfs := newMemFS()
	memfs.add("/reflow.toml", "[editor]\nwrapWidth = 10\n")

	cfg, err := LoadWithFS(memfs, "/reflow.toml")
	if err != nil {
		t.Fatalf("LoadWithFS failed: %v", err)
	}
	if cfg.Editor.WrapWidth != 64 {
		t.Errorf("WrapWidth = %d, want env override 64", cfg.Editor.WrapWidth)
	}
	if cfg.Editor.Measurer != "monospace" {
		t.Errorf("Measurer = %q, want monospace", cfg.Editor.Measurer)
	}
}

func TestLoadWithFS_Invalid(t *testing.T) {
	memfs := newMemFS()
	memfs.add("/reflow.toml", "[editor]\nmeasurer = \"braille\"\nfontSize = 0\n")

	_, err := LoadWithFS(memfs, "/reflow.toml")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"negative wrap", func(c *Config) { c.Editor.WrapWidth = -1 }, "editor.wrapWidth"},
		{"zero font size", func(c *Config) { c.Editor.FontSize = 0 }, "editor.fontSize"},
		{"unknown measurer", func(c *Config) { c.Editor.Measurer = "x" }, "editor.measurer"},
		{"negative cache", func(c *Config) { c.Editor.MeasureCacheSize = -5 }, "editor.measureCacheSize"},
		{"zero width", func(c *Config) { c.Panel.Width = 0 }, "panel.width"},
		{"zero height", func(c *Config) { c.Panel.Height = 0 }, "panel.height"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Errorf("Path = %q, want %q", verr.Path, tt.path)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Error("expected errors.Is(err, ErrInvalidConfig)")
			}
		})
	}
}

func TestValidate_UppercaseLevel(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "WARN"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
	if got := cfg.Logging().Level; got != logging.LogLevelWarn {
		t.Errorf("Logging().Level = %v, want WARN", got)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got, want := DefaultPath(), "/xdg/reflow/config.toml"; got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}
