// Package loader reads reflow configuration from files and the environment.
//
// Files are decoded as TOML or YAML depending on their extension. Decoding is
// done onto an existing value, so fields absent from the file keep whatever
// the caller set before (normally the defaults).
package loader

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the default file system (OS file system).
func DefaultFS() FileSystem {
	return OSFS{}
}

// Format identifies a configuration file syntax.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	default:
		return "toml"
	}
}

// DetectFormat picks a format from the file extension. Unknown extensions
// are treated as TOML.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Decoder decodes a configuration document onto v.
type Decoder interface {
	Decode(source string, data []byte, v any) error
}

// FileLoader decodes configuration files from a FileSystem.
type FileLoader struct {
	fs FileSystem
}

// NewFileLoader creates a loader over the OS file system.
func NewFileLoader() *FileLoader {
	return &FileLoader{fs: DefaultFS()}
}

// NewFileLoaderWithFS creates a loader with a custom file system.
func NewFileLoaderWithFS(fsys FileSystem) *FileLoader {
	return &FileLoader{fs: fsys}
}

// LoadInto decodes the file at path onto v. It reports false without error
// when the file does not exist.
func (l *FileLoader) LoadInto(path string, v any) (bool, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil // File doesn't exist, not an error
		}
		return false, &ReadError{Path: path, Err: err}
	}

	if err := decoderFor(DetectFormat(path)).Decode(path, data, v); err != nil {
		return false, err
	}
	return true, nil
}

func decoderFor(f Format) Decoder {
	if f == FormatYAML {
		return YAMLDecoder{}
	}
	return TOMLDecoder{}
}
