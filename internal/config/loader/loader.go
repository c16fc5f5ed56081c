// Package loader reads actkit configuration sources into plain maps.
//
// File loaders return nil, nil when their file does not exist so that a
// missing actkit.toml falls back to defaults.
package loader

import (
	"io"
	"io/fs"
	"os"
)

// Loader is implemented by every configuration source.
type Loader interface {
	// Load returns the configuration of the source, or nil, nil if the
	// source does not exist.
	Load() (map[string]any, error)
}

// ReaderLoader is implemented by loaders that can parse a stream.
type ReaderLoader interface {
	LoadFromReader(r io.Reader) (map[string]any, error)
}

// FileSystem is the part of a file system the loaders need.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	Stat(path string) (fs.FileInfo, error)
}

// OSFS reads from the operating system.
type OSFS struct{}

// ReadFile implements FileSystem.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat implements FileSystem.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the OS file system.
func DefaultFS() FileSystem {
	return OSFS{}
}
