package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ErrIncludeDepth indicates @include directives nested too deeply.
var ErrIncludeDepth = errors.New("loader: include depth exceeded")

// MaxIncludeDepth bounds nested @include directives.
const MaxIncludeDepth = 8

// TOMLLoader loads configuration from a TOML file.
type TOMLLoader struct {
	fs   FileSystem
	path string
}

// NewTOMLLoader creates a loader for path on the OS file system.
func NewTOMLLoader(path string) *TOMLLoader {
	return NewTOMLLoaderWithFS(DefaultFS(), path)
}

// NewTOMLLoaderWithFS creates a loader reading from fsys.
func NewTOMLLoaderWithFS(fsys FileSystem, path string) *TOMLLoader {
	return &TOMLLoader{fs: fsys, path: path}
}

// Load reads the configured path, following @include directives.
func (l *TOMLLoader) Load() (map[string]any, error) {
	return l.load(l.path, MaxIncludeDepth)
}

// LoadFromReader parses TOML from r. Includes are not followed.
func (l *TOMLLoader) LoadFromReader(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse("<reader>", data)
}

func (l *TOMLLoader) load(path string, depth int) (map[string]any, error) {
	if depth <= 0 {
		return nil, fmt.Errorf("%w at %s", ErrIncludeDepth, path)
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	config, err := parse(path, data)
	if err != nil {
		return nil, err
	}

	raw, ok := config["@include"]
	if !ok {
		return config, nil
	}
	delete(config, "@include")

	includes, err := includeList(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	// Included files have lower priority than the including file.
	base := filepath.Dir(path)
	merged := make(map[string]any)
	for _, inc := range includes {
		if !filepath.IsAbs(inc) {
			inc = filepath.Join(base, inc)
		}
		incConfig, err := l.load(inc, depth-1)
		if err != nil {
			return nil, fmt.Errorf("loading include %s: %w", inc, err)
		}
		merged = DeepMerge(merged, incConfig)
	}
	return DeepMerge(merged, config), nil
}

func includeList(v any) ([]string, error) {
	switch inc := v.(type) {
	case string:
		return []string{inc}, nil
	case []any:
		out := make([]string, 0, len(inc))
		for _, item := range inc {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("@include must be string or array of strings")
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("@include must be string or array of strings, got %T", v)
	}
}

func parse(source string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := toml.Unmarshal(data, &config); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, pe.Column = de.Position()
		}
		return nil, pe
	}
	return config, nil
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DeepMerge recursively merges src into dst and returns dst.
// Values in src override values in dst; nested tables are merged.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	for key, srcVal := range src {
		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = DeepMerge(dstMap, srcMap)
		} else {
			dst[key] = srcVal
		}
	}
	return dst
}
