package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Format is a document encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Document is a parsed layout.
type Document struct {
	// Source names where the document came from.
	Source string
	Format Format
	Root   map[string]any
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	doc, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// Parse decodes a document.
func Parse(data []byte, format Format) (*Document, error) {
	var root map[string]any
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("layout: toml: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("layout: yaml: %w", err)
		}
	case FormatJSON:
		if !gjson.ValidBytes(data) {
			return nil, fmt.Errorf("layout: json: invalid document")
		}
		m, ok := gjson.ParseBytes(data).Value().(map[string]any)
		if !ok {
			return nil, fmt.Errorf("layout: json: %w", ErrNotNode)
		}
		root = m
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if root == nil {
		return nil, ErrNotNode
	}
	return &Document{Source: "<" + string(format) + ">", Format: format, Root: root}, nil
}
