package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/NotAdityaPawar/monkeypatch/function/dto"
)

// ForFile selects a parser by file extension.
func ForFile(path string) (DescriptionParser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return NewJSONDescriptionParser(), nil
	case ".yaml", ".yml":
		return NewYamlDescriptionParser(), nil
	default:
		return nil, fmt.Errorf("%w: unknown file extension %q", ErrUnsupportedFormat, ext)
	}
}

// ParseFile reads and parses the document at path.
func ParseFile(path string) (*dto.Document, error) {
	p, err := ForFile(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return p.Parse(data)
}
