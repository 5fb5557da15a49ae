package dto

import (
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/NotAdityaPawar/monkeypatch/function/entities"
)

// FormatVersion is the document format written by this package.
const FormatVersion = "1.0.0"

// Document is the envelope exchanged with generative backends and tools.
type Document struct {
	FormatVersion string                   `json:"format_version" yaml:"format_version" jsonschema:"required,minLength=1"`
	Descriptions  []FunctionDescriptionDTO `json:"descriptions" yaml:"descriptions" jsonschema:"required"`
}

// NewDocument wraps descriptions in a current-format document.
func NewDocument(descs ...*entities.FunctionDescription) *Document {
	doc := &Document{
		FormatVersion: FormatVersion,
		Descriptions:  make([]FunctionDescriptionDTO, 0, len(descs)),
	}
	for _, d := range descs {
		if d != nil {
			doc.Descriptions = append(doc.Descriptions, FromEntity(d))
		}
	}
	return doc
}

// Find returns the description with the given name.
func (d *Document) Find(name string) (*FunctionDescriptionDTO, bool) {
	for i := range d.Descriptions {
		if d.Descriptions[i].Name == name {
			return &d.Descriptions[i], true
		}
	}
	return nil, false
}

// EncodeJSON renders the document as indented JSON.
func EncodeJSON(doc *Document) ([]byte, error) {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode document as JSON: %w", err)
	}
	return append(b, '\n'), nil
}

// EncodeYAML renders the document as YAML.
func EncodeYAML(doc *Document) ([]byte, error) {
	b, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document as YAML: %w", err)
	}
	return b, nil
}
