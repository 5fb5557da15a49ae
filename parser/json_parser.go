package parser

import (
	"encoding/json"
	"fmt"

	"github.com/NotAdityaPawar/monkeypatch/function/dto"
)

// JSONDescriptionParser implements DescriptionParser for JSON.
type JSONDescriptionParser struct{}

// NewJSONDescriptionParser creates a new JSONDescriptionParser.
func NewJSONDescriptionParser() DescriptionParser {
	return &JSONDescriptionParser{}
}

// Parse unmarshals JSON bytes into a Document.
func (p *JSONDescriptionParser) Parse(data []byte) (*dto.Document, error) {
	var doc dto.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON document: %w", err)
	}
	if err := CheckFormatVersion(doc.FormatVersion); err != nil {
		return nil, err
	}
	return &doc, nil
}
