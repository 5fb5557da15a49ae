package parser

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/NotAdityaPawar/monkeypatch/function/dto"
)

// YamlDescriptionParser implements DescriptionParser for YAML.
type YamlDescriptionParser struct{}

// NewYamlDescriptionParser creates a new YamlDescriptionParser.
func NewYamlDescriptionParser() DescriptionParser {
	return &YamlDescriptionParser{}
}

// Parse unmarshals YAML bytes into a Document.
func (p *YamlDescriptionParser) Parse(data []byte) (*dto.Document, error) {
	var doc dto.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML document: %w", err)
	}
	if err := CheckFormatVersion(doc.FormatVersion); err != nil {
		return nil, err
	}
	return &doc, nil
}
