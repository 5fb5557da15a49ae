// Package validation checks description documents against their JSON Schema.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	goyaml "github.com/goccy/go-yaml"
	invopop "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/NotAdityaPawar/monkeypatch/function/dto"
)

const schemaURL = "document.schema.json"

// SchemaValidator implements DocumentValidator with a schema reflected from
// dto.Document.
type SchemaValidator struct {
	schema *jsonschema.Schema
}

// DocumentSchema returns the JSON Schema of dto.Document.
func DocumentSchema() ([]byte, error) {
	r := &invopop.Reflector{
		ExpandedStruct: true,
		Anonymous:      true,
	}
	s := r.Reflect(&dto.Document{})
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document schema: %w", err)
	}
	return b, nil
}

// NewDocumentValidator compiles the document schema.
func NewDocumentValidator() (DocumentValidator, error) {
	raw, err := DocumentSchema()
	if err != nil {
		return nil, err
	}

	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(schemaURL, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to load document schema: %w", err)
	}
	schema, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile document schema: %w", err)
	}
	return &SchemaValidator{schema: schema}, nil
}

// ValidateJSON checks a JSON document. A syntax error is returned as an
// error, not as a validation failure.
func (v *SchemaValidator) ValidateJSON(data []byte) (*ValidationResult, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return v.validate(doc)
}

// ValidateYAML converts a YAML document to JSON and checks it.
func (v *SchemaValidator) ValidateYAML(data []byte) (*ValidationResult, error) {
	converted, err := goyaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to convert YAML document: %w", err)
	}
	return v.ValidateJSON(converted)
}

func (v *SchemaValidator) validate(doc any) (*ValidationResult, error) {
	err := v.schema.Validate(doc)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	result := &ValidationResult{Valid: false}
	for _, e := range ve.BasicOutput().Errors {
		// The basic output includes the wrapping "doesn't validate" entries.
		if e.Error == "" || e.KeywordLocation == "" {
			continue
		}
		result.Errors = append(result.Errors, ValidationError{
			Path:    e.InstanceLocation,
			Message: e.Error,
		})
	}
	if len(result.Errors) == 0 {
		result.Errors = append(result.Errors, ValidationError{
			Path:    ve.InstanceLocation,
			Message: ve.Message,
		})
	}
	sort.SliceStable(result.Errors, func(i, j int) bool {
		return result.Errors[i].Path < result.Errors[j].Path
	})
	return result, nil
}
