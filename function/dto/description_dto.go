// Package dto holds the wire representation of function descriptions.
package dto

import (
	"github.com/NotAdityaPawar/monkeypatch/function/entities"
	"github.com/NotAdityaPawar/monkeypatch/function/values"
)

// InputDTO is one annotated parameter, in declaration order.
type InputDTO struct {
	Name       string             `json:"name" yaml:"name" jsonschema:"required,minLength=1"`
	TypeHint   string             `json:"type_hint" yaml:"type_hint" jsonschema:"required"`
	Definition *values.Definition `json:"definition,omitempty" yaml:"definition,omitempty"`
}

// FunctionDescriptionDTO is a data transfer object for a function
// description. Type hints travel as their canonical names.
type FunctionDescriptionDTO struct {
	Name                  string              `json:"name" yaml:"name" jsonschema:"required,minLength=1"`
	Docstring             string              `json:"docstring" yaml:"docstring"`
	Type                  values.FunctionType `json:"type" yaml:"type" jsonschema:"required,enum=SYMBOLIC,enum=EMBEDDABLE"`
	Inputs                []InputDTO          `json:"inputs" yaml:"inputs"`
	OutputTypeHint        string              `json:"output_type_hint,omitempty" yaml:"output_type_hint,omitempty"`
	OutputClassDefinition *values.Definition  `json:"output_class_definition,omitempty" yaml:"output_class_definition,omitempty"`
}

// FromEntity converts a description to its wire form.
func FromEntity(desc *entities.FunctionDescription) FunctionDescriptionDTO {
	out := FunctionDescriptionDTO{
		Name:      desc.Name,
		Docstring: desc.Docstring,
		Type:      desc.Type,
		Inputs:    []InputDTO{},
	}

	if desc.InputTypeHints != nil {
		for pair := desc.InputTypeHints.Oldest(); pair != nil; pair = pair.Next() {
			in := InputDTO{Name: pair.Key, TypeHint: pair.Value.String()}
			if def, ok := desc.InputClassDefinition(pair.Key); ok {
				in.Definition = &def
			}
			out.Inputs = append(out.Inputs, in)
		}
	}

	if desc.OutputTypeHint != nil {
		out.OutputTypeHint = desc.OutputTypeHint.String()
	}
	if desc.OutputClassDefinition != nil {
		def := *desc.OutputClassDefinition
		out.OutputClassDefinition = &def
	}
	return out
}

// InputNames lists parameter names in declaration order.
func (d *FunctionDescriptionDTO) InputNames() []string {
	names := make([]string, len(d.Inputs))
	for i, in := range d.Inputs {
		names[i] = in.Name
	}
	return names
}

// Input returns the named parameter.
func (d *FunctionDescriptionDTO) Input(name string) (InputDTO, bool) {
	for _, in := range d.Inputs {
		if in.Name == name {
			return in, true
		}
	}
	return InputDTO{}, false
}
