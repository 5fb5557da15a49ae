package schema

import (
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/NotAdityaPawar/monkeypatch/function/entities"
	"github.com/NotAdityaPawar/monkeypatch/function/values"
)

// InputKind is the schema kind of a function's arguments object.
func InputKind(name string) string { return name + ".input" }

// OutputKind is the schema kind of a function's return value.
func OutputKind(name string) string { return name + ".output" }

// RegisterDescription stores the contract schemas of desc, replacing any
// schemas previously stored under its name. Embeddable functions only get an
// input schema. Both schemas are rendered before the registry changes, so a
// failure leaves the stored schemas untouched.
func (r *Registry) RegisterDescription(desc *entities.FunctionDescription) error {
	if desc == nil {
		return fmt.Errorf("nil description")
	}

	input, err := r.InputSchema(desc)
	if err != nil {
		return err
	}
	inputStr, err := r.render(input)
	if err != nil {
		return fmt.Errorf("schema %s: %w", InputKind(desc.Name), err)
	}
	rendered := map[string]string{InputKind(desc.Name): inputStr}

	if !desc.IsEmbeddable() && desc.OutputTypeHint != nil {
		output, err := r.OutputSchema(desc)
		if err != nil {
			return err
		}
		outputStr, err := r.render(output)
		if err != nil {
			return fmt.Errorf("schema %s: %w", OutputKind(desc.Name), err)
		}
		rendered[OutputKind(desc.Name)] = outputStr
	}

	return r.replaceContracts(desc.Name, rendered)
}

// InputSchema builds the object schema of desc's annotated parameters.
// Every annotated parameter is required.
func (r *Registry) InputSchema(desc *entities.FunctionDescription) (*jsonschema.Schema, error) {
	defs := jsonschema.Definitions{}
	root := &jsonschema.Schema{
		Version:              jsonschema.Version,
		Title:                desc.Name,
		Description:          desc.Docstring,
		Type:                 "object",
		Properties:           orderedmap.New[string, *jsonschema.Schema](),
		AdditionalProperties: jsonschema.FalseSchema,
	}

	if desc.InputTypeHints != nil {
		for pair := desc.InputTypeHints.Oldest(); pair != nil; pair = pair.Next() {
			s, err := r.hintSchema(pair.Value, defs)
			if err != nil {
				return nil, fmt.Errorf("%s: parameter %s: %w", desc.Name, pair.Key, err)
			}
			root.Properties.Set(pair.Key, s)
			root.Required = append(root.Required, pair.Key)
		}
	}

	if len(defs) > 0 {
		root.Definitions = defs
	}
	return root, nil
}

// OutputSchema builds the schema of desc's return value.
func (r *Registry) OutputSchema(desc *entities.FunctionDescription) (*jsonschema.Schema, error) {
	if desc.OutputTypeHint == nil {
		return nil, fmt.Errorf("%s: no return type", desc.Name)
	}

	defs := jsonschema.Definitions{}
	s, err := r.hintSchema(*desc.OutputTypeHint, defs)
	if err != nil {
		return nil, fmt.Errorf("%s: return: %w", desc.Name, err)
	}

	root := *s
	root.Version = jsonschema.Version
	if root.Title == "" {
		root.Title = desc.Name
	}
	if len(defs) > 0 {
		root.Definitions = defs
	}
	return &root, nil
}

// hintSchema renders a hint, collecting named type definitions into defs.
func (r *Registry) hintSchema(hint values.TypeHint, defs jsonschema.Definitions) (*jsonschema.Schema, error) {
	switch hint.Kind() {
	case values.KindLiteral:
		return &jsonschema.Schema{Enum: hint.Literals()}, nil
	case values.KindNull:
		return &jsonschema.Schema{Type: "null"}, nil
	case values.KindUnion:
		s := &jsonschema.Schema{}
		for _, arg := range hint.Args() {
			sub, err := r.hintSchema(arg, defs)
			if err != nil {
				return nil, err
			}
			s.AnyOf = append(s.AnyOf, sub)
		}
		return s, nil
	case values.KindGeneric:
		origin, _ := hint.Origin()
		return r.hintSchema(origin, defs)
	case values.KindType:
		t := hint.Type()
		switch t.Kind() {
		case reflect.Interface:
			return &jsonschema.Schema{}, nil
		case reflect.Chan:
			items, err := r.hintSchema(values.FromReflect(t.Elem()), defs)
			if err != nil {
				return nil, err
			}
			return &jsonschema.Schema{Type: "array", Items: items}, nil
		}
		s := r.contracts.ReflectFromType(t)
		for name, def := range s.Definitions {
			defs[name] = def
		}
		s.Definitions = nil
		s.Version = ""
		s.ID = ""
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported type hint kind %s", hint.Kind())
	}
}

// mapKind covers kinds the reflector cannot describe. Channels nested in
// structs become arrays of their element; functions, complex numbers and raw
// pointers accept any value.
func mapKind(t reflect.Type) *jsonschema.Schema {
	switch t.Kind() {
	case reflect.Chan:
		return &jsonschema.Schema{Type: "array", Items: elementSchema(t.Elem())}
	case reflect.Func, reflect.Complex64, reflect.Complex128, reflect.UnsafePointer, reflect.Uintptr:
		return &jsonschema.Schema{}
	}
	return nil
}

// elementSchema is the inline schema of a nested channel's element. Named
// composite elements are left open since they cannot reach the root $defs.
func elementSchema(t reflect.Type) *jsonschema.Schema {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if s := mapKind(t); s != nil {
		return s
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &jsonschema.Schema{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return &jsonschema.Schema{Type: "number"}
	case reflect.Bool:
		return &jsonschema.Schema{Type: "boolean"}
	case reflect.String:
		return &jsonschema.Schema{Type: "string"}
	case reflect.Slice, reflect.Array:
		return &jsonschema.Schema{Type: "array", Items: elementSchema(t.Elem())}
	default:
		return &jsonschema.Schema{}
	}
}
