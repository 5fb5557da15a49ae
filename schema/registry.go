// Package schema implements a contract registry holding the JSON schemas of
// registered functions.
package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
)

// Registry implements ContractRegistry using in-memory storage.
type Registry struct {
	schemas   map[string]string
	mu        sync.RWMutex
	replace   bool
	reflector *jsonschema.Reflector
	// contracts reflects hint types by reference so every named type lands
	// in the document's $defs.
	contracts *jsonschema.Reflector
}

// RegistryOption configures the Registry.
type RegistryOption func(*Registry)

// WithReplace allows re-registering a kind, replacing its schema.
func WithReplace(replace bool) RegistryOption {
	return func(r *Registry) {
		r.replace = replace
	}
}

// NewRegistry creates a new contract registry.
func NewRegistry(opts ...RegistryOption) ContractRegistry {
	r := &Registry{
		schemas:   make(map[string]string),
		reflector: new(jsonschema.Reflector),
		contracts: &jsonschema.Reflector{
			Anonymous: true,
			Namer:     definitionName,
			Mapper:    mapKind,
		},
	}

	r.reflector.ExpandedStruct = true

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds a schema for a kind.
// model can be a Go struct (to generate schema) or a raw JSON schema
// string, byte slice or map.
func (r *Registry) Register(kind string, model interface{}) error {
	schemaStr, err := r.render(model)
	if err != nil {
		return fmt.Errorf("schema %s: %w", kind, err)
	}
	return r.store(kind, schemaStr)
}

func (r *Registry) render(model interface{}) (string, error) {
	switch v := model.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case map[string]interface{}:
		b, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("failed to marshal schema map: %w", err)
		}
		return string(b), nil
	case *jsonschema.Schema:
		return marshal(v)
	}

	t := reflect.TypeOf(model)
	if t == nil {
		return "", fmt.Errorf("nil model")
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return "", fmt.Errorf("unsupported model type %T", model)
	}
	return marshal(r.reflector.Reflect(model))
}

func (r *Registry) store(kind, schemaStr string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.schemas[kind]; exists && !r.replace {
		return fmt.Errorf("schema kind already registered: %s", kind)
	}
	r.schemas[kind] = schemaStr
	return nil
}

// replaceContracts swaps the schemas stored under name for rendered in one
// step.
func (r *Registry) replaceContracts(name string, rendered map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.replace {
		for kind := range rendered {
			if _, exists := r.schemas[kind]; exists {
				return fmt.Errorf("schema kind already registered: %s", kind)
			}
		}
	}
	delete(r.schemas, InputKind(name))
	delete(r.schemas, OutputKind(name))
	for kind, s := range rendered {
		r.schemas[kind] = s
	}
	return nil
}

// Remove deletes the input and output schemas of the named function.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := false
	for _, kind := range []string{InputKind(name), OutputKind(name)} {
		if _, ok := r.schemas[kind]; ok {
			delete(r.schemas, kind)
			removed = true
		}
	}
	return removed
}

// GetSchema retrieves the JSON Schema for a kind.
func (r *Registry) GetSchema(kind string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[kind]
	return s, ok
}

// List returns all registered kinds, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.schemas))
	for k := range r.schemas {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func marshal(s *jsonschema.Schema) (string, error) {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal generated schema: %w", err)
	}
	return string(b), nil
}

// definitionName keys $defs by type name. Instantiated generics carry
// import paths in their names, which are not valid in a JSON pointer.
func definitionName(t reflect.Type) string {
	return strings.Map(func(c rune) rune {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
			return c
		default:
			return '_'
		}
	}, t.Name())
}
