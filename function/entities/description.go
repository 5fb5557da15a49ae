package entities

import (
	"github.com/NotAdityaPawar/monkeypatch/function/values"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// FunctionDescription is the generator-ready contract of one function.
// It holds no reference back to the registry and must be treated as
// read-only once built.
type FunctionDescription struct {
	Name      string
	Docstring string
	// InputTypeHints holds the annotated parameters in declaration order.
	InputTypeHints *orderedmap.OrderedMap[string, values.TypeHint]
	// OutputTypeHint is nil when the function declares no return type.
	OutputTypeHint *values.TypeHint
	// InputClassDefinitions has the same keys as InputTypeHints.
	InputClassDefinitions *orderedmap.OrderedMap[string, values.Definition]
	// OutputClassDefinition is nil for EMBEDDABLE functions and for
	// functions without a return type.
	OutputClassDefinition *values.Definition
	Type                  values.FunctionType
}

// InputNames returns the annotated parameter names in order.
func (d *FunctionDescription) InputNames() []string {
	if d.InputTypeHints == nil {
		return nil
	}
	names := make([]string, 0, d.InputTypeHints.Len())
	for pair := d.InputTypeHints.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// InputTypeHint returns the hint of one parameter.
func (d *FunctionDescription) InputTypeHint(name string) (values.TypeHint, bool) {
	if d.InputTypeHints == nil {
		return values.TypeHint{}, false
	}
	return d.InputTypeHints.Get(name)
}

// InputClassDefinition returns the structural definition of one parameter.
func (d *FunctionDescription) InputClassDefinition(name string) (values.Definition, bool) {
	if d.InputClassDefinitions == nil {
		return values.Definition{}, false
	}
	return d.InputClassDefinitions.Get(name)
}

// IsEmbeddable reports whether the function is serviced by an embedding backend.
func (d *FunctionDescription) IsEmbeddable() bool {
	return d.Type == values.FunctionTypeEmbeddable
}

// Equal compares two descriptions field by field, including map order.
func (d *FunctionDescription) Equal(other *FunctionDescription) bool {
	if d == nil || other == nil {
		return d == other
	}
	if d.Name != other.Name || d.Docstring != other.Docstring || d.Type != other.Type {
		return false
	}
	if !equalHintPtr(d.OutputTypeHint, other.OutputTypeHint) {
		return false
	}
	if (d.OutputClassDefinition == nil) != (other.OutputClassDefinition == nil) {
		return false
	}
	if d.OutputClassDefinition != nil && !d.OutputClassDefinition.Equal(*other.OutputClassDefinition) {
		return false
	}
	if !equalOrdered(d.InputTypeHints, other.InputTypeHints, values.TypeHint.Equal) {
		return false
	}
	return equalOrdered(d.InputClassDefinitions, other.InputClassDefinitions, values.Definition.Equal)
}

func equalHintPtr(a, b *values.TypeHint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func equalOrdered[V any](a, b *orderedmap.OrderedMap[string, V], eq func(V, V) bool) bool {
	la, lb := 0, 0
	if a != nil {
		la = a.Len()
	}
	if b != nil {
		lb = b.Len()
	}
	if la != lb {
		return false
	}
	if la == 0 {
		return true
	}
	pb := b.Oldest()
	for pa := a.Oldest(); pa != nil; pa = pa.Next() {
		if pa.Key != pb.Key || !eq(pa.Value, pb.Value) {
			return false
		}
		pb = pb.Next()
	}
	return true
}
