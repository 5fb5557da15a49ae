package values

import "reflect"

// DefinitionKind discriminates structural definitions.
type DefinitionKind string

const (
	// DefinitionName is a primitive the generator already understands.
	DefinitionName DefinitionKind = "name"
	// DefinitionLiterals is the ordered value list of a literal type.
	DefinitionLiterals DefinitionKind = "literals"
	// DefinitionArguments holds the expansions of a parameterized type's arguments.
	DefinitionArguments DefinitionKind = "arguments"
	// DefinitionSource is the full declaration text of a user-defined type.
	DefinitionSource DefinitionKind = "source"
)

// Definition is the recursively expanded shape of a type, as shown to a
// generative backend.
type Definition struct {
	Kind      DefinitionKind `json:"kind" yaml:"kind" jsonschema:"enum=name,enum=literals,enum=arguments,enum=source"`
	Name      string         `json:"name,omitempty" yaml:"name,omitempty"`
	Literals  []any          `json:"literals,omitempty" yaml:"literals,omitempty"`
	Arguments []Definition   `json:"arguments,omitempty" yaml:"arguments,omitempty"`
	Source    string         `json:"source,omitempty" yaml:"source,omitempty"`
}

// NameDefinition returns the definition of a primitive type.
func NameDefinition(name string) Definition {
	return Definition{Kind: DefinitionName, Name: name}
}

// LiteralsDefinition returns the definition of a literal type.
func LiteralsDefinition(vals []any) Definition {
	return Definition{Kind: DefinitionLiterals, Literals: append([]any{}, vals...)}
}

// ArgumentsDefinition returns the definition of a parameterized type.
func ArgumentsDefinition(args []Definition) Definition {
	return Definition{Kind: DefinitionArguments, Arguments: append([]Definition{}, args...)}
}

// SourceDefinition returns the definition of a user-defined type.
func SourceDefinition(src string) Definition {
	return Definition{Kind: DefinitionSource, Source: src}
}

// Plain returns the untagged shape: a string for names and sources, a
// []any of values for literals, and a []any of nested plain shapes for
// arguments.
func (d Definition) Plain() any {
	switch d.Kind {
	case DefinitionLiterals:
		return append([]any{}, d.Literals...)
	case DefinitionArguments:
		out := make([]any, len(d.Arguments))
		for i, a := range d.Arguments {
			out[i] = a.Plain()
		}
		return out
	case DefinitionSource:
		return d.Source
	default:
		return d.Name
	}
}

// Equal reports whether two definitions are identical.
func (d Definition) Equal(other Definition) bool {
	return reflect.DeepEqual(d, other)
}
