package schema

import "github.com/NotAdityaPawar/monkeypatch/function/entities"

// ContractRegistry manages JSON schemas of function contracts.
type ContractRegistry interface {
	// Register adds a schema for a kind (e.g. "classify.input").
	// model can be a struct (to generate schema) or a JSON schema string/map.
	Register(kind string, model interface{}) error

	// RegisterDescription replaces the schemas of a function with its input
	// schema and, for symbolic functions with a return hint, its output
	// schema. On error the stored schemas are unchanged.
	RegisterDescription(desc *entities.FunctionDescription) error

	// Remove deletes the schemas registered for a function.
	Remove(name string) bool

	// GetSchema returns the JSON schema for a kind.
	GetSchema(kind string) (string, bool)

	// List returns all registered kinds.
	List() []string
}
