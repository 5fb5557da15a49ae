package values

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FunctionType identifies which generative backend services a function.
type FunctionType string

const (
	// FunctionTypeSymbolic marks functions whose output is a structured value
	// synthesized by a text-generation backend.
	FunctionTypeSymbolic FunctionType = "SYMBOLIC"

	// FunctionTypeEmbeddable marks functions whose output is a vector produced
	// by an embedding backend.
	FunctionTypeEmbeddable FunctionType = "EMBEDDABLE"
)

// ParseFunctionType parses a case-insensitive function type name.
func ParseFunctionType(s string) (FunctionType, error) {
	ft := FunctionType(strings.ToUpper(strings.TrimSpace(s)))
	if !ft.IsValid() {
		return "", fmt.Errorf("unknown function type %q", s)
	}
	return ft, nil
}

// IsValid reports whether t is one of the known function types.
func (t FunctionType) IsValid() bool {
	return t == FunctionTypeSymbolic || t == FunctionTypeEmbeddable
}

// String returns the string representation
func (t FunctionType) String() string {
	return string(t)
}

// UnmarshalJSON implements json.Unmarshaler and rejects unknown types.
func (t *FunctionType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid function type JSON: %w", err)
	}
	parsed, err := ParseFunctionType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler so YAML decoders share
// the same validation.
func (t *FunctionType) UnmarshalText(text []byte) error {
	parsed, err := ParseFunctionType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
