package values

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

const maxFunctionNameLength = 128

// FunctionName represents a validated function identifier.
// Registry partitions are keyed by it.
type FunctionName struct {
	value string
}

// NewFunctionName creates a FunctionName with strict validation.
// A valid function name must:
// - Be non-empty after trimming
// - Start with a letter or underscore
// - Contain only letters, digits and underscores
// - Be at most 128 characters long
func NewFunctionName(name string) (FunctionName, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return FunctionName{}, fmt.Errorf("function name cannot be empty")
	}

	if len(name) > maxFunctionNameLength {
		return FunctionName{}, fmt.Errorf("function name too long (max %d chars)", maxFunctionNameLength)
	}

	for i, ch := range name {
		if !isIdentifierChar(ch, i == 0) {
			return FunctionName{}, fmt.Errorf("invalid function name %q: must be an identifier (letters, digits, underscores)", name)
		}
	}

	return FunctionName{value: name}, nil
}

func isIdentifierChar(r rune, first bool) bool {
	if r == '_' || unicode.IsLetter(r) {
		return true
	}
	return !first && unicode.IsDigit(r)
}

// MustNewFunctionName creates a FunctionName or panics
func MustNewFunctionName(name string) FunctionName {
	fn, err := NewFunctionName(name)
	if err != nil {
		panic(err)
	}
	return fn
}

// String returns the string representation
func (n FunctionName) String() string {
	return n.value
}

// IsEmpty returns true if this is the zero value
func (n FunctionName) IsEmpty() bool {
	return n.value == ""
}

// Equals checks if two function names are equal
func (n FunctionName) Equals(other FunctionName) bool {
	return n.value == other.value
}

// MarshalJSON implements json.Marshaler.
func (n FunctionName) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.value)
}

// UnmarshalJSON implements json.Unmarshaler
func (n *FunctionName) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid function name JSON: %w", err)
	}

	name, err := NewFunctionName(s)
	if err != nil {
		return err
	}
	*n = name
	return nil
}
