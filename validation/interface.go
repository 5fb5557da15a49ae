package validation

// DocumentValidator validates raw description documents against the
// document schema before they are decoded.
type DocumentValidator interface {
	// ValidateJSON checks a JSON document.
	ValidateJSON(data []byte) (*ValidationResult, error)

	// ValidateYAML checks a YAML document.
	ValidateYAML(data []byte) (*ValidationResult, error)
}

// ValidationResult is the outcome of a schema check. Errors is empty when
// Valid is true.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// ValidationError is one schema violation.
type ValidationError struct {
	// Path is the JSON pointer of the offending value.
	Path    string
	Message string
}
