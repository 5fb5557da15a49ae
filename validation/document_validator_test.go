package validation_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NotAdityaPawar/monkeypatch/function/dto"
	"github.com/NotAdityaPawar/monkeypatch/function/entities"
	"github.com/NotAdityaPawar/monkeypatch/function/values"
	"github.com/NotAdityaPawar/monkeypatch/validation"
)

func validDocument(t *testing.T) []byte {
	t.Helper()
	out := values.LiteralsDefinition([]any{"pos", "neg"})
	doc := dto.NewDocument(&entities.FunctionDescription{
		Name:                  "classify",
		Docstring:             "Classify sentiment.",
		Type:                  values.FunctionTypeSymbolic,
		OutputClassDefinition: &out,
	})
	b, err := dto.EncodeJSON(doc)
	require.NoError(t, err)
	return b
}

func TestDocumentSchema(t *testing.T) {
	raw, err := validation.DocumentSchema()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(raw, &schema))
	assert.Equal(t, "object", schema["type"])
	assert.Contains(t, schema["required"], "format_version")
	assert.Contains(t, schema, "$defs")
}

func TestDocumentValidator(t *testing.T) {
	validator, err := validation.NewDocumentValidator()
	require.NoError(t, err)

	t.Run("Valid encoded document", func(t *testing.T) {
		res, err := validator.ValidateJSON(validDocument(t))
		require.NoError(t, err)
		assert.True(t, res.Valid)
		assert.Empty(t, res.Errors)
	})

	t.Run("Valid YAML document", func(t *testing.T) {
		doc := `format_version: 1.0.0
descriptions:
  - name: embed
    docstring: Embed text.
    type: EMBEDDABLE
    inputs:
      - name: text
        type_hint: string
        definition:
          kind: name
          name: string
`
		res, err := validator.ValidateYAML([]byte(doc))
		require.NoError(t, err)
		assert.True(t, res.Valid, "%v", res.Errors)
	})

	t.Run("Missing format version", func(t *testing.T) {
		res, err := validator.ValidateJSON([]byte(`{"descriptions": []}`))
		require.NoError(t, err)
		assert.False(t, res.Valid)
		assert.NotEmpty(t, res.Errors)
	})

	t.Run("Unknown function type", func(t *testing.T) {
		doc := `{"format_version": "1.0.0", "descriptions": [
			{"name": "f", "docstring": "", "type": "VISUAL", "inputs": []}
		]}`
		res, err := validator.ValidateJSON([]byte(doc))
		require.NoError(t, err)
		assert.False(t, res.Valid)

		var paths []string
		for _, e := range res.Errors {
			paths = append(paths, e.Path)
		}
		assert.Contains(t, paths, "/descriptions/0/type")
	})

	t.Run("Unknown definition kind", func(t *testing.T) {
		doc := `{"format_version": "1.0.0", "descriptions": [
			{"name": "f", "docstring": "", "type": "SYMBOLIC", "inputs": [],
			 "output_class_definition": {"kind": "shape"}}
		]}`
		res, err := validator.ValidateJSON([]byte(doc))
		require.NoError(t, err)
		assert.False(t, res.Valid)
	})

	t.Run("Unexpected property", func(t *testing.T) {
		res, err := validator.ValidateJSON([]byte(`{"format_version": "1.0.0", "descriptions": [], "extra": true}`))
		require.NoError(t, err)
		assert.False(t, res.Valid)
	})

	t.Run("Malformed input", func(t *testing.T) {
		_, err := validator.ValidateJSON([]byte(`{`))
		assert.Error(t, err)
		_, err = validator.ValidateYAML([]byte("a: [\n"))
		assert.Error(t, err)
	})
}
