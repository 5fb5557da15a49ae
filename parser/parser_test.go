package parser_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NotAdityaPawar/monkeypatch/function/values"
	"github.com/NotAdityaPawar/monkeypatch/parser"
)

const jsonDoc = `{
  "format_version": "1.0.0",
  "descriptions": [
    {
      "name": "classify",
      "docstring": "Classify sentiment.",
      "type": "SYMBOLIC",
      "inputs": [
        {"name": "text", "type_hint": "string", "definition": {"kind": "name", "name": "string"}}
      ],
      "output_type_hint": "Literal[\"pos\", \"neg\"]",
      "output_class_definition": {"kind": "literals", "literals": ["pos", "neg"]}
    }
  ]
}`

const yamlDoc = `format_version: 1.2.0
descriptions:
  - name: embed
    docstring: ""
    type: EMBEDDABLE
    inputs:
      - name: text
        type_hint: string
        definition:
          kind: name
          name: string
    output_type_hint: models.Vector
`

func TestJSONDescriptionParser(t *testing.T) {
	doc, err := parser.NewJSONDescriptionParser().Parse([]byte(jsonDoc))
	require.NoError(t, err)

	require.Len(t, doc.Descriptions, 1)
	d := doc.Descriptions[0]
	assert.Equal(t, "classify", d.Name)
	assert.Equal(t, values.FunctionTypeSymbolic, d.Type)
	require.NotNil(t, d.OutputClassDefinition)
	assert.Equal(t, []any{"pos", "neg"}, d.OutputClassDefinition.Plain())
	assert.Equal(t, []string{"text"}, d.InputNames())
}

func TestYamlDescriptionParser(t *testing.T) {
	doc, err := parser.NewYamlDescriptionParser().Parse([]byte(yamlDoc))
	require.NoError(t, err)

	require.Len(t, doc.Descriptions, 1)
	d := doc.Descriptions[0]
	assert.Equal(t, values.FunctionTypeEmbeddable, d.Type)
	assert.Nil(t, d.OutputClassDefinition)
	in, ok := d.Input("text")
	require.True(t, ok)
	assert.Equal(t, "string", in.Definition.Plain())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name        string
		parser      parser.DescriptionParser
		data        string
		unsupported bool
	}{
		{"malformed JSON", parser.NewJSONDescriptionParser(), `{`, false},
		{"malformed YAML", parser.NewYamlDescriptionParser(), "descriptions: [", false},
		{"unknown type", parser.NewJSONDescriptionParser(), `{"format_version":"1.0.0","descriptions":[{"name":"f","type":"VISUAL"}]}`, false},
		{"missing version", parser.NewJSONDescriptionParser(), `{"descriptions":[]}`, true},
		{"future major", parser.NewYamlDescriptionParser(), "format_version: 2.0.0\ndescriptions: []\n", true},
		{"invalid version", parser.NewJSONDescriptionParser(), `{"format_version":"one","descriptions":[]}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.parser.Parse([]byte(tt.data))
			require.Error(t, err)
			if tt.unsupported {
				assert.ErrorIs(t, err, parser.ErrUnsupportedFormat)
			} else {
				assert.NotErrorIs(t, err, parser.ErrUnsupportedFormat)
			}
		})
	}
}

func TestCheckFormatConstraint(t *testing.T) {
	assert.NoError(t, parser.CheckFormatConstraint("^1", "1.9.3"))
	assert.ErrorIs(t, parser.CheckFormatConstraint("^1", "0.9.0"), parser.ErrUnsupportedFormat)
	assert.Error(t, parser.CheckFormatConstraint("not a constraint", "1.0.0"))
}

func TestForFile(t *testing.T) {
	tests := []struct {
		path    string
		want    any
		wantErr bool
	}{
		{"doc.json", &parser.JSONDescriptionParser{}, false},
		{"doc.YAML", &parser.YamlDescriptionParser{}, false},
		{"doc.yml", &parser.YamlDescriptionParser{}, false},
		{"doc.toml", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			p, err := parser.ForFile(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, parser.ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, p)
		})
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "descriptions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlDoc), 0o600))

	doc, err := parser.ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", doc.FormatVersion)

	_, err = parser.ParseFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
