package schema_test

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"testing"

	santhosh "github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NotAdityaPawar/monkeypatch/function/entities"
	"github.com/NotAdityaPawar/monkeypatch/function/services"
	"github.com/NotAdityaPawar/monkeypatch/function/sources"
	"github.com/NotAdityaPawar/monkeypatch/function/values"
	"github.com/NotAdityaPawar/monkeypatch/schema"
)

type Ticket struct {
	Title    string `json:"title"`
	Priority int    `json:"priority"`
}

type TicketEmbedding struct {
	values.Embedding[float32]
}

type Feed struct {
	Events chan string    `json:"events"`
	Scores chan []float64 `json:"scores"`
	OnDone func()         `json:"-"`
	Hook   func(int) bool `json:"hook"`
	Phase  complex128     `json:"phase"`
}

func triage(ticket Ticket, note *string) string { return ticket.Title }

func watch(events chan string, feed Feed, done func(error)) <-chan Ticket { return nil }

func embedTicket(ticket Ticket) TicketEmbedding { return TicketEmbedding{} }

func describe(t *testing.T, decl *entities.Declaration) *entities.FunctionDescription {
	t.Helper()
	static := sources.NewStaticSource()
	sources.RegisterSource[Ticket](static, "type Ticket struct{}")
	sources.RegisterSource[Feed](static, "type Feed struct{}")
	desc, err := services.NewDescriptionExtractor(static).Extract(context.Background(), decl)
	require.NoError(t, err)
	return desc
}

// compile checks the stored schema with an independent validator.
func compile(t *testing.T, raw string) *santhosh.Schema {
	t.Helper()
	c := santhosh.NewCompiler()
	c.Draft = santhosh.Draft2020
	require.NoError(t, c.AddResource("contract.json", strings.NewReader(raw)))
	s, err := c.Compile("contract.json")
	require.NoError(t, err)
	return s
}

func instance(t *testing.T, doc string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(doc), &v))
	return v
}

func TestRegistry_Register(t *testing.T) {
	r := schema.NewRegistry()

	require.NoError(t, r.Register("raw", `{"type": "string"}`))
	require.NoError(t, r.Register("map", map[string]interface{}{"type": "number"}))
	require.NoError(t, r.Register("struct", Ticket{}))
	require.NoError(t, r.Register("pointer", &Ticket{}))

	err := r.Register("raw", `{"type": "string"}`)
	assert.Error(t, err)
	assert.Error(t, r.Register("int", 42))
	assert.Error(t, r.Register("nil", nil))

	s, ok := r.GetSchema("struct")
	require.True(t, ok)
	assert.Contains(t, s, `"title"`)
	assert.Equal(t, []string{"map", "pointer", "raw", "struct"}, r.List())
}

func TestRegistry_WithReplace(t *testing.T) {
	r := schema.NewRegistry(schema.WithReplace(true))
	require.NoError(t, r.Register("k", `{"type": "string"}`))
	require.NoError(t, r.Register("k", `{"type": "number"}`))

	s, _ := r.GetSchema("k")
	assert.Equal(t, `{"type": "number"}`, s)
}

func TestRegistry_RegisterDescription(t *testing.T) {
	decl := entities.Declare("triage", triage).
		Doc("Triage a ticket.").
		Param("ticket", values.TypeOf[Ticket]()).
		Param("note", values.Optional(values.TypeOf[string]())).
		Returns(values.Literal("low", "high")).
		MustBuild()

	r := schema.NewRegistry()
	require.NoError(t, r.RegisterDescription(describe(t, decl)))
	assert.Equal(t, []string{"triage.input", "triage.output"}, r.List())

	t.Run("input", func(t *testing.T) {
		raw, ok := r.GetSchema(schema.InputKind("triage"))
		require.True(t, ok)
		s := compile(t, raw)

		assert.NoError(t, s.Validate(instance(t, `{"ticket": {"title": "t", "priority": 1}, "note": null}`)))
		assert.NoError(t, s.Validate(instance(t, `{"ticket": {"title": "t", "priority": 1}, "note": "n"}`)))
		assert.Error(t, s.Validate(instance(t, `{"ticket": {"title": "t", "priority": 1}}`)))
		assert.Error(t, s.Validate(instance(t, `{"ticket": {"title": 3, "priority": 1}, "note": null}`)))
		assert.Error(t, s.Validate(instance(t, `{"ticket": {"title": "t", "priority": 1}, "note": null, "x": 1}`)))
	})

	t.Run("output", func(t *testing.T) {
		raw, ok := r.GetSchema(schema.OutputKind("triage"))
		require.True(t, ok)
		s := compile(t, raw)

		assert.NoError(t, s.Validate(instance(t, `"low"`)))
		assert.Error(t, s.Validate(instance(t, `"medium"`)))
	})

	t.Run("duplicate", func(t *testing.T) {
		assert.Error(t, r.RegisterDescription(describe(t, decl)))
	})

	t.Run("remove", func(t *testing.T) {
		assert.True(t, r.Remove("triage"))
		assert.False(t, r.Remove("triage"))
		assert.Empty(t, r.List())
	})
}

func TestRegistry_RegisterDescription_Embeddable(t *testing.T) {
	decl, err := entities.FromFunc("embed_ticket", embedTicket, "", "ticket")
	require.NoError(t, err)

	r := schema.NewRegistry()
	require.NoError(t, r.RegisterDescription(describe(t, decl)))
	assert.Equal(t, []string{"embed_ticket.input"}, r.List())
}

func TestRegistry_GenericOutput(t *testing.T) {
	decl := entities.Declare("count", triage).
		Untyped("ticket").
		Untyped("note").
		Returns(values.Generic(values.TypeOf[[]Ticket](), values.TypeOf[Ticket]())).
		MustBuild()

	reg := schema.NewRegistry()
	r, ok := reg.(*schema.Registry)
	require.True(t, ok)

	out, err := r.OutputSchema(describe(t, decl))
	require.NoError(t, err)
	assert.Equal(t, "array", out.Type)
	assert.Contains(t, out.Definitions, "Ticket")

	in, err := r.InputSchema(describe(t, decl))
	require.NoError(t, err)
	assert.Equal(t, 0, in.Properties.Len())
	assert.Empty(t, in.Required)
}

func TestRegistry_RegisterDescription_UnreflectableKinds(t *testing.T) {
	decl, err := entities.FromFunc("watch", watch, "", "events", "feed", "done")
	require.NoError(t, err)

	r := schema.NewRegistry()
	require.NotPanics(t, func() {
		require.NoError(t, r.RegisterDescription(describe(t, decl)))
	})

	raw, ok := r.GetSchema(schema.InputKind("watch"))
	require.True(t, ok)
	in := compile(t, raw)
	assert.NoError(t, in.Validate(instance(t, `{
		"events": ["a", "b"],
		"feed": {"events": [], "scores": [[1.5]], "hook": null, "phase": 0},
		"done": null
	}`)))
	assert.Error(t, in.Validate(instance(t, `{"events": [1], "feed": {}, "done": null}`)))
	assert.Error(t, in.Validate(instance(t, `{"events": [], "feed": {"scores": ["x"]}, "done": null}`)))

	raw, ok = r.GetSchema(schema.OutputKind("watch"))
	require.True(t, ok)
	out := compile(t, raw)
	assert.NoError(t, out.Validate(instance(t, `[{"title": "t", "priority": 2}]`)))
	assert.Error(t, out.Validate(instance(t, `{"title": "t"}`)))
}

func TestRegistry_RegisterDescription_FailureKeepsSchemas(t *testing.T) {
	r := schema.NewRegistry(schema.WithReplace(true))
	require.NoError(t, r.RegisterDescription(describe(t, entities.Declare("score", triage).
		Param("ticket", values.TypeOf[Ticket]()).
		Untyped("note").
		Returns(values.Literal("low", "high")).
		MustBuild())))
	before, _ := r.GetSchema(schema.OutputKind("score"))

	// +Inf has no JSON encoding, so the output schema cannot be rendered.
	err := r.RegisterDescription(describe(t, entities.Declare("score", triage).
		Param("ticket", values.TypeOf[Ticket]()).
		Param("note", values.TypeOf[*string]()).
		Returns(values.Literal(math.Inf(1))).
		MustBuild()))
	require.Error(t, err)

	assert.Equal(t, []string{"score.input", "score.output"}, r.List())
	after, _ := r.GetSchema(schema.OutputKind("score"))
	assert.Equal(t, before, after)
	input, _ := r.GetSchema(schema.InputKind("score"))
	assert.NotContains(t, input, `"note"`)
}

func TestRegistry_RegisterDescription_ReplacesStaleOutput(t *testing.T) {
	r := schema.NewRegistry(schema.WithReplace(true))
	require.NoError(t, r.RegisterDescription(describe(t, entities.Declare("embed_ticket", triage).
		Param("ticket", values.TypeOf[Ticket]()).
		Untyped("note").
		Returns(values.TypeOf[string]()).
		MustBuild())))
	require.Equal(t, []string{"embed_ticket.input", "embed_ticket.output"}, r.List())

	decl, err := entities.FromFunc("embed_ticket", embedTicket, "", "ticket")
	require.NoError(t, err)
	require.NoError(t, r.RegisterDescription(describe(t, decl)))
	assert.Equal(t, []string{"embed_ticket.input"}, r.List())
}
