package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/NotAdityaPawar/monkeypatch/function/entities"
	"github.com/NotAdityaPawar/monkeypatch/function/ports"
	"github.com/NotAdityaPawar/monkeypatch/function/values"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const returnParameter = "return"

// DescriptionExtractor derives FunctionDescriptions from declarations.
// It never invokes the declared callable.
type DescriptionExtractor struct {
	sources ports.SourceProvider
	logger  *slog.Logger
}

// ExtractorOption configures a DescriptionExtractor.
type ExtractorOption func(*DescriptionExtractor)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ExtractorOption {
	return func(e *DescriptionExtractor) { e.logger = l }
}

// NewDescriptionExtractor creates an extractor that expands user-defined
// types through sources. A nil provider makes every user-defined type fail
// with ErrSourceUnavailable.
func NewDescriptionExtractor(sources ports.SourceProvider, opts ...ExtractorOption) *DescriptionExtractor {
	if sources == nil {
		sources = noSource{}
	}
	e := &DescriptionExtractor{
		sources: sources,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract builds the description of decl. Extraction fails as a whole when
// any structural definition cannot be computed.
func (e *DescriptionExtractor) Extract(ctx context.Context, decl *entities.Declaration) (*entities.FunctionDescription, error) {
	if decl == nil {
		return nil, &entities.InvalidArgumentsError{Operation: "Extract", Reason: "nil declaration"}
	}

	// 1. Partition annotations into inputs (declaration order) and output
	inputs := orderedmap.New[string, values.TypeHint]()
	for _, p := range decl.Params() {
		if p.Hint == nil {
			continue
		}
		inputs.Set(p.Name, *p.Hint)
	}
	output := decl.Returns()

	// 2. Expand every input type
	defs := orderedmap.New[string, values.Definition]()
	for pair := inputs.Oldest(); pair != nil; pair = pair.Next() {
		def, err := e.Definition(ctx, pair.Value)
		if err != nil {
			return nil, annotate(err, decl.Name(), pair.Key, pair.Value)
		}
		defs.Set(pair.Key, def)
	}

	// 3. Classify modality; embeddings never expand their output
	fnType := values.FunctionTypeSymbolic
	var outputDef *values.Definition
	if output != nil {
		if values.IsEmbeddingType(output.OriginType()) {
			fnType = values.FunctionTypeEmbeddable
		} else {
			def, err := e.Definition(ctx, *output)
			if err != nil {
				return nil, annotate(err, decl.Name(), returnParameter, *output)
			}
			outputDef = &def
		}
	}

	e.logger.Debug("extracted function description",
		"function", decl.Name(),
		"type", fnType,
		"inputs", inputs.Len())

	return &entities.FunctionDescription{
		Name:                  decl.Name(),
		Docstring:             strings.TrimSpace(decl.Doc()),
		InputTypeHints:        inputs,
		OutputTypeHint:        output,
		InputClassDefinitions: defs,
		OutputClassDefinition: outputDef,
		Type:                  fnType,
	}, nil
}

// Definition computes the structural definition of a hint.
func (e *DescriptionExtractor) Definition(ctx context.Context, hint values.TypeHint) (values.Definition, error) {
	switch hint.Kind() {
	case values.KindLiteral:
		return values.LiteralsDefinition(hint.Literals()), nil
	case values.KindUnion, values.KindGeneric:
		return e.argumentsDefinition(ctx, hint.NonNullArgs())
	case values.KindNull:
		return values.NameDefinition(hint.String()), nil
	case values.KindType:
		return e.typeDefinition(ctx, hint.Type())
	default:
		return values.Definition{}, fmt.Errorf("unsupported type hint kind %s", hint.Kind())
	}
}

func (e *DescriptionExtractor) argumentsDefinition(ctx context.Context, args []values.TypeHint) (values.Definition, error) {
	defs := make([]values.Definition, 0, len(args))
	for _, a := range args {
		def, err := e.Definition(ctx, a)
		if err != nil {
			return values.Definition{}, err
		}
		defs = append(defs, def)
	}
	return values.ArgumentsDefinition(defs), nil
}

func (e *DescriptionExtractor) typeDefinition(ctx context.Context, t reflect.Type) (values.Definition, error) {
	if isUserDefined(t) {
		src, err := e.sources.Source(ctx, t)
		if err != nil {
			return values.Definition{}, err
		}
		return values.SourceDefinition(src), nil
	}

	// Unnamed composites are parameterized by their element types; a
	// pointer is the optional of its element.
	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Chan:
		return e.argumentsDefinition(ctx, []values.TypeHint{values.FromReflect(t.Elem())})
	case reflect.Map:
		return e.argumentsDefinition(ctx, []values.TypeHint{
			values.FromReflect(t.Key()),
			values.FromReflect(t.Elem()),
		})
	}
	return values.NameDefinition(t.String()), nil
}

// isUserDefined reports whether t is a named type declared in a package,
// as opposed to a predeclared type or an unnamed composite.
func isUserDefined(t reflect.Type) bool {
	return t.Name() != "" && t.PkgPath() != ""
}

// annotate attaches the function and parameter to a failure.
func annotate(err error, function, param string, hint values.TypeHint) error {
	var sue *entities.SourceUnavailableError
	if errors.As(err, &sue) {
		typ := sue.Type
		if typ == "" {
			typ = hint.String()
		}
		return &entities.SourceUnavailableError{
			Function:  function,
			Parameter: param,
			Type:      typ,
			Err:       sue.Err,
		}
	}
	return fmt.Errorf("%s: parameter %s of type %s: %w", function, param, hint, err)
}
