// Package monkeypatch registers functions whose bodies are supplied by a
// generative backend and describes their contracts.
package monkeypatch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/NotAdityaPawar/monkeypatch/config"
	"github.com/NotAdityaPawar/monkeypatch/function"
	"github.com/NotAdityaPawar/monkeypatch/function/dto"
	"github.com/NotAdityaPawar/monkeypatch/function/entities"
	"github.com/NotAdityaPawar/monkeypatch/function/ports"
	"github.com/NotAdityaPawar/monkeypatch/function/services"
	"github.com/NotAdityaPawar/monkeypatch/function/sources"
	"github.com/NotAdityaPawar/monkeypatch/schema"
)

// Engine is the registration entry point. It wires the source chain, the
// description extractor, the function registry and the contract schemas.
type Engine struct {
	registry  *function.Registry
	extractor *services.DescriptionExtractor
	schemas   schema.ContractRegistry
	static    *sources.StaticSource
	logger    *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineConfig)

type engineConfig struct {
	logger      *slog.Logger
	extra       []ports.SourceStrategy
	packageOpts []sources.PackageSourceOption
	packages    bool
	fallback    bool
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(c *engineConfig) { c.logger = l }
}

// WithSources appends source providers consulted after the static sources.
func WithSources(s ...ports.SourceStrategy) EngineOption {
	return func(c *engineConfig) { c.extra = append(c.extra, s...) }
}

// WithPackageSource reads declarations from Go source with the package
// loader, as the last provider in the chain.
func WithPackageSource(opts ...sources.PackageSourceOption) EngineOption {
	return func(c *engineConfig) {
		c.packages = true
		c.packageOpts = append(c.packageOpts, opts...)
	}
}

// WithFallback degrades unavailable type sources to the type name.
func WithFallback(enabled bool) EngineOption {
	return func(c *engineConfig) { c.fallback = enabled }
}

// New creates an Engine. The source chain is, in order: optional fallback,
// static sources, cache, WithSources providers, optional package loader.
func New(opts ...EngineOption) *Engine {
	cfg := &engineConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	static := sources.NewStaticSource()

	var chain []ports.SourceStrategy
	if cfg.fallback {
		chain = append(chain, sources.NewFallbackSource(cfg.logger))
	}
	chain = append(chain, static, sources.NewCachedSource())
	chain = append(chain, cfg.extra...)
	if cfg.packages {
		pkgOpts := append([]sources.PackageSourceOption{sources.WithLogger(cfg.logger)}, cfg.packageOpts...)
		chain = append(chain, sources.NewPackageSource(pkgOpts...))
	}

	extractor := services.NewDescriptionExtractor(
		services.ChainSources(chain...),
		services.WithLogger(cfg.logger),
	)

	return &Engine{
		registry:  function.NewRegistry(extractor, function.WithLogger(cfg.logger)),
		extractor: extractor,
		schemas:   schema.NewRegistry(schema.WithReplace(true)),
		static:    static,
		logger:    cfg.logger,
	}
}

// NewFromConfig creates an Engine from loaded configuration. Options are
// applied after the configuration.
func NewFromConfig(cfg *config.Config, opts ...EngineOption) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}

	base := []EngineOption{
		WithLogger(cfg.Logger()),
		WithFallback(cfg.Sources.Fallback),
	}
	if cfg.Sources.Packages {
		base = append(base, WithPackageSource(
			sources.WithDir(cfg.Sources.Dir),
			sources.WithTests(cfg.Sources.Tests),
			sources.WithExclude(cfg.Sources.Exclude...),
		))
	}
	return New(append(base, opts...)...)
}

// RegisterSource supplies the declaration text of T for contracts.
func RegisterSource[T any](e *Engine, src string) {
	sources.RegisterSource[T](e.static, src)
}

// Patch describes decl and registers it under its modality. Registering an
// existing name replaces it.
func (e *Engine) Patch(ctx context.Context, decl *entities.Declaration) (*entities.FunctionDescription, error) {
	desc, err := e.extractor.Extract(ctx, decl)
	if err != nil {
		return nil, err
	}

	// Schemas of a previous registration, including a stale output schema
	// after a modality change, are replaced only once the new ones render.
	if err := e.schemas.RegisterDescription(desc); err != nil {
		return nil, fmt.Errorf("failed to register contract schemas for %s: %w", desc.Name, err)
	}
	e.registry.Register(decl, desc)

	e.logger.Info("function patched",
		"function", desc.Name,
		"type", desc.Type,
		"inputs", desc.InputTypeHints.Len())
	return desc, nil
}

// PatchFunc derives a declaration from fn and patches it. The name is the
// function's symbol name.
func (e *Engine) PatchFunc(ctx context.Context, fn any, doc string, paramNames ...string) (*entities.FunctionDescription, error) {
	decl, err := entities.FromFunc("", fn, doc, paramNames...)
	if err != nil {
		return nil, err
	}
	return e.Patch(ctx, decl)
}

// Unpatch removes a function and its contract schemas.
func (e *Engine) Unpatch(name string) bool {
	e.schemas.Remove(name)
	return e.registry.Unregister(name)
}

// Describe accepts (name) or (host, name); see Registry.DescriptionFor.
func (e *Engine) Describe(ctx context.Context, args ...any) (*entities.FunctionDescription, error) {
	return e.registry.DescriptionFor(ctx, args...)
}

// Export renders the eligible registered functions as a wire document.
func (e *Engine) Export(ctx context.Context, opts ...function.PatchOption) (*dto.Document, error) {
	descs, err := e.registry.Descriptions(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return dto.NewDocument(descs...), nil
}

// Registry returns the function registry.
func (e *Engine) Registry() *function.Registry { return e.registry }

// Extractor returns the description extractor.
func (e *Engine) Extractor() *services.DescriptionExtractor { return e.extractor }

// Schemas returns the contract schema registry.
func (e *Engine) Schemas() schema.ContractRegistry { return e.schemas }
