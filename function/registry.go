// Package function holds the registry of model-backed functions, partitioned
// by output modality.
package function

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/NotAdityaPawar/monkeypatch/function/entities"
	"github.com/NotAdityaPawar/monkeypatch/function/ports"
	"github.com/NotAdityaPawar/monkeypatch/function/values"
)

// Registry maps function names to their declarations, one partition per
// FunctionType. A name lives in at most one partition.
type Registry struct {
	mu         sync.RWMutex
	symbolic   *orderedmap.OrderedMap[string, *entities.Declaration]
	embeddable *orderedmap.OrderedMap[string, *entities.Declaration]
	extractor  ports.DescriptionExtractor
	logger     *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) { r.logger = l }
}

// NewRegistry creates an empty registry. The extractor recomputes
// descriptions on lookup; without one, description lookups return
// ErrNoExtractor.
func NewRegistry(extractor ports.DescriptionExtractor, opts ...RegistryOption) *Registry {
	r := &Registry{
		symbolic:   orderedmap.New[string, *entities.Declaration](),
		embeddable: orderedmap.New[string, *entities.Declaration](),
		extractor:  extractor,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) partition(t values.FunctionType) *orderedmap.OrderedMap[string, *entities.Declaration] {
	switch t {
	case values.FunctionTypeSymbolic:
		return r.symbolic
	case values.FunctionTypeEmbeddable:
		return r.embeddable
	default:
		return nil
	}
}

// ErrNoExtractor is returned when a description is requested from a registry
// created without an extractor.
var ErrNoExtractor = errors.New("registry has no description extractor")

// Register stores decl under its own name in the partition of desc.Type.
// Re-registering a name overwrites it and keeps its original position; a
// name registered under the other modality is moved. Descriptions of an
// unknown type are ignored.
func (r *Registry) Register(decl *entities.Declaration, desc *entities.FunctionDescription) {
	if decl == nil || desc == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name := decl.Name()
	target := r.partition(desc.Type)
	if target == nil {
		r.logger.Debug("ignoring registration with unknown function type",
			"function", name,
			"type", desc.Type)
		return
	}

	for _, other := range []*orderedmap.OrderedMap[string, *entities.Declaration]{r.symbolic, r.embeddable} {
		if other == target {
			continue
		}
		if _, moved := other.Delete(name); moved {
			r.logger.Debug("function changed modality",
				"function", name,
				"type", desc.Type)
		}
	}

	if _, exists := target.Set(name, decl); exists {
		r.logger.Debug("function re-registered", "function", name, "type", desc.Type)
		return
	}
	r.logger.Debug("function registered", "function", name, "type", desc.Type)
}

// Unregister removes name from whichever partition holds it.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, inSymbolic := r.symbolic.Delete(name)
	_, inEmbeddable := r.embeddable.Delete(name)
	return inSymbolic || inEmbeddable
}

// Resolve returns the modality and declaration registered under name,
// consulting the symbolic partition first.
func (r *Registry) Resolve(name string) (values.FunctionType, *entities.Declaration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if decl, ok := r.symbolic.Get(name); ok {
		return values.FunctionTypeSymbolic, decl, nil
	}
	if decl, ok := r.embeddable.Get(name); ok {
		return values.FunctionTypeEmbeddable, decl, nil
	}
	return "", nil, &entities.FunctionNotFoundError{Name: name}
}

// Len returns the number of registered functions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.symbolic.Len() + r.embeddable.Len()
}

// PatchOption filters the functions eligible for patching.
type PatchOption func(*patchFilter)

type patchFilter struct {
	fnType *values.FunctionType
	host   ports.Host
}

// ForType restricts the result to one modality.
func ForType(t values.FunctionType) PatchOption {
	return func(f *patchFilter) { f.fnType = &t }
}

// ForHost restricts the result to names the host has a member for.
func ForHost(h ports.Host) PatchOption {
	return func(f *patchFilter) { f.host = h }
}

func (f *patchFilter) admits(t values.FunctionType, name string) bool {
	if f.fnType != nil && *f.fnType != t {
		return false
	}
	if f.host != nil {
		if _, ok := f.host.Member(name); !ok {
			return false
		}
	}
	return true
}

// each visits the admitted entries, symbolic before embeddable, each in
// insertion order. Callers hold r.mu.
func (r *Registry) each(opts []PatchOption, visit func(values.FunctionType, string, *entities.Declaration)) {
	f := &patchFilter{}
	for _, opt := range opts {
		opt(f)
	}

	parts := []struct {
		t values.FunctionType
		m *orderedmap.OrderedMap[string, *entities.Declaration]
	}{
		{values.FunctionTypeSymbolic, r.symbolic},
		{values.FunctionTypeEmbeddable, r.embeddable},
	}
	for _, p := range parts {
		for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
			if f.admits(p.t, pair.Key) {
				visit(p.t, pair.Key, pair.Value)
			}
		}
	}
}

// NamesForPatching lists registered names eligible for patching.
func (r *Registry) NamesForPatching(opts ...PatchOption) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, r.symbolic.Len()+r.embeddable.Len())
	r.each(opts, func(_ values.FunctionType, name string, _ *entities.Declaration) {
		names = append(names, name)
	})
	return names
}

// CallablesForPatching returns the eligible declarations of both
// partitions keyed by name.
func (r *Registry) CallablesForPatching(opts ...PatchOption) *orderedmap.OrderedMap[string, *entities.Declaration] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := orderedmap.New[string, *entities.Declaration]()
	r.each(opts, func(_ values.FunctionType, name string, decl *entities.Declaration) {
		out.Set(name, decl)
	})
	return out
}

// DescriptionForName describes the function name. When host is non-nil the
// host's member is described, otherwise the registered declaration.
func (r *Registry) DescriptionForName(ctx context.Context, host ports.Host, name string) (*entities.FunctionDescription, error) {
	var decl *entities.Declaration
	if host != nil {
		member, ok := host.Member(name)
		if !ok || member == nil {
			return nil, &entities.FunctionNotFoundError{Name: name, Host: host.HostName()}
		}
		decl = member
	} else {
		_, registered, err := r.Resolve(name)
		if err != nil {
			return nil, err
		}
		decl = registered
	}

	if r.extractor == nil {
		return nil, ErrNoExtractor
	}
	return r.extractor.Extract(ctx, decl)
}

// DescriptionFor accepts either (name) or (host, name).
func (r *Registry) DescriptionFor(ctx context.Context, args ...any) (*entities.FunctionDescription, error) {
	switch len(args) {
	case 1:
		name, ok := args[0].(string)
		if !ok {
			return nil, &entities.InvalidArgumentsError{
				Operation: "DescriptionFor",
				Reason:    fmt.Sprintf("expected a function name, got %T", args[0]),
			}
		}
		return r.DescriptionForName(ctx, nil, name)
	case 2:
		host, ok := args[0].(ports.Host)
		if !ok {
			return nil, &entities.InvalidArgumentsError{
				Operation: "DescriptionFor",
				Reason:    fmt.Sprintf("expected a host, got %T", args[0]),
			}
		}
		name, ok := args[1].(string)
		if !ok {
			return nil, &entities.InvalidArgumentsError{
				Operation: "DescriptionFor",
				Reason:    fmt.Sprintf("expected a function name, got %T", args[1]),
			}
		}
		return r.DescriptionForName(ctx, host, name)
	default:
		return nil, &entities.InvalidArgumentsError{
			Operation: "DescriptionFor",
			Reason:    fmt.Sprintf("expected (name) or (host, name), got %d arguments", len(args)),
		}
	}
}

// Descriptions describes every eligible registered function in patching
// order. The first extraction failure aborts.
func (r *Registry) Descriptions(ctx context.Context, opts ...PatchOption) ([]*entities.FunctionDescription, error) {
	if r.extractor == nil {
		return nil, ErrNoExtractor
	}
	callables := r.CallablesForPatching(opts...)

	out := make([]*entities.FunctionDescription, 0, callables.Len())
	for pair := callables.Oldest(); pair != nil; pair = pair.Next() {
		desc, err := r.extractor.Extract(ctx, pair.Value)
		if err != nil {
			return nil, fmt.Errorf("describing %s: %w", pair.Key, err)
		}
		out = append(out, desc)
	}
	return out, nil
}
