package services

import (
	"context"
	"reflect"

	"github.com/NotAdityaPawar/monkeypatch/function/entities"
	"github.com/NotAdityaPawar/monkeypatch/function/ports"
)

// BaseSource provides common chain-of-responsibility logic for source
// providers.
type BaseSource struct {
	next ports.SourceStrategy
}

// SetNext sets the next provider in chain.
func (b *BaseSource) SetNext(next ports.SourceStrategy) {
	b.next = next
}

// SourceNext delegates to next provider in chain.
func (b *BaseSource) SourceNext(ctx context.Context, t reflect.Type) (string, error) {
	if b.next == nil {
		return "", &entities.SourceUnavailableError{Type: t.String()}
	}
	return b.next.Source(ctx, t)
}

// ChainSources links providers in order and returns the head.
// With no providers every lookup fails.
func ChainSources(providers ...ports.SourceStrategy) ports.SourceProvider {
	if len(providers) == 0 {
		return noSource{}
	}
	for i := 0; i < len(providers)-1; i++ {
		providers[i].SetNext(providers[i+1])
	}
	return providers[0]
}

type noSource struct{}

func (noSource) Source(_ context.Context, t reflect.Type) (string, error) {
	return "", &entities.SourceUnavailableError{Type: t.String()}
}
