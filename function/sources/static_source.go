// Package sources provides SourceProvider adapters that retrieve the
// declaration text of user-defined types.
package sources

import (
	"context"
	"reflect"
	"sync"

	"github.com/NotAdityaPawar/monkeypatch/function/services"
)

// StaticSource serves pre-rendered declaration text registered at startup,
// typically by generated code.
type StaticSource struct {
	services.BaseSource
	mu      sync.RWMutex
	sources map[reflect.Type]string
}

// NewStaticSource creates an empty StaticSource.
func NewStaticSource() *StaticSource {
	return &StaticSource{
		sources: make(map[reflect.Type]string),
	}
}

// Register associates declaration text with t, replacing any previous text.
func (s *StaticSource) Register(t reflect.Type, src string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources[t] = src
}

// RegisterSource associates declaration text with the Go type T.
func RegisterSource[T any](s *StaticSource, src string) {
	s.Register(reflect.TypeFor[T](), src)
}

// Len returns the number of registered types.
func (s *StaticSource) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sources)
}

// Source returns the registered text, otherwise delegates to next.
func (s *StaticSource) Source(ctx context.Context, t reflect.Type) (string, error) {
	s.mu.RLock()
	src, ok := s.sources[t]
	s.mu.RUnlock()
	if ok {
		return src, nil
	}
	return s.SourceNext(ctx, t)
}
