package sources

import (
	"context"
	"reflect"
	"sync"

	"github.com/NotAdityaPawar/monkeypatch/function/services"
)

// CachedSource memoizes successful lookups of the rest of the chain.
// Failures are not cached.
type CachedSource struct {
	services.BaseSource
	mu    sync.RWMutex
	cache map[reflect.Type]string
}

// NewCachedSource creates a caching source provider.
func NewCachedSource() *CachedSource {
	return &CachedSource{
		cache: make(map[reflect.Type]string),
	}
}

// Source checks cache, otherwise delegates to next.
func (s *CachedSource) Source(ctx context.Context, t reflect.Type) (string, error) {
	s.mu.RLock()
	src, ok := s.cache[t]
	s.mu.RUnlock()
	if ok {
		return src, nil // Found in cache
	}

	src, err := s.SourceNext(ctx, t)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.cache[t] = src
	s.mu.Unlock()
	return src, nil
}
