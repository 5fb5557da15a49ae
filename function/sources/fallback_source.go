package sources

import (
	"context"
	"errors"
	"log/slog"
	"reflect"

	"github.com/NotAdityaPawar/monkeypatch/function/entities"
	"github.com/NotAdityaPawar/monkeypatch/function/services"
)

// FallbackSource degrades an unavailable source to the type's name. It
// trades contract fidelity for availability and is only installed when the
// host opts in; place it at the head of the chain.
type FallbackSource struct {
	services.BaseSource
	logger *slog.Logger
}

// NewFallbackSource creates a degrading source provider.
func NewFallbackSource(logger *slog.Logger) *FallbackSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &FallbackSource{logger: logger}
}

// Source delegates to next and substitutes the type name when the source
// is unavailable. Other errors pass through.
func (s *FallbackSource) Source(ctx context.Context, t reflect.Type) (string, error) {
	src, err := s.SourceNext(ctx, t)
	if err == nil {
		return src, nil
	}
	if !errors.Is(err, entities.ErrSourceUnavailable) {
		return "", err
	}

	s.logger.Warn("type source unavailable, using type name",
		"type", t.String(),
		"error", err)
	return t.String(), nil
}
