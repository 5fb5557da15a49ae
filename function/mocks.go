package function

import (
	"context"
	"io"
	"log/slog"
	"reflect"

	"github.com/NotAdityaPawar/monkeypatch/function/entities"
	"github.com/NotAdityaPawar/monkeypatch/function/services"
)

// MockSource implements ports.SourceStrategy for testing
type MockSource struct {
	services.BaseSource
	Sources map[reflect.Type]string
	Err     error
	Calls   int
}

func (m *MockSource) Source(ctx context.Context, t reflect.Type) (string, error) {
	m.Calls++
	if m.Err != nil {
		return "", m.Err
	}
	if src, ok := m.Sources[t]; ok {
		return src, nil
	}
	return m.SourceNext(ctx, t)
}

// MockExtractor implements ports.DescriptionExtractor
type MockExtractor struct {
	Descriptions map[string]*entities.FunctionDescription
	Err          error
}

func (m *MockExtractor) Extract(ctx context.Context, decl *entities.Declaration) (*entities.FunctionDescription, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if d, ok := m.Descriptions[decl.Name()]; ok {
		return d, nil
	}
	return &entities.FunctionDescription{Name: decl.Name()}, nil
}

func NewTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
