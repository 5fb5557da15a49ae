package sources_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NotAdityaPawar/monkeypatch/function/entities"
	"github.com/NotAdityaPawar/monkeypatch/function/ports"
	"github.com/NotAdityaPawar/monkeypatch/function/services"
	"github.com/NotAdityaPawar/monkeypatch/function/sources"
)

type Sentiment struct {
	Label string
	Score float64
}

type counting struct {
	services.BaseSource
	calls int
	src   string
	err   error
}

func (c *counting) Source(_ context.Context, _ reflect.Type) (string, error) {
	c.calls++
	return c.src, c.err
}

var _ ports.SourceStrategy = (*counting)(nil)

func TestStaticSource(t *testing.T) {
	ctx := context.Background()
	s := sources.NewStaticSource()
	sources.RegisterSource[Sentiment](s, "type Sentiment struct{}")

	src, err := s.Source(ctx, reflect.TypeFor[Sentiment]())
	require.NoError(t, err)
	assert.Equal(t, "type Sentiment struct{}", src)
	assert.Equal(t, 1, s.Len())

	_, err = s.Source(ctx, reflect.TypeFor[*Sentiment]())
	assert.ErrorIs(t, err, entities.ErrSourceUnavailable)
}

func TestStaticSource_Overwrite(t *testing.T) {
	s := sources.NewStaticSource()
	sources.RegisterSource[Sentiment](s, "v1")
	sources.RegisterSource[Sentiment](s, "v2")

	src, err := s.Source(context.Background(), reflect.TypeFor[Sentiment]())
	require.NoError(t, err)
	assert.Equal(t, "v2", src)
	assert.Equal(t, 1, s.Len())
}

func TestCachedSource(t *testing.T) {
	ctx := context.Background()
	typ := reflect.TypeFor[Sentiment]()

	t.Run("hits are cached", func(t *testing.T) {
		next := &counting{src: "type Sentiment struct{}"}
		head := services.ChainSources(sources.NewCachedSource(), next)

		for i := 0; i < 3; i++ {
			src, err := head.Source(ctx, typ)
			require.NoError(t, err)
			assert.Equal(t, "type Sentiment struct{}", src)
		}
		assert.Equal(t, 1, next.calls)
	})

	t.Run("failures are not cached", func(t *testing.T) {
		next := &counting{err: &entities.SourceUnavailableError{Type: typ.String()}}
		head := services.ChainSources(sources.NewCachedSource(), next)

		_, err := head.Source(ctx, typ)
		require.Error(t, err)
		_, err = head.Source(ctx, typ)
		require.Error(t, err)
		assert.Equal(t, 2, next.calls)
	})
}

func TestFallbackSource(t *testing.T) {
	ctx := context.Background()
	typ := reflect.TypeFor[Sentiment]()

	t.Run("degrades to type name", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		head := services.ChainSources(sources.NewFallbackSource(logger), sources.NewStaticSource())

		src, err := head.Source(ctx, typ)
		require.NoError(t, err)
		assert.Equal(t, "sources_test.Sentiment", src)
		assert.Contains(t, buf.String(), "type source unavailable")
	})

	t.Run("passes through found sources", func(t *testing.T) {
		static := sources.NewStaticSource()
		sources.RegisterSource[Sentiment](static, "type Sentiment struct{}")
		head := services.ChainSources(sources.NewFallbackSource(nil), static)

		src, err := head.Source(ctx, typ)
		require.NoError(t, err)
		assert.Equal(t, "type Sentiment struct{}", src)
	})

	t.Run("passes through other errors", func(t *testing.T) {
		boom := errors.New("boom")
		head := services.ChainSources(sources.NewFallbackSource(nil), &counting{err: boom})

		_, err := head.Source(ctx, typ)
		assert.ErrorIs(t, err, boom)
	})
}

func TestChainSources_Empty(t *testing.T) {
	_, err := services.ChainSources().Source(context.Background(), reflect.TypeFor[Sentiment]())
	var sue *entities.SourceUnavailableError
	require.ErrorAs(t, err, &sue)
	assert.Equal(t, "sources_test.Sentiment", sue.Type)
}
