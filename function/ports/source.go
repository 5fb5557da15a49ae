package ports

import (
	"context"
	"reflect"
)

// SourceProvider retrieves the declaration text of a user-defined type.
// Implementations return an error matching entities.ErrSourceUnavailable
// when the type has no retrievable source.
type SourceProvider interface {
	Source(ctx context.Context, t reflect.Type) (string, error)
}

// SourceStrategy is a SourceProvider that can be chained.
// Implements Chain of Responsibility pattern.
type SourceStrategy interface {
	SourceProvider

	// SetNext sets the next provider in the chain.
	SetNext(next SourceStrategy)
}
