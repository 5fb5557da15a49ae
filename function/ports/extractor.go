package ports

import (
	"context"

	"github.com/NotAdityaPawar/monkeypatch/function/entities"
)

// DescriptionExtractor derives the contract description of a declaration.
type DescriptionExtractor interface {
	Extract(ctx context.Context, decl *entities.Declaration) (*entities.FunctionDescription, error)
}
