package contract

import (
	"context"

	"notegraph-be/internal/entity"

	"github.com/google/uuid"
)

// IndexBacklogRepository holds notes that are persisted but possibly missing or stale in the search index.
type IndexBacklogRepository interface {
	Record(ctx context.Context, failure *entity.IndexFailure) error
	FindAll(ctx context.Context) ([]*entity.IndexFailure, error)
	Resolve(ctx context.Context, noteId uuid.UUID) error
}
