package contract

import (
	"context"

	"notegraph-be/internal/entity"
	"notegraph-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NoteLinkRepository interface {
	// Create is idempotent on the (source, target) pair.
	Create(ctx context.Context, link *entity.NoteLink) error
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, sourceId, targetId uuid.UUID) (bool, error)
	DeleteByNoteId(ctx context.Context, noteId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.NoteLink, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
