package entity

import (
	"time"

	"github.com/google/uuid"
)

type IndexOperation string

const (
	IndexOperationIndex  IndexOperation = "index"
	IndexOperationUpdate IndexOperation = "update"
	IndexOperationDelete IndexOperation = "delete"
)

// IndexFailure records a note whose store write succeeded but whose search index write did not.
// Only the latest failure per note is kept.
type IndexFailure struct {
	NoteId     uuid.UUID      `json:"note_id"`
	Operation  IndexOperation `json:"operation"`
	Error      string         `json:"error"`
	OccurredAt time.Time      `json:"occurred_at"`
}
