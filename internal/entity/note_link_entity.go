package entity

import (
	"time"

	"github.com/google/uuid"
)

// NoteLink is a directed edge. A link and its reverse are distinct entities.
type NoteLink struct {
	SourceId  uuid.UUID
	TargetId  uuid.UUID
	CreatedAt time.Time
}
