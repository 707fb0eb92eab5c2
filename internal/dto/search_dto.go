package dto

import (
	"time"

	"github.com/google/uuid"
)

type SearchNotesRequest struct {
	Query  string
	Type   string `validate:"omitempty,oneof=document outline"`
	Tags   []string
	SortBy string
}

type RetrievedExcerpt struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Tags      []string  `json:"tags"`
	Score     float64   `json:"score"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type IndexFailureResponse struct {
	NoteId     uuid.UUID `json:"noteId"`
	Operation  string    `json:"operation"`
	Error      string    `json:"error"`
	OccurredAt time.Time `json:"occurredAt"`
}

type ReindexResponse struct {
	NoteId uuid.UUID `json:"noteId"`
	// Action is "indexed" when the note exists and "removed" when it no longer does.
	Action string `json:"action"`
}

type ConsistencyLogEntry struct {
	Id        string                 `json:"id"`
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
}
