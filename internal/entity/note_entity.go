package entity

import (
	"time"

	"github.com/google/uuid"
)

type NoteType string

const (
	NoteTypeDocument NoteType = "document"
	NoteTypeOutline  NoteType = "outline"
)

func (t NoteType) Valid() bool {
	return t == NoteTypeDocument || t == NoteTypeOutline
}

type Note struct {
	Id        uuid.UUID
	Title     string
	Content   string
	Type      NoteType
	Tags      []string
	Metadata  map[string]interface{}
	CreatedAt time.Time
	UpdatedAt time.Time

	// Populated only when the note is loaded with its links expanded
	OutgoingLinks []*NoteLink
	IncomingLinks []*NoteLink
}
