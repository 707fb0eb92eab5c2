package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title    string                 `json:"title" validate:"required,max=255"`
	Content  string                 `json:"content"`
	Type     string                 `json:"type" validate:"omitempty,oneof=document outline"`
	Tags     []string               `json:"tags" validate:"omitempty,dive,required,max=64"`
	Metadata map[string]interface{} `json:"metadata"`
}

// UpdateNoteRequest is partial: nil fields keep their stored value.
type UpdateNoteRequest struct {
	Id       uuid.UUID              `json:"-"`
	Title    *string                `json:"title" validate:"omitempty,min=1,max=255"`
	Content  *string                `json:"content"`
	Type     *string                `json:"type" validate:"omitempty,oneof=document outline"`
	Tags     *[]string              `json:"tags"`
	Metadata map[string]interface{} `json:"metadata"`
}

// WriteNoteResponse reports the store outcome and, separately, whether search saw the write.
type WriteNoteResponse struct {
	Id            uuid.UUID `json:"id"`
	SearchIndexed bool      `json:"searchIndexed"`
}

type NoteResponse struct {
	Id        uuid.UUID              `json:"id"`
	Title     string                 `json:"title"`
	Content   string                 `json:"content"`
	Type      string                 `json:"type"`
	Tags      []string               `json:"tags"`
	Metadata  map[string]interface{} `json:"metadata"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

type LinkedNote struct {
	Id       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	LinkedAt time.Time `json:"linkedAt"`
}

type ShowNoteResponse struct {
	NoteResponse
	OutgoingLinks []LinkedNote `json:"outgoingLinks"`
	IncomingLinks []LinkedNote `json:"incomingLinks"`
}

type CreateLinkRequest struct {
	SourceId uuid.UUID `json:"-"`
	TargetId uuid.UUID `json:"targetId" validate:"required"`
}

type LinkResponse struct {
	SourceId  uuid.UUID `json:"sourceId"`
	TargetId  uuid.UUID `json:"targetId"`
	CreatedAt time.Time `json:"createdAt"`
}
