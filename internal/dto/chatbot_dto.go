package dto

import "github.com/google/uuid"

type ChatRequest struct {
	Question string `json:"question" validate:"required"`
}

type SourceNote struct {
	Id    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

type ChatResponse struct {
	Answer      string       `json:"answer"`
	SourceNotes []SourceNote `json:"sourceNotes"`
}

// ChatSocketMessage is one frame on the chat websocket, in either direction.
type ChatSocketMessage struct {
	Type     string        `json:"type"`
	Question string        `json:"question,omitempty"`
	Data     *ChatResponse `json:"data,omitempty"`
}
