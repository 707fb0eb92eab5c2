package dto

import "github.com/google/uuid"

type ContentRequest struct {
	Content string `json:"content" validate:"required"`
}

type LinkSuggestion struct {
	Id     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Reason string    `json:"reason"`
}

type TagsResponse struct {
	Tags []string `json:"tags"`
}

type ImproveWritingResponse struct {
	Content string `json:"content"`
}

type SummaryResponse struct {
	Summary string `json:"summary"`
}
