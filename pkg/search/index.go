package search

import (
	"context"
	"time"
)

// Document is the searchable projection of a note.
type Document struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Hit struct {
	ID         string
	Score      float64
	Source     Document
	Highlights map[string][]string
}

type Result struct {
	Total int
	Hits  []Hit
}

// Index is the full-text side of note storage. It is never the source of truth.
type Index interface {
	EnsureIndex(ctx context.Context) error
	IndexDocument(ctx context.Context, id string, doc Document) error
	// UpdateDocument creates the document when it is missing.
	UpdateDocument(ctx context.Context, id string, doc Document) error
	// DeleteDocument succeeds when the document is already gone.
	DeleteDocument(ctx context.Context, id string) error
	Query(ctx context.Context, req Request) (*Result, error)
}
