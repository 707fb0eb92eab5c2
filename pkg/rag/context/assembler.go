package context

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"notegraph-be/internal/pkg/apperror"

	"github.com/google/uuid"
)

// DefaultFanOut is how many retrieved notes are read back from the store for grounding.
const DefaultFanOut = 3

// NoteContent is a note as it is handed to the model.
type NoteContent struct {
	ID      uuid.UUID
	Title   string
	Content string
}

// NoteLoader returns apperror.ErrNotFound (or nil, nil) for ids that no longer resolve.
type NoteLoader interface {
	LoadNote(ctx context.Context, id uuid.UUID) (*NoteContent, error)
}

// Fetcher reads ranked note ids back from the source of truth.
type Fetcher struct {
	loader        NoteLoader
	maxConcurrent int
}

func NewFetcher(loader NoteLoader, maxConcurrent int) *Fetcher {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultFanOut
	}
	return &Fetcher{loader: loader, maxConcurrent: maxConcurrent}
}

// FetchRanked loads ids concurrently and returns the surviving notes in the order
// of ids, whatever order the reads complete in. Duplicate ids collapse to their
// first position; notes deleted since retrieval are skipped.
func (f *Fetcher) FetchRanked(ctx context.Context, ids []uuid.UUID) ([]NoteContent, error) {
	ranked := dedupIDs(ids)
	slots := make([]*NoteContent, len(ranked))
	errs := make([]error, len(ranked))

	sem := make(chan struct{}, f.maxConcurrent)
	var wg sync.WaitGroup

	for i, id := range ranked {
		wg.Add(1)
		go func(i int, id uuid.UUID) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			note, err := f.loader.LoadNote(ctx, id)
			if err != nil {
				if !errors.Is(err, apperror.ErrNotFound) {
					errs[i] = fmt.Errorf("load note %s: %w", id, err)
				}
				return
			}
			slots[i] = note
		}(i, id)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	notes := make([]NoteContent, 0, len(slots))
	for _, n := range slots {
		if n != nil {
			notes = append(notes, *n)
		}
	}
	return notes, nil
}

// Assemble renders notes as the grounding context, one block per note.
func Assemble(notes []NoteContent) string {
	blocks := make([]string, 0, len(notes))
	for _, n := range notes {
		blocks = append(blocks, fmt.Sprintf("Note \"%s\": %s", n.Title, n.Content))
	}
	return strings.Join(blocks, "\n\n")
}

func dedupIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
