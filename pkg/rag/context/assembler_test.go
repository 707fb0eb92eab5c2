package context

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"notegraph-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapLoader struct {
	mu       sync.Mutex
	notes    map[uuid.UUID]NoteContent
	delays   map[uuid.UUID]time.Duration
	failures map[uuid.UUID]error
	inFlight int
	peak     int
}

func (m *mapLoader) LoadNote(ctx context.Context, id uuid.UUID) (*NoteContent, error) {
	m.mu.Lock()
	m.inFlight++
	if m.inFlight > m.peak {
		m.peak = m.inFlight
	}
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.inFlight--
		m.mu.Unlock()
	}()

	if d := m.delays[id]; d > 0 {
		time.Sleep(d)
	}
	if err := m.failures[id]; err != nil {
		return nil, err
	}
	n, ok := m.notes[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return &n, nil
}

func TestFetchRankedKeepsRankOrder(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	loader := &mapLoader{
		notes: map[uuid.UUID]NoteContent{
			a: {ID: a, Title: "A"},
			b: {ID: b, Title: "B"},
			c: {ID: c, Title: "C"},
		},
		// first ranked note finishes last
		delays: map[uuid.UUID]time.Duration{a: 30 * time.Millisecond},
	}

	notes, err := NewFetcher(loader, 3).FetchRanked(context.Background(), []uuid.UUID{a, b, c})
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{notes[0].Title, notes[1].Title, notes[2].Title})
}

func TestFetchRankedDropsVanishedNotes(t *testing.T) {
	a, gone := uuid.New(), uuid.New()
	loader := &mapLoader{notes: map[uuid.UUID]NoteContent{a: {ID: a, Title: "A"}}}

	notes, err := NewFetcher(loader, 3).FetchRanked(context.Background(), []uuid.UUID{gone, a})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, a, notes[0].ID)
}

func TestFetchRankedDedupsIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	loader := &mapLoader{notes: map[uuid.UUID]NoteContent{a: {ID: a, Title: "A"}, b: {ID: b, Title: "B"}}}

	notes, err := NewFetcher(loader, 3).FetchRanked(context.Background(), []uuid.UUID{a, b, a})
	require.NoError(t, err)
	assert.Len(t, notes, 2)
}

func TestFetchRankedBoundsConcurrency(t *testing.T) {
	ids := make([]uuid.UUID, 6)
	loader := &mapLoader{notes: map[uuid.UUID]NoteContent{}, delays: map[uuid.UUID]time.Duration{}}
	for i := range ids {
		ids[i] = uuid.New()
		loader.notes[ids[i]] = NoteContent{ID: ids[i]}
		loader.delays[ids[i]] = 10 * time.Millisecond
	}

	_, err := NewFetcher(loader, 2).FetchRanked(context.Background(), ids)
	require.NoError(t, err)
	assert.LessOrEqual(t, loader.peak, 2)
}

func TestFetchRankedSurfacesStoreErrors(t *testing.T) {
	a := uuid.New()
	boom := errors.New("connection reset")
	loader := &mapLoader{failures: map[uuid.UUID]error{a: boom}}

	_, err := NewFetcher(loader, 3).FetchRanked(context.Background(), []uuid.UUID{a})
	assert.ErrorIs(t, err, boom)
}

func TestAssemble(t *testing.T) {
	out := Assemble([]NoteContent{
		{Title: "Cat", Content: "meows"},
		{Title: "Cat", Content: "also meows"},
	})
	assert.Equal(t, "Note \"Cat\": meows\n\nNote \"Cat\": also meows", out)
	assert.Equal(t, "", Assemble(nil))
}
