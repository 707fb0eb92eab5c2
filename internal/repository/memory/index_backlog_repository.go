package memory

import (
	"context"
	"sort"
	"time"

	"notegraph-be/internal/entity"
	"notegraph-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// IndexBacklogRepository keeps the backlog in process memory.
// Used when Redis is not reachable; entries do not survive a restart.
type IndexBacklogRepository struct {
	cache *cache.Cache
}

var _ contract.IndexBacklogRepository = (*IndexBacklogRepository)(nil)

func NewIndexBacklogRepository() *IndexBacklogRepository {
	// Entries never expire on their own; only a successful re-index resolves them.
	c := cache.New(cache.NoExpiration, 10*time.Minute)
	return &IndexBacklogRepository{
		cache: c,
	}
}

func (r *IndexBacklogRepository) Record(ctx context.Context, failure *entity.IndexFailure) error {
	entry := *failure
	r.cache.Set(failure.NoteId.String(), &entry, cache.NoExpiration)
	return nil
}

func (r *IndexBacklogRepository) FindAll(ctx context.Context) ([]*entity.IndexFailure, error) {
	items := r.cache.Items()
	failures := make([]*entity.IndexFailure, 0, len(items))
	for _, item := range items {
		if f, ok := item.Object.(*entity.IndexFailure); ok {
			entry := *f
			failures = append(failures, &entry)
		}
	}
	sortFailures(failures)
	return failures, nil
}

func (r *IndexBacklogRepository) Resolve(ctx context.Context, noteId uuid.UUID) error {
	r.cache.Delete(noteId.String())
	return nil
}

func sortFailures(failures []*entity.IndexFailure) {
	sort.Slice(failures, func(i, j int) bool {
		if !failures[i].OccurredAt.Equal(failures[j].OccurredAt) {
			return failures[i].OccurredAt.Before(failures[j].OccurredAt)
		}
		return failures[i].NoteId.String() < failures[j].NoteId.String()
	})
}
