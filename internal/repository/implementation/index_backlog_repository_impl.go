package implementation

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"notegraph-be/internal/entity"
	"notegraph-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const indexBacklogKey = "notegraph:index:backlog"

// IndexBacklogRepositoryImpl stores the backlog in a Redis hash so every instance and
// an external reconciliation job see the same set.
type IndexBacklogRepositoryImpl struct {
	rdb *redis.Client
}

func NewIndexBacklogRepository(rdb *redis.Client) contract.IndexBacklogRepository {
	return &IndexBacklogRepositoryImpl{
		rdb: rdb,
	}
}

func (r *IndexBacklogRepositoryImpl) Record(ctx context.Context, failure *entity.IndexFailure) error {
	data, err := json.Marshal(failure)
	if err != nil {
		return fmt.Errorf("marshal index failure: %w", err)
	}
	return r.rdb.HSet(ctx, indexBacklogKey, failure.NoteId.String(), data).Err()
}

func (r *IndexBacklogRepositoryImpl) FindAll(ctx context.Context) ([]*entity.IndexFailure, error) {
	values, err := r.rdb.HGetAll(ctx, indexBacklogKey).Result()
	if err != nil {
		return nil, err
	}

	failures := make([]*entity.IndexFailure, 0, len(values))
	for _, raw := range values {
		var f entity.IndexFailure
		if err := json.Unmarshal([]byte(raw), &f); err != nil {
			continue
		}
		failures = append(failures, &f)
	}

	sort.Slice(failures, func(i, j int) bool {
		if !failures[i].OccurredAt.Equal(failures[j].OccurredAt) {
			return failures[i].OccurredAt.Before(failures[j].OccurredAt)
		}
		return failures[i].NoteId.String() < failures[j].NoteId.String()
	})
	return failures, nil
}

func (r *IndexBacklogRepositoryImpl) Resolve(ctx context.Context, noteId uuid.UUID) error {
	return r.rdb.HDel(ctx, indexBacklogKey, noteId.String()).Err()
}
