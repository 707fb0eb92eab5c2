package implementation

import (
	"context"
	"os"
	"testing"
	"time"

	"notegraph-be/internal/entity"
	"notegraph-be/internal/model"
	"notegraph-be/internal/repository/specification"
	"notegraph-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, false)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Note{}, &model.NoteLink{}))
	return db
}

func TestNoteAndLinkRepositories(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	notes := NewNoteRepository(db)
	links := NewNoteLinkRepository(db)

	newNote := func(title string) *entity.Note {
		n := &entity.Note{Id: uuid.New(), Title: title, Tags: []string{"it"}, CreatedAt: time.Now(), UpdatedAt: time.Now()}
		require.NoError(t, notes.Create(ctx, n))
		t.Cleanup(func() { notes.Delete(ctx, n.Id) })
		return n
	}
	a := newNote("integration a")
	b := newNote("integration b")

	t.Run("defaults", func(t *testing.T) {
		got, err := notes.FindOne(ctx, specification.ByID{ID: a.Id})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, entity.NoteTypeDocument, got.Type)
		assert.Equal(t, []string{"it"}, got.Tags)
		assert.NotNil(t, got.Metadata)
	})

	t.Run("missing note", func(t *testing.T) {
		got, err := notes.FindOne(ctx, specification.ByID{ID: uuid.New()})
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("link is idempotent on the pair", func(t *testing.T) {
		first := &entity.NoteLink{SourceId: a.Id, TargetId: b.Id, CreatedAt: time.Now()}
		require.NoError(t, links.Create(ctx, first))
		second := &entity.NoteLink{SourceId: a.Id, TargetId: b.Id, CreatedAt: time.Now().Add(time.Hour)}
		require.NoError(t, links.Create(ctx, second))
		assert.WithinDuration(t, first.CreatedAt, second.CreatedAt, time.Second)

		n, err := links.Count(ctx, specification.ByLinkPair{SourceID: a.Id, TargetID: b.Id})
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, links.Create(ctx, &entity.NoteLink{SourceId: b.Id, TargetId: a.Id, CreatedAt: time.Now()}))

		removed, err := links.Delete(ctx, b.Id, a.Id)
		require.NoError(t, err)
		assert.True(t, removed)
		removed, err = links.Delete(ctx, b.Id, a.Id)
		require.NoError(t, err)
		assert.False(t, removed)

		require.NoError(t, links.DeleteByNoteId(ctx, a.Id))
		n, err := links.Count(ctx, specification.TouchingNote{NoteID: a.Id})
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}
