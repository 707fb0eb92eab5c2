package implementation

import (
	"context"

	"notegraph-be/internal/entity"
	"notegraph-be/internal/mapper"
	"notegraph-be/internal/model"
	"notegraph-be/internal/repository/contract"
	"notegraph-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NoteLinkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NoteLinkMapper
}

func NewNoteLinkRepository(db *gorm.DB) contract.NoteLinkRepository {
	return &NoteLinkRepositoryImpl{
		db:     db,
		mapper: mapper.NewNoteLinkMapper(),
	}
}

func (r *NoteLinkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Create is idempotent on the (source, target) pair; an existing link is returned unchanged.
func (r *NoteLinkRepositoryImpl) Create(ctx context.Context, link *entity.NoteLink) error {
	m := r.mapper.ToModel(link)
	res := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var existing model.NoteLink
		pair := specification.ByLinkPair{SourceID: link.SourceId, TargetID: link.TargetId}
		if err := pair.Apply(r.db.WithContext(ctx)).First(&existing).Error; err != nil {
			return err
		}
		m = &existing
	}
	*link = *r.mapper.ToEntity(m)
	return nil
}

func (r *NoteLinkRepositoryImpl) Delete(ctx context.Context, sourceId, targetId uuid.UUID) (bool, error) {
	pair := specification.ByLinkPair{SourceID: sourceId, TargetID: targetId}
	res := pair.Apply(r.db.WithContext(ctx)).Delete(&model.NoteLink{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *NoteLinkRepositoryImpl) DeleteByNoteId(ctx context.Context, noteId uuid.UUID) error {
	return specification.TouchingNote{NoteID: noteId}.Apply(r.db.WithContext(ctx)).
		Delete(&model.NoteLink{}).Error
}

func (r *NoteLinkRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.NoteLink, error) {
	var models []*model.NoteLink
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *NoteLinkRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.NoteLink{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
