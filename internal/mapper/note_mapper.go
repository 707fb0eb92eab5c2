package mapper

import (
	"notegraph-be/internal/entity"
	"notegraph-be/internal/model"

	"gorm.io/datatypes"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	tags := make([]string, len(n.Tags))
	copy(tags, n.Tags)

	metadata := make(map[string]interface{}, len(n.Metadata))
	for k, v := range n.Metadata {
		metadata[k] = v
	}

	return &entity.Note{
		Id:        n.Id,
		Title:     n.Title,
		Content:   n.Content,
		Type:      entity.NoteType(n.Type),
		Tags:      tags,
		Metadata:  metadata,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}

	noteType := n.Type
	if noteType == "" {
		noteType = entity.NoteTypeDocument
	}

	tags := datatypes.JSONSlice[string]{}
	if n.Tags != nil {
		tags = append(tags, n.Tags...)
	}

	metadata := datatypes.JSONMap{}
	for k, v := range n.Metadata {
		metadata[k] = v
	}

	return &model.Note{
		Id:        n.Id,
		Title:     n.Title,
		Content:   n.Content,
		Type:      string(noteType),
		Tags:      tags,
		Metadata:  metadata,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
