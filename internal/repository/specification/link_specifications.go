package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BySourceID selects outgoing links of a note
type BySourceID struct {
	SourceID uuid.UUID
}

func (s BySourceID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source_id = ?", s.SourceID)
}

// ByTargetID selects incoming links of a note
type ByTargetID struct {
	TargetID uuid.UUID
}

func (s ByTargetID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("target_id = ?", s.TargetID)
}

// ByLinkPair selects the single link for an ordered pair
type ByLinkPair struct {
	SourceID uuid.UUID
	TargetID uuid.UUID
}

func (s ByLinkPair) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source_id = ? AND target_id = ?", s.SourceID, s.TargetID)
}

// TouchingNote selects links in either direction
type TouchingNote struct {
	NoteID uuid.UUID
}

func (s TouchingNote) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source_id = ? OR target_id = ?", s.NoteID, s.NoteID)
}
