package model

import (
	"time"

	"github.com/google/uuid"
)

// NoteLink is unique on the ordered (source, target) pair; self-loops are allowed.
type NoteLink struct {
	SourceId  uuid.UUID `gorm:"type:uuid;primaryKey"`
	TargetId  uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Source *Note `gorm:"foreignKey:SourceId;references:Id;constraint:OnDelete:CASCADE"`
	Target *Note `gorm:"foreignKey:TargetId;references:Id;constraint:OnDelete:CASCADE"`
}

func (NoteLink) TableName() string {
	return "note_links"
}
