package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Note struct {
	Id        uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title     string                      `gorm:"type:varchar(255);not null"`
	Content   string                      `gorm:"type:text"`
	Type      string                      `gorm:"type:varchar(16);not null;default:'document';index"`
	Tags      datatypes.JSONSlice[string] `gorm:"type:jsonb;default:'[]'"`
	Metadata  datatypes.JSONMap           `gorm:"type:jsonb;default:'{}'"`
	CreatedAt time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt time.Time                   `gorm:"autoUpdateTime"`
}

func (Note) TableName() string {
	return "notes"
}
