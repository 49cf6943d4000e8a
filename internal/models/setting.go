package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Setting is a JSON-encoded key/value pair of the application settings store.
type Setting struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Key   string    `gorm:"size:100;not null;uniqueIndex" json:"key"`
	Value string    `gorm:"type:text;not null" json:"value"`
}

func (Setting) TableName() string {
	return "app_settings"
}

func (s *Setting) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
