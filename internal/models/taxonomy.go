package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag labels recipes for filtering (many-to-many).
type Tag struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name  string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Color string    `gorm:"size:7;default:'#3B82F6'" json:"color"`
	Icon  string    `gorm:"size:50" json:"icon"`
}

func (Tag) TableName() string {
	return "tags"
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Allergen marks recipes that contain a given allergen (many-to-many).
type Allergen struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Icon string    `gorm:"size:50" json:"icon"`
}

func (Allergen) TableName() string {
	return "allergens"
}

func (a *Allergen) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
