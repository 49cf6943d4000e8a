package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient is a globally unique ingredient. Category is the grouping key for
// shopping lists (e.g. "Gemüse", "Milchprodukte"). DefaultUnit is only a
// fallback for aggregation grouping; the unit on a recipe line wins.
type Ingredient struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
	DefaultUnit string    `gorm:"size:50" json:"default_unit"`
	Category    string    `gorm:"size:100;not null" json:"category"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
