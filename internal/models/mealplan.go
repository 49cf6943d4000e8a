package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MealType is the closed set of meal slots per day. Free-text meal types are
// rejected at the binding boundary, never stored.
type MealType string

const (
	MealBreakfast MealType = "BREAKFAST"
	MealLunch     MealType = "LUNCH"
	MealDinner    MealType = "DINNER"
)

// MealTypes lists all valid meal types in day order.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner}

func (m MealType) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner:
		return true
	}
	return false
}

// ParseMealType validates a raw string against the closed meal type set.
func ParseMealType(s string) (MealType, error) {
	m := MealType(s)
	if !m.Valid() {
		return "", fmt.Errorf("invalid meal type %q", s)
	}
	return m, nil
}

// MealPlanEntry assigns a recipe to one meal slot of a camp. A nil RecipeID is
// an explicit "no meal" placeholder and contributes nothing to shopping lists.
type MealPlanEntry struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CampID   uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_meal_slot" json:"camp_id"`
	RecipeID *uuid.UUID `gorm:"type:uuid;index" json:"recipe_id"`
	MealDate time.Time  `gorm:"not null;uniqueIndex:idx_meal_slot" json:"meal_date"`
	MealType MealType   `gorm:"size:20;not null;uniqueIndex:idx_meal_slot" json:"meal_type"`
	Position int        `gorm:"not null;default:0;uniqueIndex:idx_meal_slot" json:"position"`
	Notes    string     `gorm:"type:text" json:"notes"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
}

func (MealPlanEntry) TableName() string {
	return "meal_plans"
}

func (m *MealPlanEntry) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
