package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SnapshotIngredient is one ingredient line as it existed at snapshot time.
// The name is copied so the snapshot stays readable after the ingredient row
// is renamed or deleted.
type SnapshotIngredient struct {
	IngredientID uuid.UUID `json:"ingredient_id"`
	Name         string    `json:"name"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
}

// SnapshotTag is a tag as it existed at snapshot time.
type SnapshotTag struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// SnapshotAllergen is an allergen as it existed at snapshot time.
type SnapshotAllergen struct {
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// RecipeSnapshot is a self-contained copy of a recipe's editable state. Its
// schema is fixed here, independent of the live table columns, so old
// snapshots stay interpretable as the schema evolves.
type RecipeSnapshot struct {
	Name            string               `json:"name"`
	Description     string               `json:"description,omitempty"`
	BaseServings    int                  `json:"base_servings"`
	Instructions    string               `json:"instructions,omitempty"`
	PreparationTime int                  `json:"preparation_time,omitempty"`
	CookingTime     int                  `json:"cooking_time,omitempty"`
	AllergenNotes   string               `json:"allergen_notes,omitempty"`
	Ingredients     []SnapshotIngredient `json:"ingredients"`
	Tags            []SnapshotTag        `json:"tags"`
	Allergens       []SnapshotAllergen   `json:"allergens"`
}

// Value implements the driver.Valuer interface
func (s RecipeSnapshot) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements the sql.Scanner interface
func (s *RecipeSnapshot) Scan(value interface{}) error {
	if value == nil {
		*s = RecipeSnapshot{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into RecipeSnapshot", value)
	}

	return json.Unmarshal(bytes, s)
}

// RecipeVersion is one entry of a recipe's append-only edit log. Rows are
// write-once: never updated, never deleted while the recipe exists.
type RecipeVersion struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_version" json:"recipe_id"`
	VersionNumber int            `gorm:"not null;uniqueIndex:idx_recipe_version" json:"version_number"`
	Snapshot      RecipeSnapshot `gorm:"type:json;not null" json:"snapshot"`
	CreatedAt     time.Time      `json:"created_at"`
}

func (RecipeVersion) TableName() string {
	return "recipe_versions"
}

func (v *RecipeVersion) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
