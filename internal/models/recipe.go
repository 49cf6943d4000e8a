package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe is a globally reusable set of ingredient lines defined for a base
// serving count. Quantities stored on its lines assume BaseServings portions.
type Recipe struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string    `gorm:"size:255;not null" json:"name"`
	Description     string    `gorm:"type:text" json:"description"`
	BaseServings    int       `gorm:"not null;default:30" json:"base_servings"`
	Instructions    string    `gorm:"type:text" json:"instructions"`
	PreparationTime int       `json:"preparation_time"` // minutes
	CookingTime     int       `json:"cooking_time"`     // minutes
	AllergenNotes   string    `gorm:"type:text" json:"allergen_notes"`
	CurrentVersion  int       `gorm:"not null;default:0" json:"current_version"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients,omitempty"`
	Tags        []Tag              `gorm:"many2many:recipe_tags" json:"tags,omitempty"`
	Allergens   []Allergen         `gorm:"many2many:recipe_allergens" json:"allergens,omitempty"`
}

func (Recipe) TableName() string {
	return "recipes"
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeIngredient is one ingredient line of a recipe. Unit is the unit as
// used in this recipe and may differ from the ingredient's default unit; it is
// authoritative for scaling and aggregation.
type RecipeIngredient struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID     uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	IngredientID uuid.UUID `gorm:"type:uuid;not null;index" json:"ingredient_id"`
	Quantity     float64   `gorm:"not null" json:"quantity"`
	Unit         string    `gorm:"size:50;not null" json:"unit"`

	Ingredient Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

func (ri *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}
