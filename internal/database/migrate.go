package database

import (
	"gorm.io/gorm"

	"github.com/freizeitplan/backend/internal/models"
)

// RunMigrations brings the schema up to date using GORM auto-migration. The
// composite unique indexes on meal slots and recipe versions are part of the
// model tags and created here.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Camp{},
		&models.Ingredient{},
		&models.Tag{},
		&models.Allergen{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.RecipeVersion{},
		&models.MealPlanEntry{},
		&models.Setting{},
	)
}
