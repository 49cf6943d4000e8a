package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/freizeitplan/backend/internal/models"
)

// VersionService maintains the append-only edit log of recipes. Versions are
// write-once; nothing here updates or deletes an existing row.
type VersionService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewVersionService creates a new VersionService instance
func NewVersionService(db *gorm.DB, logger *zap.Logger) *VersionService {
	return &VersionService{db: db, logger: logger.Named("versions")}
}

// Snapshot captures the recipe's current ingredient lines, tags and allergens
// as the next version. The version number is assigned inside a transaction
// holding a row lock on the recipe, so concurrent edits of the same recipe
// serialize and numbers stay gapless. The (recipe_id, version_number) unique
// index backs this up at the schema level.
func (s *VersionService) Snapshot(ctx context.Context, recipeID uuid.UUID) (*models.RecipeVersion, error) {
	var version *models.RecipeVersion

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var locked models.Recipe
		if err := q.First(&locked, "id = ?", recipeID).Error; err != nil {
			return err
		}

		var recipe models.Recipe
		err := tx.
			Preload("Ingredients.Ingredient").
			Preload("Tags").
			Preload("Allergens").
			First(&recipe, "id = ?", recipeID).Error
		if err != nil {
			return err
		}

		var maxVersion int
		err = tx.Model(&models.RecipeVersion{}).
			Where("recipe_id = ?", recipeID).
			Select("COALESCE(MAX(version_number), 0)").
			Scan(&maxVersion).Error
		if err != nil {
			return err
		}

		version = &models.RecipeVersion{
			RecipeID:      recipeID,
			VersionNumber: maxVersion + 1,
			Snapshot:      buildSnapshot(&recipe),
		}
		if err := tx.Create(version).Error; err != nil {
			return err
		}

		return tx.Model(&models.Recipe{}).
			Where("id = ?", recipeID).
			Update("current_version", version.VersionNumber).Error
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("recipe version created",
		zap.String("recipe_id", recipeID.String()),
		zap.Int("version", version.VersionNumber))

	return version, nil
}

// List returns all versions of a recipe, newest first.
func (s *VersionService) List(ctx context.Context, recipeID uuid.UUID) ([]models.RecipeVersion, error) {
	var versions []models.RecipeVersion
	err := s.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("version_number DESC").
		Find(&versions).Error
	if err != nil {
		return nil, err
	}
	return versions, nil
}

// Get returns one version of a recipe by version number.
func (s *VersionService) Get(ctx context.Context, recipeID uuid.UUID, versionNumber int) (*models.RecipeVersion, error) {
	var version models.RecipeVersion
	err := s.db.WithContext(ctx).
		First(&version, "recipe_id = ? AND version_number = ?", recipeID, versionNumber).Error
	if err != nil {
		return nil, err
	}
	return &version, nil
}

// buildSnapshot copies the recipe's editable state into the fixed snapshot
// schema. Names are duplicated on purpose so the snapshot survives renames
// and deletions of the referenced rows.
func buildSnapshot(recipe *models.Recipe) models.RecipeSnapshot {
	snap := models.RecipeSnapshot{
		Name:            recipe.Name,
		Description:     recipe.Description,
		BaseServings:    recipe.BaseServings,
		Instructions:    recipe.Instructions,
		PreparationTime: recipe.PreparationTime,
		CookingTime:     recipe.CookingTime,
		AllergenNotes:   recipe.AllergenNotes,
		Ingredients:     make([]models.SnapshotIngredient, 0, len(recipe.Ingredients)),
		Tags:            make([]models.SnapshotTag, 0, len(recipe.Tags)),
		Allergens:       make([]models.SnapshotAllergen, 0, len(recipe.Allergens)),
	}

	for _, ri := range recipe.Ingredients {
		snap.Ingredients = append(snap.Ingredients, models.SnapshotIngredient{
			IngredientID: ri.IngredientID,
			Name:         ri.Ingredient.Name,
			Quantity:     ri.Quantity,
			Unit:         ri.Unit,
		})
	}
	for _, tag := range recipe.Tags {
		snap.Tags = append(snap.Tags, models.SnapshotTag{Name: tag.Name, Color: tag.Color, Icon: tag.Icon})
	}
	for _, allergen := range recipe.Allergens {
		snap.Allergens = append(snap.Allergens, models.SnapshotAllergen{Name: allergen.Name, Icon: allergen.Icon})
	}

	return snap
}
