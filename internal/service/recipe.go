package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/freizeitplan/backend/internal/models"
)

// RecipeLineInput is one ingredient line of a recipe create/update.
type RecipeLineInput struct {
	IngredientID uuid.UUID `json:"ingredient_id"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
}

// RecipeInput carries the editable state of a recipe. On update, ingredient
// lines and the tag/allergen sets are replaced wholesale when present.
type RecipeInput struct {
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	BaseServings    int               `json:"base_servings"`
	Instructions    string            `json:"instructions"`
	PreparationTime int               `json:"preparation_time"`
	CookingTime     int               `json:"cooking_time"`
	AllergenNotes   string            `json:"allergen_notes"`
	Ingredients     []RecipeLineInput `json:"ingredients"`
	TagIDs          []uuid.UUID       `json:"tag_ids"`
	AllergenIDs     []uuid.UUID       `json:"allergen_ids"`
}

// RecipeService handles recipe operations. Every successful create or update
// is followed by a version snapshot.
type RecipeService struct {
	db       *gorm.DB
	versions *VersionService
	logger   *zap.Logger
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, versions *VersionService, logger *zap.Logger) *RecipeService {
	return &RecipeService{db: db, versions: versions, logger: logger.Named("recipes")}
}

// Create creates a recipe with its ingredient lines, tags and allergens, and
// records version 1.
func (s *RecipeService) Create(ctx context.Context, input RecipeInput) (*models.Recipe, error) {
	if input.BaseServings <= 0 {
		return nil, fmt.Errorf("%w: base_servings must be positive, got %d", ErrInvalidServings, input.BaseServings)
	}

	recipe := &models.Recipe{
		Name:            input.Name,
		Description:     input.Description,
		BaseServings:    input.BaseServings,
		Instructions:    input.Instructions,
		PreparationTime: input.PreparationTime,
		CookingTime:     input.CookingTime,
		AllergenNotes:   input.AllergenNotes,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		if err := s.replaceLines(tx, recipe.ID, input.Ingredients); err != nil {
			return err
		}
		if err := s.replaceAssociations(tx, recipe, input.TagIDs, input.AllergenIDs); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.versions.Snapshot(ctx, recipe.ID); err != nil {
		return nil, err
	}

	s.logger.Info("recipe created", zap.String("id", recipe.ID.String()), zap.String("name", recipe.Name))
	return s.Get(ctx, recipe.ID)
}

// Update replaces the recipe's fields, ingredient lines, tags and allergens,
// and records the next version.
func (s *RecipeService) Update(ctx context.Context, id uuid.UUID, input RecipeInput) (*models.Recipe, error) {
	if input.BaseServings <= 0 {
		return nil, fmt.Errorf("%w: base_servings must be positive, got %d", ErrInvalidServings, input.BaseServings)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", id).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"name":             input.Name,
			"description":      input.Description,
			"base_servings":    input.BaseServings,
			"instructions":     input.Instructions,
			"preparation_time": input.PreparationTime,
			"cooking_time":     input.CookingTime,
			"allergen_notes":   input.AllergenNotes,
		}
		if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := s.replaceLines(tx, id, input.Ingredients); err != nil {
			return err
		}
		return s.replaceAssociations(tx, &recipe, input.TagIDs, input.AllergenIDs)
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.versions.Snapshot(ctx, id); err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// Get retrieves a recipe with its lines, tags and allergens.
func (s *RecipeService) Get(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients.Ingredient").
		Preload("Tags").
		Preload("Allergens").
		First(&recipe, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// List returns recipes, newest-edited first, optionally filtered by a
// name/description search term and a set of tag IDs.
func (s *RecipeService) List(ctx context.Context, search string, tagIDs []uuid.UUID) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{})

	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if len(tagIDs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", tagIDs).
			Distinct()
	}

	var recipes []models.Recipe
	err := query.
		Preload("Ingredients.Ingredient").
		Preload("Tags").
		Preload("Allergens").
		Order("recipes.updated_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// Delete removes a recipe. Meal plan entries that reference it are nulled out
// into "no meal" placeholders rather than deleted; its ingredient lines and
// version log go with it.
func (s *RecipeService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", id).Error; err != nil {
			return err
		}

		err := tx.Model(&models.MealPlanEntry{}).
			Where("recipe_id = ?", id).
			Update("recipe_id", nil).Error
		if err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Allergens").Clear(); err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeVersion{}).Error; err != nil {
			return err
		}

		return tx.Delete(&recipe).Error
	})
}

// Scale loads a recipe and scales it to the target participant count.
func (s *RecipeService) Scale(ctx context.Context, id uuid.UUID, participants int) (*ScaledRecipe, error) {
	recipe, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return ScaleRecipe(recipe, participants)
}

func (s *RecipeService) replaceLines(tx *gorm.DB, recipeID uuid.UUID, lines []RecipeLineInput) error {
	for _, line := range lines {
		ri := models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: line.IngredientID,
			Quantity:     line.Quantity,
			Unit:         line.Unit,
		}
		if err := tx.Create(&ri).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *RecipeService) replaceAssociations(tx *gorm.DB, recipe *models.Recipe, tagIDs, allergenIDs []uuid.UUID) error {
	var tags []models.Tag
	if len(tagIDs) > 0 {
		if err := tx.Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
			return err
		}
	}
	if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
		return err
	}

	var allergens []models.Allergen
	if len(allergenIDs) > 0 {
		if err := tx.Where("id IN ?", allergenIDs).Find(&allergens).Error; err != nil {
			return err
		}
	}
	return tx.Model(recipe).Association("Allergens").Replace(allergens)
}
