package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/freizeitplan/backend/internal/models"
)

// MealPlanInput carries one meal plan entry to create. A nil RecipeID is the
// explicit "no meal" placeholder.
type MealPlanInput struct {
	CampID   uuid.UUID       `json:"camp_id"`
	RecipeID *uuid.UUID      `json:"recipe_id"`
	MealDate time.Time       `json:"meal_date"`
	MealType models.MealType `json:"meal_type"`
	Notes    string          `json:"notes"`
}

// MealPlanService handles the meal plan calendar of a camp.
type MealPlanService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewMealPlanService creates a new MealPlanService instance
func NewMealPlanService(db *gorm.DB, logger *zap.Logger) *MealPlanService {
	return &MealPlanService{db: db, logger: logger.Named("meal_plans")}
}

// Create adds an entry to a meal slot. The position within the
// (camp, date, meal type) slot is assigned as the current slot size, keeping
// the slot's unique index satisfied.
func (s *MealPlanService) Create(ctx context.Context, input MealPlanInput) (*models.MealPlanEntry, error) {
	var entry *models.MealPlanEntry

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var camp models.Camp
		if err := tx.First(&camp, "id = ?", input.CampID).Error; err != nil {
			return err
		}
		if input.RecipeID != nil {
			var recipe models.Recipe
			if err := tx.First(&recipe, "id = ?", *input.RecipeID).Error; err != nil {
				return err
			}
		}

		var count int64
		err := tx.Model(&models.MealPlanEntry{}).
			Where("camp_id = ? AND meal_date = ? AND meal_type = ?", input.CampID, input.MealDate, input.MealType).
			Count(&count).Error
		if err != nil {
			return err
		}

		entry = &models.MealPlanEntry{
			CampID:   input.CampID,
			RecipeID: input.RecipeID,
			MealDate: input.MealDate,
			MealType: input.MealType,
			Position: int(count),
			Notes:    input.Notes,
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// CreateBulk creates several entries in one transaction-per-entry sweep and
// returns them in input order.
func (s *MealPlanService) CreateBulk(ctx context.Context, inputs []MealPlanInput) ([]models.MealPlanEntry, error) {
	entries := make([]models.MealPlanEntry, 0, len(inputs))
	for _, input := range inputs {
		entry, err := s.Create(ctx, input)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, nil
}

// Get retrieves one entry with its recipe.
func (s *MealPlanService) Get(ctx context.Context, id uuid.UUID) (*models.MealPlanEntry, error) {
	var entry models.MealPlanEntry
	err := s.db.WithContext(ctx).
		Preload("Recipe").
		First(&entry, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListForCamp returns all entries of a camp ordered by date, meal type and
// position.
func (s *MealPlanService) ListForCamp(ctx context.Context, campID uuid.UUID) ([]models.MealPlanEntry, error) {
	var entries []models.MealPlanEntry
	err := s.db.WithContext(ctx).
		Where("camp_id = ?", campID).
		Preload("Recipe").
		Order("meal_date, meal_type, position").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Update changes an entry's recipe reference and notes.
func (s *MealPlanService) Update(ctx context.Context, id uuid.UUID, recipeID *uuid.UUID, notes string) (*models.MealPlanEntry, error) {
	var entry models.MealPlanEntry
	if err := s.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"recipe_id": recipeID,
		"notes":     notes,
	}
	if err := s.db.WithContext(ctx).Model(&entry).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes one entry.
func (s *MealPlanService) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.MealPlanEntry{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Copy duplicates an entry into another slot. When targetType is empty the
// source's meal type is kept.
func (s *MealPlanService) Copy(ctx context.Context, id uuid.UUID, targetDate time.Time, targetType models.MealType) (*models.MealPlanEntry, error) {
	original, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if targetType == "" {
		targetType = original.MealType
	}
	return s.Create(ctx, MealPlanInput{
		CampID:   original.CampID,
		RecipeID: original.RecipeID,
		MealDate: targetDate,
		MealType: targetType,
		Notes:    original.Notes,
	})
}
