package service

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/freizeitplan/backend/internal/models"
	"github.com/freizeitplan/backend/internal/units"
)

// ShoppingItem is one line of the shopping list. Quantity and Unit are the
// display form; BaseQuantity and BaseUnit hold the canonical total the sum
// was computed in.
type ShoppingItem struct {
	IngredientID uuid.UUID `json:"ingredient_id"`
	Name         string    `json:"name"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
	BaseQuantity float64   `json:"base_quantity"`
	BaseUnit     string    `json:"base_unit"`
	Category     string    `json:"category"`
}

// ShoppingCategory groups items under one ingredient category, sorted by name.
type ShoppingCategory struct {
	Name  string         `json:"name"`
	Items []ShoppingItem `json:"items"`
}

// ShoppingList is the full, deterministic shopping list for a camp.
// Categories and the items within them are sorted by name, so repeated calls
// over unchanged data produce identical output.
type ShoppingList struct {
	CampID           uuid.UUID          `json:"camp_id"`
	CampName         string             `json:"camp_name"`
	ParticipantCount int                `json:"participant_count"`
	Categories       []ShoppingCategory `json:"categories"`
	TotalItems       int                `json:"total_items"`
	TotalRecipes     int                `json:"total_recipes"`
}

// ShoppingListService computes camp shopping lists. It never caches results;
// every call recomputes from current data.
type ShoppingListService struct {
	db       *gorm.DB
	settings *SettingsService
	logger   *zap.Logger
}

// NewShoppingListService creates a new ShoppingListService instance
func NewShoppingListService(db *gorm.DB, settings *SettingsService, logger *zap.Logger) *ShoppingListService {
	return &ShoppingListService{db: db, settings: settings, logger: logger.Named("shopping_list")}
}

// Calculate builds the shopping list for a camp: every meal plan entry with a
// recipe is scaled to the camp's participant count, the lines are aggregated
// per ingredient in canonical units, converted to display units, and grouped
// by category. A camp with no planned recipes yields an empty list.
func (s *ShoppingListService) Calculate(ctx context.Context, campID uuid.UUID) (*ShoppingList, error) {
	var camp models.Camp
	if err := s.db.WithContext(ctx).First(&camp, "id = ?", campID).Error; err != nil {
		return nil, err
	}

	var entries []models.MealPlanEntry
	err := s.db.WithContext(ctx).
		Where("camp_id = ? AND recipe_id IS NOT NULL", campID).
		Preload("Recipe.Ingredients.Ingredient").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	var lines []ScaledLine
	recipeIDs := make(map[uuid.UUID]struct{})
	for _, entry := range entries {
		if entry.Recipe == nil {
			// dangling reference; the persistence layer nulls these on
			// recipe deletion, so treat it as "no meal"
			continue
		}
		scaled, err := ScaleRecipe(entry.Recipe, camp.ParticipantCount)
		if err != nil {
			return nil, err
		}
		lines = append(lines, scaled.Lines...)
		recipeIDs[entry.Recipe.ID] = struct{}{}
	}

	totals, err := AggregateLines(lines)
	if err != nil {
		return nil, err
	}

	customRules, err := s.settings.DisplayRules(ctx)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string][]ShoppingItem)
	for _, agg := range totals {
		qty, unit := units.BestDisplayUnitWith(agg.Quantity, agg.Unit, customRules)
		item := ShoppingItem{
			IngredientID: agg.Ingredient.ID,
			Name:         agg.Ingredient.Name,
			Quantity:     qty,
			Unit:         unit,
			BaseQuantity: agg.Quantity,
			BaseUnit:     agg.Unit,
			Category:     agg.Ingredient.Category,
		}
		byCategory[item.Category] = append(byCategory[item.Category], item)
	}

	list := &ShoppingList{
		CampID:           camp.ID,
		CampName:         camp.Name,
		ParticipantCount: camp.ParticipantCount,
		Categories:       make([]ShoppingCategory, 0, len(byCategory)),
		TotalItems:       len(totals),
		TotalRecipes:     len(recipeIDs),
	}

	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		items := byCategory[name]
		sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
		list.Categories = append(list.Categories, ShoppingCategory{Name: name, Items: items})
	}

	s.logger.Debug("shopping list calculated",
		zap.String("camp_id", camp.ID.String()),
		zap.Int("items", list.TotalItems),
		zap.Int("recipes", list.TotalRecipes))

	return list, nil
}
