package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/freizeitplan/backend/internal/models"
	"github.com/freizeitplan/backend/internal/service"
	"github.com/freizeitplan/backend/internal/testdb"
)

// env bundles all services over one fresh test database.
type env struct {
	db          *gorm.DB
	settings    *service.SettingsService
	versions    *service.VersionService
	camps       *service.CampService
	recipes     *service.RecipeService
	ingredients *service.IngredientService
	taxonomy    *service.TaxonomyService
	mealPlans   *service.MealPlanService
	shopping    *service.ShoppingListService
	stats       *service.StatsService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testdb.Setup(t)
	logger := zap.NewNop()

	settings := service.NewSettingsService(db)
	versions := service.NewVersionService(db, logger)
	return &env{
		db:          db,
		settings:    settings,
		versions:    versions,
		camps:       service.NewCampService(db, logger),
		recipes:     service.NewRecipeService(db, versions, logger),
		ingredients: service.NewIngredientService(db, nil, logger),
		taxonomy:    service.NewTaxonomyService(db),
		mealPlans:   service.NewMealPlanService(db, logger),
		shopping:    service.NewShoppingListService(db, settings, logger),
		stats:       service.NewStatsService(db),
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (e *env) createCamp(t *testing.T, name string, days, participants int) *models.Camp {
	t.Helper()
	start := date(2026, time.July, 1)
	camp, err := e.camps.Create(context.Background(), service.CampInput{
		Name:             name,
		StartDate:        start,
		EndDate:          start.AddDate(0, 0, days-1),
		ParticipantCount: participants,
	})
	require.NoError(t, err)
	return camp
}

func (e *env) createIngredient(t *testing.T, name, unit, category string) *models.Ingredient {
	t.Helper()
	ing, err := e.ingredients.Create(context.Background(), service.IngredientInput{
		Name:        name,
		DefaultUnit: unit,
		Category:    category,
	})
	require.NoError(t, err)
	return ing
}

// createPancakes seeds the canonical test recipe: 2 kg flour and 1 L milk
// for 20 servings.
func (e *env) createPancakes(t *testing.T) *models.Recipe {
	t.Helper()
	flour := e.createIngredient(t, "Mehl", "g", "Backwaren")
	milk := e.createIngredient(t, "Milch", "ml", "Milchprodukte")

	recipe, err := e.recipes.Create(context.Background(), service.RecipeInput{
		Name:         "Pfannkuchen",
		BaseServings: 20,
		Ingredients: []service.RecipeLineInput{
			{IngredientID: flour.ID, Quantity: 2000, Unit: "g"},
			{IngredientID: milk.ID, Quantity: 1000, Unit: "ml"},
		},
	})
	require.NoError(t, err)
	return recipe
}

func (e *env) planMeal(t *testing.T, campID uuid.UUID, recipeID *uuid.UUID, day time.Time, mealType models.MealType) *models.MealPlanEntry {
	t.Helper()
	entry, err := e.mealPlans.Create(context.Background(), service.MealPlanInput{
		CampID:   campID,
		RecipeID: recipeID,
		MealDate: day,
		MealType: mealType,
	})
	require.NoError(t, err)
	return entry
}
