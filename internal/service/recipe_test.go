package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/freizeitplan/backend/internal/models"
	"github.com/freizeitplan/backend/internal/service"
)

func TestRecipeCreate(t *testing.T) {
	e := newEnv(t)

	recipe := e.createPancakes(t)
	assert.Equal(t, "Pfannkuchen", recipe.Name)
	assert.Equal(t, 20, recipe.BaseServings)
	require.Len(t, recipe.Ingredients, 2)
	assert.Equal(t, 1, recipe.CurrentVersion)
}

func TestRecipeCreateInvalidServings(t *testing.T) {
	e := newEnv(t)

	_, err := e.recipes.Create(context.Background(), service.RecipeInput{
		Name:         "Kaputt",
		BaseServings: 0,
	})
	assert.ErrorIs(t, err, service.ErrInvalidServings)
}

func TestRecipeUpdateReplacesLines(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	recipe := e.createPancakes(t)
	sugar := e.createIngredient(t, "Zucker", "g", "Backwaren")

	updated, err := e.recipes.Update(ctx, recipe.ID, service.RecipeInput{
		Name:         "Süße Pfannkuchen",
		BaseServings: 25,
		Ingredients: []service.RecipeLineInput{
			{IngredientID: sugar.ID, Quantity: 300, Unit: "g"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Süße Pfannkuchen", updated.Name)
	assert.Equal(t, 25, updated.BaseServings)
	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, sugar.ID, updated.Ingredients[0].IngredientID)
	assert.Equal(t, 2, updated.CurrentVersion)
}

func TestRecipeUpdateWithTagsAndAllergens(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	recipe := e.createPancakes(t)
	tag, err := e.taxonomy.GetOrCreateTag(ctx, "Vegetarisch")
	require.NoError(t, err)
	allergen, err := e.taxonomy.GetOrCreateAllergen(ctx, "Gluten")
	require.NoError(t, err)

	updated, err := e.recipes.Update(ctx, recipe.ID, service.RecipeInput{
		Name:         recipe.Name,
		BaseServings: recipe.BaseServings,
		TagIDs:       []uuid.UUID{tag.ID},
		AllergenIDs:  []uuid.UUID{allergen.ID},
	})
	require.NoError(t, err)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "Vegetarisch", updated.Tags[0].Name)
	require.Len(t, updated.Allergens, 1)
	assert.Equal(t, "Gluten", updated.Allergens[0].Name)
}

func TestRecipeListSearch(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.createPancakes(t)
	_, err := e.recipes.Create(ctx, service.RecipeInput{Name: "Nudelauflauf", BaseServings: 30})
	require.NoError(t, err)

	found, err := e.recipes.List(ctx, "pfann", nil)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Pfannkuchen", found[0].Name)

	all, err := e.recipes.List(ctx, "", nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRecipeListByTag(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	recipe := e.createPancakes(t)
	tag, err := e.taxonomy.GetOrCreateTag(ctx, "Frühstück")
	require.NoError(t, err)
	_, err = e.recipes.Update(ctx, recipe.ID, service.RecipeInput{
		Name:         recipe.Name,
		BaseServings: recipe.BaseServings,
		TagIDs:       []uuid.UUID{tag.ID},
	})
	require.NoError(t, err)

	_, err = e.recipes.Create(ctx, service.RecipeInput{Name: "Nudelauflauf", BaseServings: 30})
	require.NoError(t, err)

	found, err := e.recipes.List(ctx, "", []uuid.UUID{tag.ID})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, recipe.ID, found[0].ID)
}

func TestRecipeDeleteNullsMealPlanEntries(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	camp := e.createCamp(t, "Sommerfreizeit", 3, 40)
	recipe := e.createPancakes(t)
	entry := e.planMeal(t, camp.ID, &recipe.ID, camp.StartDate, models.MealBreakfast)

	require.NoError(t, e.recipes.Delete(ctx, recipe.ID))

	_, err := e.recipes.Get(ctx, recipe.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// the slot survives as a "no meal" placeholder
	kept, err := e.mealPlans.Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.RecipeID)

	// version log is gone with the recipe
	versions, err := e.versions.List(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Empty(t, versions)
}

func TestRecipeScale(t *testing.T) {
	e := newEnv(t)

	recipe := e.createPancakes(t)
	scaled, err := e.recipes.Scale(context.Background(), recipe.ID, 30)
	require.NoError(t, err)

	assert.InDelta(t, 1.5, scaled.Factor, 1e-9)
	require.Len(t, scaled.Lines, 2)
	for _, line := range scaled.Lines {
		switch line.Ingredient.Name {
		case "Mehl":
			assert.InDelta(t, 3000, line.Quantity, 1e-9)
		case "Milch":
			assert.InDelta(t, 1500, line.Quantity, 1e-9)
		default:
			t.Fatalf("unexpected ingredient %q", line.Ingredient.Name)
		}
	}
}
