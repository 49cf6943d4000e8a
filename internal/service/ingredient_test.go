package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/freizeitplan/backend/internal/service"
)

func TestIngredientCreateNormalizesUnit(t *testing.T) {
	e := newEnv(t)

	ing := e.createIngredient(t, "Mehl", "Gramm", "Backwaren")
	assert.Equal(t, "g", ing.DefaultUnit)
}

func TestIngredientListFiltered(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.createIngredient(t, "Mehl", "g", "Backwaren")
	e.createIngredient(t, "Vollkornmehl", "g", "Backwaren")
	e.createIngredient(t, "Milch", "ml", "Milchprodukte")

	found, err := e.ingredients.List(ctx, "mehl")
	require.NoError(t, err)
	require.Len(t, found, 2)

	all, err := e.ingredients.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	// ordered by name
	assert.Equal(t, "Mehl", all[0].Name)
}

func TestIngredientDeleteRefusedWhenUsed(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	recipe := e.createPancakes(t)
	flourID := recipe.Ingredients[0].IngredientID

	err := e.ingredients.Delete(ctx, flourID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "used by")

	// unused ingredients delete fine
	unused := e.createIngredient(t, "Safran", "g", "Gewürze")
	require.NoError(t, e.ingredients.Delete(ctx, unused.ID))
	_, err = e.ingredients.Get(ctx, unused.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestIngredientGetOrCreate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	first, err := e.ingredients.GetOrCreate(ctx, "Butter", "g", "Milchprodukte")
	require.NoError(t, err)
	second, err := e.ingredients.GetOrCreate(ctx, "Butter", "kg", "Sonstiges")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	// existing ingredient keeps its original unit and category
	assert.Equal(t, "g", second.DefaultUnit)
	assert.Equal(t, "Milchprodukte", second.Category)
}

func TestIngredientSuggestRanking(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.createIngredient(t, "Milch", "ml", "Milchprodukte")
	e.createIngredient(t, "Milchreis", "g", "Getreide")
	e.createIngredient(t, "Buttermilch", "ml", "Milchprodukte")
	e.createIngredient(t, "Mehl", "g", "Backwaren")

	suggestions, err := e.ingredients.Suggest(ctx, "milch", 10)
	require.NoError(t, err)
	require.Len(t, suggestions, 3)

	// exact match first, then prefix, then substring
	assert.Equal(t, "Milch", suggestions[0].Ingredient.Name)
	assert.Equal(t, 100, suggestions[0].Score)
	assert.Equal(t, "Milchreis", suggestions[1].Ingredient.Name)
	assert.Equal(t, 95, suggestions[1].Score)
	assert.Equal(t, "Buttermilch", suggestions[2].Ingredient.Name)
	assert.Equal(t, 85, suggestions[2].Score)
}

func TestIngredientSuggestLimit(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.createIngredient(t, "Milch", "ml", "Milchprodukte")
	e.createIngredient(t, "Milchreis", "g", "Getreide")
	e.createIngredient(t, "Buttermilch", "ml", "Milchprodukte")

	suggestions, err := e.ingredients.Suggest(ctx, "milch", 2)
	require.NoError(t, err)
	assert.Len(t, suggestions, 2)
}

func TestIngredientSuggestUsageTieBreaker(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.createIngredient(t, "Milcheis", "g", "Sonstiges")
	reis := e.createIngredient(t, "Milchreis", "g", "Getreide")

	// reference one of the prefix matches from a recipe
	_, err := e.recipes.Create(ctx, service.RecipeInput{
		Name:         "Milchreis mit Zimt",
		BaseServings: 30,
		Ingredients: []service.RecipeLineInput{
			{IngredientID: reis.ID, Quantity: 3000, Unit: "g"},
		},
	})
	require.NoError(t, err)

	suggestions, err := e.ingredients.Suggest(ctx, "milch", 10)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	assert.Equal(t, "Milchreis", suggestions[0].Ingredient.Name)
	assert.Equal(t, 1, suggestions[0].UsageCount)
}

func TestIngredientSuggestEmptyQuery(t *testing.T) {
	e := newEnv(t)

	suggestions, err := e.ingredients.Suggest(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}
