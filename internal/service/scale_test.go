package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freizeitplan/backend/internal/models"
)

func pancakeRecipe() *models.Recipe {
	flour := models.Ingredient{ID: uuid.New(), Name: "Mehl", DefaultUnit: "g", Category: "Backwaren"}
	milk := models.Ingredient{ID: uuid.New(), Name: "Milch", DefaultUnit: "ml", Category: "Milchprodukte"}
	eggs := models.Ingredient{ID: uuid.New(), Name: "Eier", DefaultUnit: "Stück", Category: "Milchprodukte"}

	return &models.Recipe{
		ID:           uuid.New(),
		Name:         "Pfannkuchen",
		BaseServings: 20,
		Ingredients: []models.RecipeIngredient{
			{Ingredient: flour, IngredientID: flour.ID, Quantity: 2000, Unit: "g"},
			{Ingredient: milk, IngredientID: milk.ID, Quantity: 1000, Unit: "ml"},
			{Ingredient: eggs, IngredientID: eggs.ID, Quantity: 20, Unit: "Stück"},
		},
	}
}

func TestScaleRecipe(t *testing.T) {
	recipe := pancakeRecipe()

	scaled, err := ScaleRecipe(recipe, 30)
	require.NoError(t, err)

	assert.InDelta(t, 1.5, scaled.Factor, 1e-9)
	assert.Equal(t, 30, scaled.TargetServings)
	assert.Equal(t, 20, scaled.BaseServings)
	require.Len(t, scaled.Lines, 3)

	assert.InDelta(t, 3000, scaled.Lines[0].Quantity, 1e-9)
	assert.Equal(t, "g", scaled.Lines[0].Unit)
	assert.InDelta(t, 1500, scaled.Lines[1].Quantity, 1e-9)
	assert.Equal(t, "ml", scaled.Lines[1].Unit)
	assert.InDelta(t, 30, scaled.Lines[2].Quantity, 1e-9)
	assert.Equal(t, "Stück", scaled.Lines[2].Unit)
}

func TestScaleRecipeDown(t *testing.T) {
	recipe := pancakeRecipe()

	scaled, err := ScaleRecipe(recipe, 10)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, scaled.Factor, 1e-9)
	assert.InDelta(t, 1000, scaled.Lines[0].Quantity, 1e-9)
}

func TestScaleRecipeIdentity(t *testing.T) {
	recipe := pancakeRecipe()

	scaled, err := ScaleRecipe(recipe, 20)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, scaled.Factor, 1e-9)
	for i, line := range scaled.Lines {
		assert.InDelta(t, recipe.Ingredients[i].Quantity, line.Quantity, 1e-9)
	}
}

func TestScaleRecipeLinearity(t *testing.T) {
	recipe := pancakeRecipe()

	doubled, err := ScaleRecipe(recipe, 40)
	require.NoError(t, err)
	single, err := ScaleRecipe(recipe, 20)
	require.NoError(t, err)

	for i := range doubled.Lines {
		assert.InDelta(t, single.Lines[i].Quantity*2, doubled.Lines[i].Quantity, 1e-9)
	}
}

func TestScaleRecipeInvalidBaseServings(t *testing.T) {
	recipe := pancakeRecipe()
	recipe.BaseServings = 0

	_, err := ScaleRecipe(recipe, 30)
	assert.ErrorIs(t, err, ErrInvalidServings)
}

func TestScaleRecipeNoLines(t *testing.T) {
	recipe := &models.Recipe{ID: uuid.New(), Name: "Leer", BaseServings: 10}

	scaled, err := ScaleRecipe(recipe, 25)
	require.NoError(t, err)
	assert.Empty(t, scaled.Lines)
	assert.InDelta(t, 2.5, scaled.Factor, 1e-9)
}
