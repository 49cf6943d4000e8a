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

func TestMealPlanCreate(t *testing.T) {
	e := newEnv(t)

	camp := e.createCamp(t, "Sommerfreizeit", 3, 40)
	recipe := e.createPancakes(t)

	entry := e.planMeal(t, camp.ID, &recipe.ID, camp.StartDate, models.MealBreakfast)
	assert.Equal(t, 0, entry.Position)
	assert.Equal(t, models.MealBreakfast, entry.MealType)
	require.NotNil(t, entry.RecipeID)
	assert.Equal(t, recipe.ID, *entry.RecipeID)
}

func TestMealPlanCreateNoMealPlaceholder(t *testing.T) {
	e := newEnv(t)

	camp := e.createCamp(t, "Sommerfreizeit", 3, 40)
	entry := e.planMeal(t, camp.ID, nil, camp.StartDate, models.MealDinner)
	assert.Nil(t, entry.RecipeID)
}

func TestMealPlanCreateUnknownCamp(t *testing.T) {
	e := newEnv(t)

	_, err := e.mealPlans.Create(context.Background(), service.MealPlanInput{
		CampID:   uuid.New(),
		MealDate: date(2026, 7, 1),
		MealType: models.MealLunch,
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMealPlanCreateUnknownRecipe(t *testing.T) {
	e := newEnv(t)

	camp := e.createCamp(t, "Sommerfreizeit", 3, 40)
	missing := uuid.New()
	_, err := e.mealPlans.Create(context.Background(), service.MealPlanInput{
		CampID:   camp.ID,
		RecipeID: &missing,
		MealDate: camp.StartDate,
		MealType: models.MealLunch,
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMealPlanPositionsWithinSlot(t *testing.T) {
	e := newEnv(t)

	camp := e.createCamp(t, "Sommerfreizeit", 3, 40)
	recipe := e.createPancakes(t)

	first := e.planMeal(t, camp.ID, &recipe.ID, camp.StartDate, models.MealLunch)
	second := e.planMeal(t, camp.ID, &recipe.ID, camp.StartDate, models.MealLunch)
	other := e.planMeal(t, camp.ID, &recipe.ID, camp.StartDate, models.MealDinner)

	assert.Equal(t, 0, first.Position)
	assert.Equal(t, 1, second.Position)
	// a different slot starts counting from zero again
	assert.Equal(t, 0, other.Position)
}

func TestMealPlanCreateBulk(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	camp := e.createCamp(t, "Sommerfreizeit", 3, 40)
	recipe := e.createPancakes(t)

	inputs := []service.MealPlanInput{
		{CampID: camp.ID, RecipeID: &recipe.ID, MealDate: camp.StartDate, MealType: models.MealBreakfast},
		{CampID: camp.ID, RecipeID: &recipe.ID, MealDate: camp.StartDate, MealType: models.MealLunch},
		{CampID: camp.ID, MealDate: camp.StartDate, MealType: models.MealDinner},
	}
	entries, err := e.mealPlans.CreateBulk(ctx, inputs)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, models.MealBreakfast, entries[0].MealType)
	assert.Nil(t, entries[2].RecipeID)
}

func TestMealPlanListForCampOrdered(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	camp := e.createCamp(t, "Sommerfreizeit", 3, 40)
	recipe := e.createPancakes(t)

	day2 := camp.StartDate.AddDate(0, 0, 1)
	e.planMeal(t, camp.ID, &recipe.ID, day2, models.MealBreakfast)
	e.planMeal(t, camp.ID, &recipe.ID, camp.StartDate, models.MealDinner)
	e.planMeal(t, camp.ID, &recipe.ID, camp.StartDate, models.MealBreakfast)

	entries, err := e.mealPlans.ListForCamp(ctx, camp.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.True(t, entries[0].MealDate.Before(entries[2].MealDate) || entries[0].MealDate.Equal(entries[2].MealDate))
	// first day's entries come before the second day
	assert.Equal(t, day2.Day(), entries[2].MealDate.Day())
}

func TestMealPlanUpdate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	camp := e.createCamp(t, "Sommerfreizeit", 3, 40)
	recipe := e.createPancakes(t)
	entry := e.planMeal(t, camp.ID, &recipe.ID, camp.StartDate, models.MealLunch)

	updated, err := e.mealPlans.Update(ctx, entry.ID, nil, "ausgefallen")
	require.NoError(t, err)
	assert.Nil(t, updated.RecipeID)
	assert.Equal(t, "ausgefallen", updated.Notes)
}

func TestMealPlanDelete(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	camp := e.createCamp(t, "Sommerfreizeit", 3, 40)
	entry := e.planMeal(t, camp.ID, nil, camp.StartDate, models.MealLunch)

	require.NoError(t, e.mealPlans.Delete(ctx, entry.ID))
	assert.ErrorIs(t, e.mealPlans.Delete(ctx, entry.ID), gorm.ErrRecordNotFound)
}

func TestMealPlanCopy(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	camp := e.createCamp(t, "Sommerfreizeit", 3, 40)
	recipe := e.createPancakes(t)
	entry := e.planMeal(t, camp.ID, &recipe.ID, camp.StartDate, models.MealLunch)

	target := camp.StartDate.AddDate(0, 0, 1)
	copied, err := e.mealPlans.Copy(ctx, entry.ID, target, "")
	require.NoError(t, err)

	assert.NotEqual(t, entry.ID, copied.ID)
	assert.Equal(t, entry.MealType, copied.MealType)
	require.NotNil(t, copied.RecipeID)
	assert.Equal(t, recipe.ID, *copied.RecipeID)
	assert.Equal(t, target.Day(), copied.MealDate.Day())

	// copy into a different slot type
	other, err := e.mealPlans.Copy(ctx, entry.ID, target, models.MealDinner)
	require.NoError(t, err)
	assert.Equal(t, models.MealDinner, other.MealType)
}

func TestParseMealType(t *testing.T) {
	for _, valid := range []string{"BREAKFAST", "LUNCH", "DINNER"} {
		mt, err := models.ParseMealType(valid)
		require.NoError(t, err)
		assert.Equal(t, models.MealType(valid), mt)
	}

	_, err := models.ParseMealType("BRUNCH")
	assert.Error(t, err)
	_, err = models.ParseMealType("lunch")
	assert.Error(t, err)
}
