package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/freizeitplan/backend/internal/service"
	"github.com/freizeitplan/backend/internal/testdb"
)

// Concurrent snapshots of the same recipe must serialize on the recipe row
// lock: every call gets its own version number and the sequence stays
// gapless. Runs against a real Postgres, where writers genuinely race.
func TestVersionSnapshotConcurrentPostgres(t *testing.T) {
	db := testdb.SetupPostgres(t)
	ctx := context.Background()
	logger := zap.NewNop()

	versions := service.NewVersionService(db, logger)
	recipes := service.NewRecipeService(db, versions, logger)
	ingredients := service.NewIngredientService(db, nil, logger)

	flour, err := ingredients.Create(ctx, service.IngredientInput{
		Name:        "Mehl",
		DefaultUnit: "g",
		Category:    "Backwaren",
	})
	require.NoError(t, err)

	recipe, err := recipes.Create(ctx, service.RecipeInput{
		Name:         "Pfannkuchen",
		BaseServings: 20,
		Ingredients: []service.RecipeLineInput{
			{IngredientID: flour.ID, Quantity: 2000, Unit: "g"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, recipe.CurrentVersion)

	const writers = 8

	var g errgroup.Group
	for i := 0; i < writers; i++ {
		g.Go(func() error {
			_, err := versions.Snapshot(ctx, recipe.ID)
			return err
		})
	}
	require.NoError(t, g.Wait())

	// 1 from Create plus one per writer, numbered without gaps
	list, err := versions.List(ctx, recipe.ID)
	require.NoError(t, err)
	require.Len(t, list, writers+1)
	for i, v := range list {
		assert.Equal(t, writers+1-i, v.VersionNumber)
	}

	reloaded, err := recipes.Get(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, writers+1, reloaded.CurrentVersion)
}
