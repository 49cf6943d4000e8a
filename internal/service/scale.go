package service

import (
	"errors"
	"fmt"

	"github.com/freizeitplan/backend/internal/models"
)

// ErrInvalidServings is returned when a recipe's base serving count is not
// positive. Write paths prevent this state; scaling still refuses to divide
// by it instead of clamping.
var ErrInvalidServings = errors.New("invalid base servings")

// ScaledLine is one ingredient line after scaling, still in the recipe's unit.
type ScaledLine struct {
	Ingredient models.Ingredient `json:"ingredient"`
	Quantity   float64           `json:"quantity"`
	Unit       string            `json:"unit"`
}

// ScaledRecipe is the result of scaling a recipe to a participant count.
type ScaledRecipe struct {
	Recipe         *models.Recipe `json:"recipe"`
	Factor         float64        `json:"factor"`
	TargetServings int            `json:"target_servings"`
	BaseServings   int            `json:"base_servings"`
	Lines          []ScaledLine   `json:"ingredients"`
}

// ScaleRecipe multiplies every ingredient line of the recipe by
// targetServings / BaseServings. Units are untouched and no rounding is
// applied; formatting is presentation's job. The recipe must have its
// ingredient lines (with ingredients) loaded.
func ScaleRecipe(recipe *models.Recipe, targetServings int) (*ScaledRecipe, error) {
	if recipe.BaseServings <= 0 {
		return nil, fmt.Errorf("%w: recipe %s has base_servings %d", ErrInvalidServings, recipe.ID, recipe.BaseServings)
	}

	factor := float64(targetServings) / float64(recipe.BaseServings)

	lines := make([]ScaledLine, 0, len(recipe.Ingredients))
	for _, ri := range recipe.Ingredients {
		lines = append(lines, ScaledLine{
			Ingredient: ri.Ingredient,
			Quantity:   ri.Quantity * factor,
			Unit:       ri.Unit,
		})
	}

	return &ScaledRecipe{
		Recipe:         recipe,
		Factor:         factor,
		TargetServings: targetServings,
		BaseServings:   recipe.BaseServings,
		Lines:          lines,
	}, nil
}
