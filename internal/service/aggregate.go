package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/freizeitplan/backend/internal/models"
	"github.com/freizeitplan/backend/internal/units"
)

// AggregatedIngredient is the summed total of one ingredient across many
// scaled recipe lines, expressed in the group's canonical unit.
type AggregatedIngredient struct {
	Ingredient models.Ingredient `json:"ingredient"`
	Quantity   float64           `json:"quantity"`
	Unit       string            `json:"unit"`
}

// canonicalUnit picks the unit an ingredient group is summed in: the base
// unit of the first line's dimension when the unit is convertible, otherwise
// the ingredient's default unit when that is a plain (non-convertible) unit,
// otherwise the first-seen unit itself.
func canonicalUnit(ing models.Ingredient, firstUnit string) string {
	if base, ok := units.Base(firstUnit); ok {
		return base
	}
	if def := units.Normalize(ing.DefaultUnit); def != "" {
		if _, convertible := units.Base(def); !convertible {
			return def
		}
	}
	return firstUnit
}

// AggregateLines sums scaled lines per ingredient. Order of input does not
// affect the totals. Mixing units of different dimensions for one ingredient
// fails with ErrIncompatibleUnits; nothing is returned partially.
func AggregateLines(lines []ScaledLine) (map[uuid.UUID]*AggregatedIngredient, error) {
	totals := make(map[uuid.UUID]*AggregatedIngredient)

	for _, line := range lines {
		unit := units.Normalize(line.Unit)

		agg, ok := totals[line.Ingredient.ID]
		if !ok {
			agg = &AggregatedIngredient{
				Ingredient: line.Ingredient,
				Unit:       canonicalUnit(line.Ingredient, unit),
			}
			totals[line.Ingredient.ID] = agg
		}

		converted, err := units.Convert(line.Quantity, unit, agg.Unit)
		if err != nil {
			return nil, fmt.Errorf("ingredient %q: %w", line.Ingredient.Name, err)
		}
		agg.Quantity += converted
	}

	return totals, nil
}
