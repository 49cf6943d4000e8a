// Package units converts between compatible measurement units and picks
// readable display units for aggregated quantities. Arithmetic for shopping
// lists always happens in a dimension's base unit (g, ml, tsp); display
// rewriting is cosmetic and applied last.
package units

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrIncompatibleUnits is returned when a conversion crosses measurement
// dimensions (e.g. grams to milliliters). This is a data-entry problem
// upstream and is never silently coerced.
var ErrIncompatibleUnits = errors.New("incompatible units")

type dimension int

const (
	mass dimension = iota
	volume
	spoon
)

type unitDef struct {
	dim dimension
	// factor to the dimension's base unit (g, ml, tsp)
	factor float64
}

var unitTable = map[string]unitDef{
	"mg":   {mass, 0.001},
	"g":    {mass, 1},
	"kg":   {mass, 1000},
	"ml":   {volume, 1},
	"L":    {volume, 1000},
	"tsp":  {spoon, 1},
	"tbsp": {spoon, 3},
}

// Convert converts quantity from one unit to another. Unknown units pass
// through only when from and to are identical; everything else across
// dimensions fails with ErrIncompatibleUnits.
func Convert(quantity float64, from, to string) (float64, error) {
	if from == to {
		return quantity, nil
	}
	f, okFrom := unitTable[from]
	t, okTo := unitTable[to]
	if !okFrom || !okTo || f.dim != t.dim {
		return 0, fmt.Errorf("%w: cannot convert %q to %q", ErrIncompatibleUnits, from, to)
	}
	return quantity * f.factor / t.factor, nil
}

// Compatible reports whether two units can be converted into each other.
func Compatible(a, b string) bool {
	if a == b {
		return true
	}
	da, okA := unitTable[a]
	db, okB := unitTable[b]
	return okA && okB && da.dim == db.dim
}

// Base returns the base unit quantities of the given unit's dimension are
// summed in (g, ml or tsp). Unknown units have no base.
func Base(unit string) (string, bool) {
	def, ok := unitTable[unit]
	if !ok {
		return "", false
	}
	switch def.dim {
	case mass:
		return "g", true
	case volume:
		return "ml", true
	default:
		return "tsp", true
	}
}

// DisplayRule rewrites a unit into a larger one once a quantity reaches the
// threshold, e.g. 1500 g -> 1.5 kg.
type DisplayRule struct {
	Threshold float64 `json:"threshold"`
	Target    string  `json:"target"`
	Factor    float64 `json:"factor"`
}

var defaultDisplayRules = map[string]DisplayRule{
	"mg": {Threshold: 1000, Target: "g", Factor: 0.001},
	"g":  {Threshold: 1000, Target: "kg", Factor: 0.001},
	"ml": {Threshold: 1000, Target: "L", Factor: 0.001},
}

// DefaultDisplayRules returns a copy of the built-in display rules.
func DefaultDisplayRules() map[string]DisplayRule {
	rules := make(map[string]DisplayRule, len(defaultDisplayRules))
	for unit, rule := range defaultDisplayRules {
		rules[unit] = rule
	}
	return rules
}

// BestDisplayUnit rewrites a quantity into the larger default display unit
// when it crosses the rule threshold. Quantities below the threshold and
// units without a rule are returned unchanged.
func BestDisplayUnit(quantity float64, unit string) (float64, string) {
	return BestDisplayUnitWith(quantity, unit, nil)
}

// BestDisplayUnitWith is BestDisplayUnit with custom rules overlaid on the
// defaults. Custom rules win on unit collisions.
func BestDisplayUnitWith(quantity float64, unit string, custom map[string]DisplayRule) (float64, string) {
	rule, ok := custom[unit]
	if !ok {
		rule, ok = defaultDisplayRules[unit]
	}
	if !ok || quantity < rule.Threshold {
		return quantity, unit
	}
	return roundDisplay(quantity * rule.Factor), rule.Target
}

// roundDisplay trims converted values to a readable precision: one decimal
// from 10 up, two from 1 up, three below.
func roundDisplay(q float64) float64 {
	switch {
	case q >= 10:
		return math.Round(q*10) / 10
	case q >= 1:
		return math.Round(q*100) / 100
	default:
		return math.Round(q*1000) / 1000
	}
}

var unitAliases = map[string]string{
	"gramm":      "g",
	"gram":       "g",
	"kilogramm":  "kg",
	"kilogram":   "kg",
	"liter":      "L",
	"milliliter": "ml",
	"stück":      "Stück",
	"stueck":     "Stück",
	"piece":      "Stück",
	"pieces":     "Stück",
}

// Normalize maps spelled-out unit names to their canonical symbols, so that
// "Gramm" and "g" aggregate together. Unknown names are returned as-is.
func Normalize(unit string) string {
	if mapped, ok := unitAliases[strings.ToLower(unit)]; ok {
		return mapped
	}
	return unit
}

// Format renders a quantity and unit for display, without trailing zeros.
func Format(quantity float64, unit string) string {
	if quantity == math.Trunc(quantity) {
		return fmt.Sprintf("%d %s", int64(quantity), unit)
	}
	s := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", quantity), "0"), ".")
	return s + " " + unit
}
