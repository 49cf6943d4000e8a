package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/freizeitplan/backend/internal/units"
)

// Workbook layout of the legacy recipe sheets: one sheet per recipe, name in
// A1, base servings in A4, ingredient rows 5..30 (quantity in A, unit in C,
// name in D, optional category in E), free-text instructions from row 31 down.
const (
	importFirstIngredientRow = 5
	importLastIngredientRow  = 30
	importInstructionsRow    = 31
)

// ImportResult summarizes one workbook import run.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Messages []string `json:"messages"`
}

// ImportService reads recipes from the legacy Excel workbook format.
type ImportService struct {
	recipes     *RecipeService
	ingredients *IngredientService
	logger      *zap.Logger
}

// NewImportService creates a new ImportService instance
func NewImportService(recipes *RecipeService, ingredients *IngredientService, logger *zap.Logger) *ImportService {
	return &ImportService{recipes: recipes, ingredients: ingredients, logger: logger.Named("import")}
}

// ImportWorkbook imports every sheet of the workbook as one recipe. Sheets
// without a recipe name and rows without a usable quantity are skipped, not
// fatal; the result carries a message per skipped item.
func (s *ImportService) ImportWorkbook(ctx context.Context, r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	result := &ImportResult{}
	for _, sheet := range f.GetSheetList() {
		if err := s.importSheet(ctx, f, sheet, result); err != nil {
			return nil, err
		}
	}

	s.logger.Info("workbook imported",
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

func (s *ImportService) importSheet(ctx context.Context, f *excelize.File, sheet string, result *ImportResult) error {
	name, _ := f.GetCellValue(sheet, "A1")
	name = strings.TrimSpace(name)
	if name == "" {
		result.Skipped++
		result.Messages = append(result.Messages, fmt.Sprintf("sheet %q: no recipe name in A1", sheet))
		return nil
	}

	baseServings := 30
	if raw, _ := f.GetCellValue(sheet, "A4"); raw != "" {
		if v, err := parseQuantity(raw); err == nil && v > 0 {
			baseServings = int(v)
		}
	}

	input := RecipeInput{Name: name, BaseServings: baseServings}

	for row := importFirstIngredientRow; row <= importLastIngredientRow; row++ {
		ingName, _ := f.GetCellValue(sheet, fmt.Sprintf("D%d", row))
		ingName = strings.TrimSpace(ingName)
		if ingName == "" {
			break
		}

		rawQty, _ := f.GetCellValue(sheet, fmt.Sprintf("A%d", row))
		if strings.TrimSpace(rawQty) == "" {
			continue
		}
		qty, err := parseQuantity(rawQty)
		if err != nil {
			result.Messages = append(result.Messages, fmt.Sprintf("sheet %q row %d: invalid quantity %q", sheet, row, rawQty))
			continue
		}

		unit, _ := f.GetCellValue(sheet, fmt.Sprintf("C%d", row))
		unit = units.Normalize(strings.TrimSpace(unit))
		if unit == "" {
			unit = "Stück"
		}

		category, _ := f.GetCellValue(sheet, fmt.Sprintf("E%d", row))
		category = strings.TrimSpace(category)
		if category == "" {
			category = GuessCategory(ingName)
		}

		ingredient, err := s.ingredients.GetOrCreate(ctx, ingName, unit, category)
		if err != nil {
			return err
		}

		input.Ingredients = append(input.Ingredients, RecipeLineInput{
			IngredientID: ingredient.ID,
			Quantity:     qty,
			Unit:         unit,
		})
	}

	var instructions []string
	rows, err := f.GetRows(sheet)
	if err == nil {
		for i := importInstructionsRow - 1; i < len(rows); i++ {
			if len(rows[i]) == 0 {
				continue
			}
			if line := strings.TrimSpace(rows[i][0]); line != "" {
				instructions = append(instructions, line)
			}
		}
	}
	input.Instructions = strings.Join(instructions, "\n")

	if _, err := s.recipes.Create(ctx, input); err != nil {
		return fmt.Errorf("sheet %q: %w", sheet, err)
	}
	result.Imported++
	return nil
}

// parseQuantity accepts both decimal point and the German decimal comma.
func parseQuantity(raw string) (float64, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	return strconv.ParseFloat(raw, 64)
}

var categoryKeywords = []struct {
	category string
	words    []string
}{
	{"Gemüse", []string{"kartoffel", "zwiebel", "knoblauch", "tomat", "gurke", "paprika", "möhre", "karotte", "sellerie", "lauch", "zucchini", "aubergine", "brokkoli", "blumenkohl", "kohl", "salat", "spinat", "erbsen"}},
	{"Obst", []string{"apfel", "birne", "banane", "orange", "zitrone", "beeren", "erdbeere", "himbeere", "kirsche", "pflaume", "pfirsich"}},
	{"Fleisch", []string{"fleisch", "hack", "rind", "schwein", "hähnchen", "huhn", "pute", "schnitzel", "würstchen", "wurst", "speck", "schinken"}},
	{"Fisch", []string{"fisch", "lachs", "thunfisch", "forelle", "garnele", "krabbe"}},
	{"Milchprodukte", []string{"milch", "sahne", "butter", "käse", "quark", "joghurt", "schmand", "creme", "frischkäse", "eier"}},
	{"Getreide", []string{"mehl", "reis", "nudel", "pasta", "brot", "brötchen", "haferflocken", "müsli", "couscous", "bulgur"}},
	{"Backwaren", []string{"zucker", "backpulver", "hefe", "vanille", "kakao"}},
	{"Öle & Fette", []string{"öl", "olivenöl", "sonnenblumenöl", "margarine", "fett"}},
	{"Gewürze", []string{"salz", "pfeffer", "curry", "zimt", "muskat", "kräuter", "petersilie", "basilikum", "oregano", "thymian", "rosmarin", "majoran", "kümmel", "koriander"}},
	{"Konserven", []string{"dose", "konserve", "passiert", "geschält", "tomatenmark"}},
}

// GuessCategory maps an ingredient name to a shopping category by keyword,
// defaulting to "Sonstiges".
func GuessCategory(name string) string {
	lower := strings.ToLower(name)
	for _, group := range categoryKeywords {
		for _, word := range group.words {
			if strings.Contains(lower, word) {
				return group.category
			}
		}
	}
	return "Sonstiges"
}
