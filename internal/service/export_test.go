package service_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/freizeitplan/backend/internal/models"
	"github.com/freizeitplan/backend/internal/service"
)

func newExportService(e *env) *service.ExportService {
	return service.NewExportService(e.shopping, e.mealPlans, e.camps, nil, zap.NewNop())
}

func TestShoppingListWorkbook(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	camp := e.createCamp(t, "Sommerfreizeit", 3, 30)
	recipe := e.createPancakes(t)
	e.planMeal(t, camp.ID, &recipe.ID, camp.StartDate, models.MealBreakfast)

	f, err := newExportService(e).ShoppingListWorkbook(ctx, camp.ID)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Einkaufsliste", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Einkaufsliste: Sommerfreizeit", title)

	participants, err := f.GetCellValue("Einkaufsliste", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Teilnehmer: 30", participants)

	// first category block starts at row 5
	category, err := f.GetCellValue("Einkaufsliste", "A5")
	require.NoError(t, err)
	assert.Equal(t, "Backwaren", category)

	item, err := f.GetCellValue("Einkaufsliste", "A7")
	require.NoError(t, err)
	assert.Equal(t, "Mehl", item)
	unit, err := f.GetCellValue("Einkaufsliste", "C7")
	require.NoError(t, err)
	assert.Equal(t, "kg", unit)
}

func TestMealPlanWorkbook(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	camp := e.createCamp(t, "Sommerfreizeit", 2, 30)
	recipe := e.createPancakes(t)
	e.planMeal(t, camp.ID, &recipe.ID, camp.StartDate, models.MealBreakfast)
	e.planMeal(t, camp.ID, nil, camp.StartDate, models.MealDinner)

	f, err := newExportService(e).MealPlanWorkbook(ctx, camp.ID)
	require.NoError(t, err)
	defer f.Close()

	date, err := f.GetCellValue("Speiseplan", "A2")
	require.NoError(t, err)
	assert.Equal(t, camp.StartDate.Format("02.01.2006"), date)

	breakfast, err := f.GetCellValue("Speiseplan", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Pfannkuchen", breakfast)

	// "no meal" placeholder renders as a dash
	dinner, err := f.GetCellValue("Speiseplan", "D2")
	require.NoError(t, err)
	assert.Equal(t, "—", dinner)

	// second day has the date but no meals
	day2, err := f.GetCellValue("Speiseplan", "A3")
	require.NoError(t, err)
	assert.Equal(t, camp.StartDate.AddDate(0, 0, 1).Format("02.01.2006"), day2)
}

func TestExportUploadWithoutStorage(t *testing.T) {
	e := newEnv(t)

	f := excelize.NewFile()
	defer f.Close()

	_, err := newExportService(e).Upload(context.Background(), f, "exports/test.xlsx")
	assert.ErrorIs(t, err, service.ErrNoStorage)
}

// buildLegacyWorkbook writes a workbook in the legacy sheet layout: name in
// A1, servings in A4, ingredient rows from 5 (quantity A, unit C, name D),
// instructions from row 31.
func buildLegacyWorkbook(t *testing.T) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Spaghetti Bolognese"
	require.NoError(t, f.SetSheetName("Sheet1", sheet))

	require.NoError(t, f.SetCellValue(sheet, "A1", "Spaghetti Bolognese"))
	require.NoError(t, f.SetCellValue(sheet, "A4", "40"))

	require.NoError(t, f.SetCellValue(sheet, "A5", "4"))
	require.NoError(t, f.SetCellValue(sheet, "C5", "kg"))
	require.NoError(t, f.SetCellValue(sheet, "D5", "Nudeln"))
	require.NoError(t, f.SetCellValue(sheet, "E5", "Grundnahrung"))

	require.NoError(t, f.SetCellValue(sheet, "A6", "2,5"))
	require.NoError(t, f.SetCellValue(sheet, "C6", "Kilogramm"))
	require.NoError(t, f.SetCellValue(sheet, "D6", "Hackfleisch"))

	require.NoError(t, f.SetCellValue(sheet, "A7", "ein paar"))
	require.NoError(t, f.SetCellValue(sheet, "C7", ""))
	require.NoError(t, f.SetCellValue(sheet, "D7", "Zwiebeln"))

	require.NoError(t, f.SetCellValue(sheet, "A31", "Zwiebeln anbraten."))
	require.NoError(t, f.SetCellValue(sheet, "A32", "Hackfleisch dazugeben."))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestImportWorkbook(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	importer := service.NewImportService(e.recipes, e.ingredients, zap.NewNop())
	result, err := importer.ImportWorkbook(ctx, buildLegacyWorkbook(t))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	assert.Zero(t, result.Skipped)
	// the row with the unparseable quantity leaves a message
	require.Len(t, result.Messages, 1)
	assert.Contains(t, result.Messages[0], "invalid quantity")

	recipes, err := e.recipes.List(ctx, "", nil)
	require.NoError(t, err)
	require.Len(t, recipes, 1)

	recipe := recipes[0]
	assert.Equal(t, "Spaghetti Bolognese", recipe.Name)
	assert.Equal(t, 40, recipe.BaseServings)
	require.Len(t, recipe.Ingredients, 2)
	assert.Contains(t, recipe.Instructions, "Zwiebeln anbraten.")

	for _, line := range recipe.Ingredients {
		switch line.Ingredient.Name {
		case "Nudeln":
			assert.InDelta(t, 4, line.Quantity, 1e-9)
			assert.Equal(t, "kg", line.Unit)
			// explicit category from column E wins over the keyword guess
			assert.Equal(t, "Grundnahrung", line.Ingredient.Category)
		case "Hackfleisch":
			// German decimal comma and spelled-out unit both normalize
			assert.InDelta(t, 2.5, line.Quantity, 1e-9)
			assert.Equal(t, "kg", line.Unit)
			assert.Equal(t, "Fleisch", line.Ingredient.Category)
		default:
			t.Fatalf("unexpected ingredient %q", line.Ingredient.Name)
		}
	}

	// import also produced version 1
	versions, err := e.versions.List(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Len(t, versions, 1)
}

func TestImportWorkbookSkipsUnnamedSheets(t *testing.T) {
	e := newEnv(t)

	f := excelize.NewFile()
	defer f.Close()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	importer := service.NewImportService(e.recipes, e.ingredients, zap.NewNop())
	result, err := importer.ImportWorkbook(context.Background(), buf)
	require.NoError(t, err)
	assert.Zero(t, result.Imported)
	assert.Equal(t, 1, result.Skipped)
}
