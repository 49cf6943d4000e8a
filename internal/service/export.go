package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/freizeitplan/backend/config"
	"github.com/freizeitplan/backend/internal/models"
)

// ErrNoStorage is returned when an export upload is requested but no S3
// storage is configured.
var ErrNoStorage = errors.New("no export storage configured")

// ExportService renders shopping lists and meal plans as Excel workbooks and
// optionally ships the artifact to S3.
type ExportService struct {
	shopping  *ShoppingListService
	mealPlans *MealPlanService
	camps     *CampService
	storage   *config.S3Config
	logger    *zap.Logger
}

// NewExportService creates a new ExportService instance. storage may be nil.
func NewExportService(shopping *ShoppingListService, mealPlans *MealPlanService, camps *CampService, storage *config.S3Config, logger *zap.Logger) *ExportService {
	return &ExportService{
		shopping:  shopping,
		mealPlans: mealPlans,
		camps:     camps,
		storage:   storage,
		logger:    logger.Named("export"),
	}
}

// ShoppingListWorkbook renders the camp's shopping list as one sheet,
// category blocks separated by headings, the way kitchen teams print it.
func (s *ExportService) ShoppingListWorkbook(ctx context.Context, campID uuid.UUID) (*excelize.File, error) {
	list, err := s.shopping.Calculate(ctx, campID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Einkaufsliste"
	f.SetSheetName("Sheet1", sheet)

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, err
	}
	headStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E5E7EB"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	f.SetCellValue(sheet, "A1", fmt.Sprintf("Einkaufsliste: %s", list.CampName))
	f.SetCellStyle(sheet, "A1", "A1", titleStyle)
	f.SetCellValue(sheet, "A2", fmt.Sprintf("Teilnehmer: %d", list.ParticipantCount))
	f.SetCellValue(sheet, "A3", fmt.Sprintf("Rezepte: %d, Zutaten: %d", list.TotalRecipes, list.TotalItems))

	row := 5
	for _, category := range list.Categories {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), category.Name)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("C%d", row), headStyle)
		row++

		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Zutat")
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "Menge")
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), "Einheit")
		row++

		for _, item := range category.Items {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.Name)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.Quantity)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), item.Unit)
			row++
		}
		row++ // blank line between categories
	}

	f.SetColWidth(sheet, "A", "A", 32)
	f.SetColWidth(sheet, "B", "C", 12)
	return f, nil
}

// MealPlanWorkbook renders the camp's meal calendar: one row per day, one
// column per meal slot.
func (s *ExportService) MealPlanWorkbook(ctx context.Context, campID uuid.UUID) (*excelize.File, error) {
	camp, err := s.camps.Get(ctx, campID)
	if err != nil {
		return nil, err
	}
	entries, err := s.mealPlans.ListForCamp(ctx, campID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Speiseplan"
	f.SetSheetName("Sheet1", sheet)

	headStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	f.SetCellValue(sheet, "A1", "Datum")
	f.SetCellValue(sheet, "B1", "Frühstück")
	f.SetCellValue(sheet, "C1", "Mittagessen")
	f.SetCellValue(sheet, "D1", "Abendessen")
	f.SetCellStyle(sheet, "A1", "D1", headStyle)

	columns := map[models.MealType]string{
		models.MealBreakfast: "B",
		models.MealLunch:     "C",
		models.MealDinner:    "D",
	}

	row := 2
	for dayNum := 0; dayNum < camp.Days(); dayNum++ {
		date := camp.StartDate.AddDate(0, 0, dayNum)
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), date.Format("02.01.2006"))

		for _, entry := range entries {
			if !sameDay(entry.MealDate, date) {
				continue
			}
			col := columns[entry.MealType]
			cell := fmt.Sprintf("%s%d", col, row)
			name := "—"
			if entry.Recipe != nil {
				name = entry.Recipe.Name
			}
			existing, _ := f.GetCellValue(sheet, cell)
			if existing != "" {
				name = existing + ", " + name
			}
			f.SetCellValue(sheet, cell, name)
		}
		row++
	}

	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "B", "D", 28)
	return f, nil
}

// Upload writes the workbook to the configured S3 bucket and returns a
// presigned download URL valid for one hour.
func (s *ExportService) Upload(ctx context.Context, f *excelize.File, key string) (string, error) {
	if s.storage == nil {
		return "", ErrNoStorage
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", err
	}

	if err := s.storage.UploadObject(ctx, key, buf.Bytes(), excelContentType); err != nil {
		return "", err
	}

	url, err := s.storage.GeneratePresignedURL(ctx, key, time.Hour)
	if err != nil {
		return "", err
	}

	s.logger.Info("export uploaded", zap.String("key", key))
	return url, nil
}

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
