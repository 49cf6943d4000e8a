package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freizeitplan/backend/internal/models"
)

// DayOverview is one camp day of the planning grid: the entries per meal
// slot and how many slots have at least one entry.
type DayOverview struct {
	DayNumber    int                                      `json:"day_number"`
	Date         time.Time                                `json:"date"`
	Meals        map[models.MealType][]models.MealPlanEntry `json:"meals"`
	MealsPlanned int                                      `json:"meals_planned"`
}

// CampStatistics summarizes how far a camp's planning has progressed.
type CampStatistics struct {
	CampID               uuid.UUID               `json:"camp_id"`
	TotalDays            int                     `json:"total_days"`
	PlannedMeals         int                     `json:"planned_meals"`
	ExpectedMeals        int                     `json:"expected_meals"`
	UniqueRecipes        int                     `json:"unique_recipes"`
	MealCounts           map[models.MealType]int `json:"meal_counts"`
	CompletionPercentage float64                 `json:"completion_percentage"`
	Warnings             []string                `json:"warnings"`
	DailyOverview        []DayOverview           `json:"daily_overview"`
}

// StatsService computes planning statistics for camps.
type StatsService struct {
	db *gorm.DB
}

// NewStatsService creates a new StatsService instance
func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// ForCamp builds the statistics of one camp: per-day grid, planned versus
// expected meal counts (three slots per day) and warnings for unplanned
// slots and recipes without allergen information.
func (s *StatsService) ForCamp(ctx context.Context, campID uuid.UUID) (*CampStatistics, error) {
	var camp models.Camp
	if err := s.db.WithContext(ctx).First(&camp, "id = ?", campID).Error; err != nil {
		return nil, err
	}

	var entries []models.MealPlanEntry
	err := s.db.WithContext(ctx).
		Where("camp_id = ?", campID).
		Preload("Recipe.Allergens").
		Order("meal_date, meal_type, position").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	stats := &CampStatistics{
		CampID:        camp.ID,
		TotalDays:     camp.Days(),
		PlannedMeals:  len(entries),
		ExpectedMeals: camp.Days() * len(models.MealTypes),
		MealCounts:    make(map[models.MealType]int),
	}

	recipesSeen := make(map[uuid.UUID]*models.Recipe)
	for i := range entries {
		stats.MealCounts[entries[i].MealType]++
		if entries[i].RecipeID != nil && entries[i].Recipe != nil {
			recipesSeen[*entries[i].RecipeID] = entries[i].Recipe
		}
	}
	stats.UniqueRecipes = len(recipesSeen)

	if stats.ExpectedMeals > 0 {
		pct := float64(stats.PlannedMeals) / float64(stats.ExpectedMeals) * 100
		stats.CompletionPercentage = math.Round(pct*10) / 10
	}

	if missing := stats.ExpectedMeals - stats.PlannedMeals; missing > 0 {
		stats.Warnings = append(stats.Warnings, fmt.Sprintf("%d Mahlzeiten noch nicht geplant", missing))
	}
	withoutAllergens := 0
	for _, recipe := range recipesSeen {
		if len(recipe.Allergens) == 0 && recipe.AllergenNotes == "" {
			withoutAllergens++
		}
	}
	if withoutAllergens > 0 {
		stats.Warnings = append(stats.Warnings, fmt.Sprintf("%d Rezepte ohne Allergen-Informationen", withoutAllergens))
	}

	stats.DailyOverview = buildDailyOverview(&camp, entries)
	return stats, nil
}

func buildDailyOverview(camp *models.Camp, entries []models.MealPlanEntry) []DayOverview {
	days := make([]DayOverview, 0, camp.Days())
	start := camp.StartDate

	for dayNum := 0; dayNum < camp.Days(); dayNum++ {
		date := start.AddDate(0, 0, dayNum)
		day := DayOverview{
			DayNumber: dayNum + 1,
			Date:      date,
			Meals:     make(map[models.MealType][]models.MealPlanEntry, len(models.MealTypes)),
		}
		for _, mt := range models.MealTypes {
			day.Meals[mt] = nil
		}

		for i := range entries {
			if sameDay(entries[i].MealDate, date) {
				day.Meals[entries[i].MealType] = append(day.Meals[entries[i].MealType], entries[i])
			}
		}
		for _, mt := range models.MealTypes {
			if len(day.Meals[mt]) > 0 {
				day.MealsPlanned++
			}
		}
		days = append(days, day)
	}
	return days
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
