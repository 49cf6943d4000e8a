package api

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/freizeitplan/backend/internal/models"
	"github.com/freizeitplan/backend/internal/service"
)

const dateLayout = "2006-01-02"

// CampRequest is the payload for creating or updating a camp. Dates are
// calendar days in YYYY-MM-DD.
type CampRequest struct {
	Name             string `json:"name" binding:"required"`
	StartDate        string `json:"start_date" binding:"required"`
	EndDate          string `json:"end_date" binding:"required"`
	ParticipantCount int    `json:"participant_count" binding:"required,gt=0"`
}

func (r CampRequest) toInput() (service.CampInput, error) {
	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return service.CampInput{}, fmt.Errorf("invalid start_date: %w", err)
	}
	end, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return service.CampInput{}, fmt.Errorf("invalid end_date: %w", err)
	}
	return service.CampInput{
		Name:             r.Name,
		StartDate:        start,
		EndDate:          end,
		ParticipantCount: r.ParticipantCount,
	}, nil
}

// RecipeLineRequest is one ingredient line of a recipe payload.
type RecipeLineRequest struct {
	IngredientID uuid.UUID `json:"ingredient_id" binding:"required"`
	Quantity     float64   `json:"quantity" binding:"required,gt=0"`
	Unit         string    `json:"unit" binding:"required"`
}

// RecipeRequest is the payload for creating or updating a recipe.
type RecipeRequest struct {
	Name            string              `json:"name" binding:"required"`
	Description     string              `json:"description"`
	BaseServings    int                 `json:"base_servings" binding:"required,gt=0"`
	Instructions    string              `json:"instructions"`
	PreparationTime int                 `json:"preparation_time"`
	CookingTime     int                 `json:"cooking_time"`
	AllergenNotes   string              `json:"allergen_notes"`
	Ingredients     []RecipeLineRequest `json:"ingredients"`
	TagIDs          []uuid.UUID         `json:"tag_ids"`
	AllergenIDs     []uuid.UUID         `json:"allergen_ids"`
}

func (r RecipeRequest) toInput() service.RecipeInput {
	input := service.RecipeInput{
		Name:            r.Name,
		Description:     r.Description,
		BaseServings:    r.BaseServings,
		Instructions:    r.Instructions,
		PreparationTime: r.PreparationTime,
		CookingTime:     r.CookingTime,
		AllergenNotes:   r.AllergenNotes,
		TagIDs:          r.TagIDs,
		AllergenIDs:     r.AllergenIDs,
	}
	for _, line := range r.Ingredients {
		input.Ingredients = append(input.Ingredients, service.RecipeLineInput{
			IngredientID: line.IngredientID,
			Quantity:     line.Quantity,
			Unit:         line.Unit,
		})
	}
	return input
}

// IngredientRequest is the payload for creating or updating an ingredient.
type IngredientRequest struct {
	Name        string `json:"name" binding:"required"`
	DefaultUnit string `json:"default_unit"`
	Category    string `json:"category" binding:"required"`
}

// MealPlanRequest is the payload for creating a meal plan entry. A missing
// recipe_id creates a "no meal" placeholder.
type MealPlanRequest struct {
	CampID   uuid.UUID  `json:"camp_id" binding:"required"`
	RecipeID *uuid.UUID `json:"recipe_id"`
	MealDate string     `json:"meal_date" binding:"required"`
	MealType string     `json:"meal_type" binding:"required"`
	Notes    string     `json:"notes"`
}

func (r MealPlanRequest) toInput() (service.MealPlanInput, error) {
	date, err := time.Parse(dateLayout, r.MealDate)
	if err != nil {
		return service.MealPlanInput{}, fmt.Errorf("invalid meal_date: %w", err)
	}
	mealType, err := models.ParseMealType(r.MealType)
	if err != nil {
		return service.MealPlanInput{}, err
	}
	return service.MealPlanInput{
		CampID:   r.CampID,
		RecipeID: r.RecipeID,
		MealDate: date,
		MealType: mealType,
		Notes:    r.Notes,
	}, nil
}

// MealPlanUpdateRequest is the payload for updating a meal plan entry.
type MealPlanUpdateRequest struct {
	RecipeID *uuid.UUID `json:"recipe_id"`
	Notes    string     `json:"notes"`
}

// MealPlanCopyRequest is the payload for copying an entry to another slot.
type MealPlanCopyRequest struct {
	TargetDate string `json:"target_date" binding:"required"`
	TargetType string `json:"target_type"`
}
