package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/freizeitplan/backend/internal/models"
)

// ErrInvalidDateRange is returned when a camp's end date precedes its start.
var ErrInvalidDateRange = errors.New("end date before start date")

// ErrInvalidParticipants is returned when a camp's participant count is not
// positive.
var ErrInvalidParticipants = errors.New("participant count must be positive")

// CampInput carries the editable fields of a camp.
type CampInput struct {
	Name             string    `json:"name"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	ParticipantCount int       `json:"participant_count"`
}

func (in CampInput) validate() error {
	if in.EndDate.Before(in.StartDate) {
		return ErrInvalidDateRange
	}
	if in.ParticipantCount <= 0 {
		return ErrInvalidParticipants
	}
	return nil
}

// CampService handles camp operations.
type CampService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewCampService creates a new CampService instance
func NewCampService(db *gorm.DB, logger *zap.Logger) *CampService {
	return &CampService{db: db, logger: logger.Named("camps")}
}

// Create creates a new camp.
func (s *CampService) Create(ctx context.Context, input CampInput) (*models.Camp, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	camp := &models.Camp{
		Name:             input.Name,
		StartDate:        input.StartDate,
		EndDate:          input.EndDate,
		ParticipantCount: input.ParticipantCount,
	}
	if err := s.db.WithContext(ctx).Create(camp).Error; err != nil {
		return nil, err
	}
	s.logger.Info("camp created", zap.String("id", camp.ID.String()), zap.String("name", camp.Name))
	return camp, nil
}

// Get retrieves a camp by ID.
func (s *CampService) Get(ctx context.Context, id uuid.UUID) (*models.Camp, error) {
	var camp models.Camp
	if err := s.db.WithContext(ctx).First(&camp, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &camp, nil
}

// List returns all camps, most recently accessed first.
func (s *CampService) List(ctx context.Context) ([]models.Camp, error) {
	var camps []models.Camp
	if err := s.db.WithContext(ctx).Order("last_accessed DESC").Find(&camps).Error; err != nil {
		return nil, err
	}
	return camps, nil
}

// Update updates a camp's fields.
func (s *CampService) Update(ctx context.Context, id uuid.UUID, input CampInput) (*models.Camp, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	var camp models.Camp
	if err := s.db.WithContext(ctx).First(&camp, "id = ?", id).Error; err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"name":              input.Name,
		"start_date":        input.StartDate,
		"end_date":          input.EndDate,
		"participant_count": input.ParticipantCount,
	}
	if err := s.db.WithContext(ctx).Model(&camp).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes a camp together with all of its meal plan entries. This is
// the documented cascade of the camp→meal-plan relationship.
func (s *CampService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var camp models.Camp
		if err := tx.First(&camp, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("camp_id = ?", id).Delete(&models.MealPlanEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&camp).Error
	})
}

// Touch records that the camp was opened. List order follows this.
func (s *CampService) Touch(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Model(&models.Camp{}).
		Where("id = ?", id).
		Update("last_accessed", time.Now().UTC()).Error
}
