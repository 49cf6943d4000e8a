package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freizeitplan/backend/internal/models"
)

// TaxonomyService handles the small tag and allergen vocabularies.
type TaxonomyService struct {
	db *gorm.DB
}

// NewTaxonomyService creates a new TaxonomyService instance
func NewTaxonomyService(db *gorm.DB) *TaxonomyService {
	return &TaxonomyService{db: db}
}

// ListTags returns all tags ordered by name.
func (s *TaxonomyService) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.WithContext(ctx).Order("name").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// CreateTag creates a tag.
func (s *TaxonomyService) CreateTag(ctx context.Context, tag *models.Tag) (*models.Tag, error) {
	if err := s.db.WithContext(ctx).Create(tag).Error; err != nil {
		return nil, err
	}
	return tag, nil
}

// GetOrCreateTag returns the tag with the given name, creating it if missing.
func (s *TaxonomyService) GetOrCreateTag(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	err := s.db.WithContext(ctx).First(&tag, "name = ?", name).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return s.CreateTag(ctx, &models.Tag{Name: name})
}

// DeleteTag removes a tag and its recipe links.
func (s *TaxonomyService) DeleteTag(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM recipe_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tag{}, "id = ?", id).Error
	})
}

// ListAllergens returns all allergens ordered by name.
func (s *TaxonomyService) ListAllergens(ctx context.Context) ([]models.Allergen, error) {
	var allergens []models.Allergen
	if err := s.db.WithContext(ctx).Order("name").Find(&allergens).Error; err != nil {
		return nil, err
	}
	return allergens, nil
}

// CreateAllergen creates an allergen.
func (s *TaxonomyService) CreateAllergen(ctx context.Context, allergen *models.Allergen) (*models.Allergen, error) {
	if err := s.db.WithContext(ctx).Create(allergen).Error; err != nil {
		return nil, err
	}
	return allergen, nil
}

// GetOrCreateAllergen returns the allergen with the given name, creating it
// if missing.
func (s *TaxonomyService) GetOrCreateAllergen(ctx context.Context, name string) (*models.Allergen, error) {
	var allergen models.Allergen
	err := s.db.WithContext(ctx).First(&allergen, "name = ?", name).Error
	if err == nil {
		return &allergen, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return s.CreateAllergen(ctx, &models.Allergen{Name: name})
}

// DeleteAllergen removes an allergen and its recipe links.
func (s *TaxonomyService) DeleteAllergen(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM recipe_allergens WHERE allergen_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Allergen{}, "id = ?", id).Error
	})
}
