package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/freizeitplan/backend/internal/models"
	"github.com/freizeitplan/backend/internal/units"
)

const displayRulesKey = "unit_conversions"

// SettingsService is the JSON key/value settings store, including the custom
// display-conversion rules overlaid on the built-in ones.
type SettingsService struct {
	db *gorm.DB
}

// NewSettingsService creates a new SettingsService instance
func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// Get unmarshals the setting value for key into out. Returns
// gorm.ErrRecordNotFound when the key does not exist.
func (s *SettingsService) Get(ctx context.Context, key string, out interface{}) error {
	var setting models.Setting
	if err := s.db.WithContext(ctx).First(&setting, "key = ?", key).Error; err != nil {
		return err
	}
	return json.Unmarshal([]byte(setting.Value), out)
}

// Set stores value under key, JSON-encoded, inserting or updating as needed.
func (s *SettingsService) Set(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode setting %q: %w", key, err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var setting models.Setting
		err := tx.First(&setting, "key = ?", key).Error
		switch {
		case err == nil:
			return tx.Model(&setting).Update("value", string(raw)).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&models.Setting{Key: key, Value: string(raw)}).Error
		default:
			return err
		}
	})
}

// DisplayRules returns the custom display-conversion rules. A missing setting
// means no custom rules, not an error.
func (s *SettingsService) DisplayRules(ctx context.Context) (map[string]units.DisplayRule, error) {
	rules := make(map[string]units.DisplayRule)
	if err := s.Get(ctx, displayRulesKey, &rules); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rules, nil
		}
		return nil, err
	}
	return rules, nil
}

// SetDisplayRule adds or replaces a custom display-conversion rule for a unit.
func (s *SettingsService) SetDisplayRule(ctx context.Context, unit string, rule units.DisplayRule) error {
	rules, err := s.DisplayRules(ctx)
	if err != nil {
		return err
	}
	rules[unit] = rule
	return s.Set(ctx, displayRulesKey, rules)
}

// RemoveDisplayRule removes a custom display-conversion rule. Removing an
// unknown unit is a no-op.
func (s *SettingsService) RemoveDisplayRule(ctx context.Context, unit string) error {
	rules, err := s.DisplayRules(ctx)
	if err != nil {
		return err
	}
	if _, ok := rules[unit]; !ok {
		return nil
	}
	delete(rules, unit)
	return s.Set(ctx, displayRulesKey, rules)
}
