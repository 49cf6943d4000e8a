package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/freizeitplan/backend/internal/models"
	"github.com/freizeitplan/backend/internal/units"
)

const (
	suggestCacheTTL    = 5 * time.Minute
	suggestCacheGenKey = "ingredient_suggest:gen"
)

// IngredientInput carries the editable fields of an ingredient.
type IngredientInput struct {
	Name        string `json:"name"`
	DefaultUnit string `json:"default_unit"`
	Category    string `json:"category"`
}

// Suggestion is one ranked hit of the ingredient autocomplete.
type Suggestion struct {
	Ingredient models.Ingredient `json:"ingredient"`
	Score      int               `json:"score"`
	UsageCount int               `json:"usage_count"`
}

// IngredientService handles ingredient operations. When a Redis client is
// given, suggestion results are cached; any ingredient write invalidates the
// whole suggestion cache by bumping a generation counter.
type IngredientService struct {
	db     *gorm.DB
	cache  *redis.Client
	logger *zap.Logger
}

// NewIngredientService creates a new IngredientService instance. cache may be
// nil, in which case suggestions are always computed.
func NewIngredientService(db *gorm.DB, cache *redis.Client, logger *zap.Logger) *IngredientService {
	return &IngredientService{db: db, cache: cache, logger: logger.Named("ingredients")}
}

// Create creates an ingredient. The stored unit is normalized so that
// "Gramm" and "g" do not become distinct units.
func (s *IngredientService) Create(ctx context.Context, input IngredientInput) (*models.Ingredient, error) {
	ingredient := &models.Ingredient{
		Name:        input.Name,
		DefaultUnit: units.Normalize(input.DefaultUnit),
		Category:    input.Category,
	}
	if err := s.db.WithContext(ctx).Create(ingredient).Error; err != nil {
		return nil, err
	}
	s.bumpSuggestGeneration(ctx)
	return ingredient, nil
}

// Get retrieves an ingredient by ID.
func (s *IngredientService) Get(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// List returns ingredients ordered by name, optionally filtered by a
// substring search on the name.
func (s *IngredientService) List(ctx context.Context, search string) ([]models.Ingredient, error) {
	query := s.db.WithContext(ctx).Model(&models.Ingredient{})
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	var ingredients []models.Ingredient
	if err := query.Order("name").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// Update updates an ingredient's fields.
func (s *IngredientService) Update(ctx context.Context, id uuid.UUID, input IngredientInput) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"name":         input.Name,
		"default_unit": units.Normalize(input.DefaultUnit),
		"category":     input.Category,
	}
	if err := s.db.WithContext(ctx).Model(&ingredient).Updates(updates).Error; err != nil {
		return nil, err
	}
	s.bumpSuggestGeneration(ctx)
	return s.Get(ctx, id)
}

// Delete removes an ingredient. Ingredients still used by recipe lines are
// protected by the foreign key; callers get the constraint error.
func (s *IngredientService) Delete(ctx context.Context, id uuid.UUID) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.RecipeIngredient{}).
		Where("ingredient_id = ?", id).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("ingredient is used by %d recipe line(s)", count)
	}
	if err := s.db.WithContext(ctx).Delete(&models.Ingredient{}, "id = ?", id).Error; err != nil {
		return err
	}
	s.bumpSuggestGeneration(ctx)
	return nil
}

// GetOrCreate returns the ingredient with the given name, creating it with
// the supplied unit and category when missing. Used by the Excel importer.
func (s *IngredientService) GetOrCreate(ctx context.Context, name, unit, category string) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := s.db.WithContext(ctx).First(&ingredient, "name = ?", name).Error
	if err == nil {
		return &ingredient, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return s.Create(ctx, IngredientInput{Name: name, DefaultUnit: unit, Category: category})
}

// Suggest returns up to limit ingredients ranked for an autocomplete query:
// exact match, then prefix, then substring, with usage count and name as
// tie-breakers.
func (s *IngredientService) Suggest(ctx context.Context, query string, limit int) ([]Suggestion, error) {
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	if cached, ok := s.cachedSuggestions(ctx, query, limit); ok {
		return cached, nil
	}

	type row struct {
		models.Ingredient
		UsageCount int
	}
	var rows []row
	err := s.db.WithContext(ctx).Model(&models.Ingredient{}).
		Select("ingredients.*, COUNT(recipe_ingredients.id) AS usage_count").
		Joins("LEFT JOIN recipe_ingredients ON recipe_ingredients.ingredient_id = ingredients.id").
		Group("ingredients.id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	var results []Suggestion
	for _, r := range rows {
		name := strings.ToLower(r.Name)
		var score int
		switch {
		case name == q:
			score = 100
		case strings.HasPrefix(name, q):
			score = 95
		case strings.Contains(name, q):
			score = 85
		default:
			continue
		}
		results = append(results, Suggestion{Ingredient: r.Ingredient, Score: score, UsageCount: r.UsageCount})
	}

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.UsageCount != b.UsageCount {
			return a.UsageCount > b.UsageCount
		}
		return a.Ingredient.Name < b.Ingredient.Name
	})
	if len(results) > limit {
		results = results[:limit]
	}

	s.storeSuggestions(ctx, query, limit, results)
	return results, nil
}

func (s *IngredientService) suggestCacheKey(ctx context.Context, query string, limit int) string {
	gen, err := s.cache.Get(ctx, suggestCacheGenKey).Int64()
	if err != nil {
		gen = 0
	}
	return fmt.Sprintf("ingredient_suggest:%d:%s:%d", gen, strings.ToLower(query), limit)
}

func (s *IngredientService) cachedSuggestions(ctx context.Context, query string, limit int) ([]Suggestion, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, s.suggestCacheKey(ctx, query, limit)).Bytes()
	if err != nil {
		return nil, false
	}
	var results []Suggestion
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, false
	}
	return results, true
}

func (s *IngredientService) storeSuggestions(ctx context.Context, query string, limit int, results []Suggestion) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.suggestCacheKey(ctx, query, limit), raw, suggestCacheTTL).Err(); err != nil {
		s.logger.Warn("failed to cache suggestions", zap.Error(err))
	}
}

// bumpSuggestGeneration invalidates all cached suggestion results; stale keys
// expire via their TTL.
func (s *IngredientService) bumpSuggestGeneration(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Incr(ctx, suggestCacheGenKey).Err(); err != nil {
		s.logger.Warn("failed to invalidate suggestion cache", zap.Error(err))
	}
}
