package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/homeboardapp/backend/internal/apperrors"
	"github.com/homeboardapp/backend/internal/models"
)

// RecipeService manages recipes scoped to the active household. A recipe name
// is unique per household and may only reference the household's ingredients.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// List returns the active household's recipes with ingredients preloaded.
func (s *RecipeService) List(ctx context.Context, active *models.Household) ([]models.Recipe, error) {
	if active == nil {
		return []models.Recipe{}, nil
	}
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients").
		Where("household_id = ?", active.ID).
		Order("name ASC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// Get looks up a recipe by id without an ownership check.
func (s *RecipeService) Get(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).Preload("Ingredients").First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("recipe: %w", apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &recipe, nil
}

// Create adds a recipe to the active household.
func (s *RecipeService) Create(ctx context.Context, active *models.Household, name, body string, ingredientIDs []uuid.UUID) (*models.Recipe, error) {
	if err := Authorize(nil, active, OpCreate); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	body = strings.TrimSpace(body)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "name is required")
	}
	if err := s.checkUnique(ctx, active.ID, name, uuid.Nil); err != nil {
		return nil, err
	}
	ingredients, err := s.householdIngredients(ctx, active, ingredientIDs)
	if err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		Name:        name,
		Body:        body,
		HouseholdID: active.ID,
		Ingredients: ingredients,
	}
	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Update edits a recipe owned by the active household, replacing its
// ingredient set.
func (s *RecipeService) Update(ctx context.Context, active *models.Household, id uuid.UUID, name, body string, ingredientIDs []uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(recipe, active, OpUpdate); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	body = strings.TrimSpace(body)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "name is required")
	}
	if err := s.checkUnique(ctx, active.ID, name, recipe.ID); err != nil {
		return nil, err
	}
	ingredients, err := s.householdIngredients(ctx, active, ingredientIDs)
	if err != nil {
		return nil, err
	}

	recipe.Name = name
	recipe.Body = body
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(recipe).Association("Ingredients").Replace(ingredients); err != nil {
			return err
		}
		// Omit the association on save so the stale preloaded set does not
		// get upserted back into the join table.
		return tx.Omit("Ingredients").Save(recipe).Error
	})
	if err != nil {
		return nil, err
	}
	recipe.Ingredients = ingredients
	return recipe, nil
}

// Delete removes a recipe owned by the active household along with its
// ingredient associations.
func (s *RecipeService) Delete(ctx context.Context, active *models.Household, id uuid.UUID) error {
	recipe, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := Authorize(recipe, active, OpDelete); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(recipe).Association("Ingredients").Clear(); err != nil {
			return err
		}
		return tx.Delete(recipe).Error
	})
}

// householdIngredients resolves ingredient ids against the active household.
// Any id that is missing or belongs elsewhere fails validation.
func (s *RecipeService) householdIngredients(ctx context.Context, active *models.Household, ids []uuid.UUID) ([]models.Ingredient, error) {
	if len(ids) == 0 {
		return []models.Ingredient{}, nil
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	ids = unique
	var ingredients []models.Ingredient
	err := s.db.WithContext(ctx).
		Where("id IN ? AND household_id = ?", ids, active.ID).
		Find(&ingredients).Error
	if err != nil {
		return nil, err
	}
	if len(ingredients) != len(ids) {
		return nil, apperrors.NewValidationError("ingredients", "one or more ingredients do not exist in your household")
	}
	return ingredients, nil
}

// checkUnique enforces (name, household) uniqueness.
func (s *RecipeService) checkUnique(ctx context.Context, householdID uuid.UUID, name string, excludeID uuid.UUID) error {
	query := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("name = ? AND household_id = ?", name, householdID)
	if excludeID != uuid.Nil {
		query = query.Where("id != ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperrors.NewValidationError("name", "a recipe with this name already exists in your household")
	}
	return nil
}
