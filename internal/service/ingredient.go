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

// IngredientService manages ingredients scoped to the active household.
// An ingredient name is unique per (household, category).
type IngredientService struct {
	db *gorm.DB
}

func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

// List returns the active household's ingredients ordered by name.
func (s *IngredientService) List(ctx context.Context, active *models.Household) ([]models.Ingredient, error) {
	if active == nil {
		return []models.Ingredient{}, nil
	}
	var ingredients []models.Ingredient
	err := s.db.WithContext(ctx).
		Preload("Category").
		Where("household_id = ?", active.ID).
		Order("name ASC").
		Find(&ingredients).Error
	if err != nil {
		return nil, err
	}
	return ingredients, nil
}

// Get looks up an ingredient by id without an ownership check.
func (s *IngredientService) Get(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).Preload("Category").First(&ingredient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("ingredient: %w", apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &ingredient, nil
}

// Create adds an ingredient to the active household, optionally filed under
// one of the household's categories.
func (s *IngredientService) Create(ctx context.Context, active *models.Household, name string, categoryID *uuid.UUID) (*models.Ingredient, error) {
	if err := Authorize(nil, active, OpCreate); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "name is required")
	}
	if err := s.checkCategory(ctx, active, categoryID); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, active.ID, name, categoryID, uuid.Nil); err != nil {
		return nil, err
	}

	householdID := active.ID
	ingredient := models.Ingredient{
		Name:        name,
		HouseholdID: &householdID,
		CategoryID:  categoryID,
	}
	if err := s.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// Update renames or re-files an ingredient owned by the active household.
func (s *IngredientService) Update(ctx context.Context, active *models.Household, id uuid.UUID, name string, categoryID *uuid.UUID) (*models.Ingredient, error) {
	ingredient, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(ingredient, active, OpUpdate); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "name is required")
	}
	if err := s.checkCategory(ctx, active, categoryID); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, active.ID, name, categoryID, ingredient.ID); err != nil {
		return nil, err
	}

	ingredient.Name = name
	ingredient.CategoryID = categoryID
	ingredient.Category = nil
	if err := s.db.WithContext(ctx).Save(ingredient).Error; err != nil {
		return nil, err
	}
	return ingredient, nil
}

// Delete removes an ingredient owned by the active household.
func (s *IngredientService) Delete(ctx context.Context, active *models.Household, id uuid.UUID) error {
	ingredient, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := Authorize(ingredient, active, OpDelete); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(ingredient).Error
}

// checkCategory requires the referenced category, when given, to belong to
// the active household. Foreign categories are indistinguishable from
// unknown ones here, exactly like a restricted form choice.
func (s *IngredientService) checkCategory(ctx context.Context, active *models.Household, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&models.IngredientCategory{}).
		Where("id = ? AND household_id = ?", *categoryID, active.ID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return apperrors.NewValidationError("category", "category does not exist in your household")
	}
	return nil
}

// checkUnique enforces (name, household, category) uniqueness, treating a
// missing category as its own scope.
func (s *IngredientService) checkUnique(ctx context.Context, householdID uuid.UUID, name string, categoryID *uuid.UUID, excludeID uuid.UUID) error {
	query := s.db.WithContext(ctx).Model(&models.Ingredient{}).
		Where("name = ? AND household_id = ?", name, householdID)
	if categoryID == nil {
		query = query.Where("category_id IS NULL")
	} else {
		query = query.Where("category_id = ?", *categoryID)
	}
	if excludeID != uuid.Nil {
		query = query.Where("id != ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperrors.NewValidationError("name", "an ingredient with this name already exists in this category")
	}
	return nil
}
