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

// CategoryService manages ingredient categories scoped to the active
// household. Category names are unique within a household.
type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// List returns the active household's categories. Household-less users see
// an empty list.
func (s *CategoryService) List(ctx context.Context, active *models.Household) ([]models.IngredientCategory, error) {
	if active == nil {
		return []models.IngredientCategory{}, nil
	}
	var categories []models.IngredientCategory
	err := s.db.WithContext(ctx).
		Where("household_id = ?", active.ID).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// Get looks up a category by id without an ownership check; callers authorize
// the operation they are about to perform.
func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*models.IngredientCategory, error) {
	var category models.IngredientCategory
	if err := s.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category: %w", apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &category, nil
}

// Create adds a category to the active household.
func (s *CategoryService) Create(ctx context.Context, active *models.Household, name, description string) (*models.IngredientCategory, error) {
	if err := Authorize(nil, active, OpCreate); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "name is required")
	}
	if err := s.checkUnique(ctx, active.ID, name, uuid.Nil); err != nil {
		return nil, err
	}

	householdID := active.ID
	category := models.IngredientCategory{
		Name:        name,
		Description: description,
		HouseholdID: &householdID,
	}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Update renames or re-describes a category owned by the active household.
func (s *CategoryService) Update(ctx context.Context, active *models.Household, id uuid.UUID, name, description string) (*models.IngredientCategory, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(category, active, OpUpdate); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "name is required")
	}
	if err := s.checkUnique(ctx, active.ID, name, category.ID); err != nil {
		return nil, err
	}

	category.Name = name
	category.Description = description
	if err := s.db.WithContext(ctx).Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category owned by the active household. With
// deleteIngredients the household's ingredients in the category go with it;
// otherwise they survive with a cleared category reference. Either way the
// category and its dependents change in one transaction.
func (s *CategoryService) Delete(ctx context.Context, active *models.Household, id uuid.UUID, deleteIngredients bool) error {
	category, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := Authorize(category, active, OpDelete); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if deleteIngredients {
			if err := tx.Where("household_id = ? AND category_id = ?", active.ID, category.ID).
				Delete(&models.Ingredient{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Model(&models.Ingredient{}).
				Where("category_id = ?", category.ID).
				Update("category_id", nil).Error; err != nil {
				return err
			}
		}
		return tx.Delete(category).Error
	})
}

// checkUnique enforces (name, household) uniqueness. excludeID skips the row
// being updated.
func (s *CategoryService) checkUnique(ctx context.Context, householdID uuid.UUID, name string, excludeID uuid.UUID) error {
	query := s.db.WithContext(ctx).Model(&models.IngredientCategory{}).
		Where("name = ? AND household_id = ?", name, householdID)
	if excludeID != uuid.Nil {
		query = query.Where("id != ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperrors.NewValidationError("name", "a category with this name already exists in your household")
	}
	return nil
}
