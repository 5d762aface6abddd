package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IngredientCategory groups ingredients within a household. Rows with a NULL
// household and IsSystem set are shared system values; they share the
// (name, household) uniqueness scope with household rows.
type IngredientCategory struct {
	ID          uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Name        string         `gorm:"size:40;not null;uniqueIndex:idx_category_name_household" json:"name"`
	Description string         `gorm:"size:300" json:"description"`
	HouseholdID *uuid.UUID     `gorm:"type:varchar(36);uniqueIndex:idx_category_name_household" json:"household_id"`
	IsSystem    bool           `gorm:"not null;default:false" json:"is_system"`
	Household   *Household     `gorm:"foreignKey:HouseholdID;constraint:OnDelete:CASCADE" json:"-"`
}

func (c *IngredientCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *IngredientCategory) OwningHouseholdID() *uuid.UUID {
	return c.HouseholdID
}

// Ingredient is a household-scoped pantry item, optionally filed under a
// category. Deleting the category leaves the ingredient with a NULL category.
type Ingredient struct {
	ID          uuid.UUID           `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	DeletedAt   gorm.DeletedAt      `gorm:"index" json:"-"`
	Name        string              `gorm:"size:150;not null;uniqueIndex:idx_ingredient_name_scope" json:"name"`
	HouseholdID *uuid.UUID          `gorm:"type:varchar(36);uniqueIndex:idx_ingredient_name_scope" json:"household_id"`
	CategoryID  *uuid.UUID          `gorm:"type:varchar(36);uniqueIndex:idx_ingredient_name_scope" json:"category_id"`
	IsSystem    bool                `gorm:"not null;default:false" json:"is_system"`
	Household   *Household          `gorm:"foreignKey:HouseholdID;constraint:OnDelete:CASCADE" json:"-"`
	Category    *IngredientCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (i *Ingredient) OwningHouseholdID() *uuid.UUID {
	return i.HouseholdID
}
