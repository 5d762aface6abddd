package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe belongs to exactly one household and references ingredients of that
// household through the recipe_ingredients join table.
type Recipe struct {
	ID          uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Name        string         `gorm:"size:100;not null;uniqueIndex:idx_recipe_name_household" json:"name"`
	Body        string         `gorm:"type:text;not null" json:"body"`
	HouseholdID uuid.UUID      `gorm:"type:varchar(36);not null;uniqueIndex:idx_recipe_name_household" json:"household_id"`
	Household   *Household     `gorm:"foreignKey:HouseholdID;constraint:OnDelete:CASCADE" json:"-"`
	Ingredients []Ingredient   `gorm:"many2many:recipe_ingredients" json:"ingredients,omitempty"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (r *Recipe) OwningHouseholdID() *uuid.UUID {
	return &r.HouseholdID
}
