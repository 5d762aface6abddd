package database

import (
	"gorm.io/gorm"

	"github.com/homeboardapp/backend/internal/models"
)

// Migrate applies the schema for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Household{},
		&models.HouseholdMember{},
		&models.IngredientCategory{},
		&models.Ingredient{},
		&models.Recipe{},
	)
}
