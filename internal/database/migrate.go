package database

import (
	"gorm.io/gorm"

	"github.com/recipeshare/backend/internal/models"
)

// Migrate brings the schema up to date for every model in the application.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Recipe{},
		&models.RecipeLike{},
		&models.RecipeRating{},
	)
}
