package service

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/recipeshare/backend/internal/database"
	"github.com/recipeshare/backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) uuid.UUID {
	t.Helper()

	user := models.User{
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: "not-a-real-hash",
		Profile:      models.UserProfile{Username: username},
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user.ID
}

func newRecipe(authorID uuid.UUID, title string) *models.Recipe {
	return &models.Recipe{
		Title:        title,
		Description:  "A test recipe",
		Ingredients:  models.JSONBStringArray{"flour", "water"},
		Instructions: models.JSONBStringArray{"mix", "bake"},
		Category:     "dinner",
		Difficulty:   "easy",
		PrepTime:     10,
		CookTime:     20,
		Servings:     4,
		AuthorID:     authorID,
	}
}
