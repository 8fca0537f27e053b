package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/recipeshare/backend/internal/middleware"
	"github.com/recipeshare/backend/internal/models"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(email, password, username string) (string, error)
	Login(email, password string) (string, error)
	ValidateToken(token string) (*middleware.TokenClaims, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error)
	ListRecipes(ctx context.Context, filter RecipeFilter) ([]models.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, id, userID uuid.UUID, patch *RecipeUpdate) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, id, userID uuid.UUID) error
	ToggleLike(ctx context.Context, recipeID, userID uuid.UUID) (int64, bool, error)
	RateRecipe(ctx context.Context, recipeID, userID uuid.UUID, rating int) error
}
