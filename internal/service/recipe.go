package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/recipeshare/backend/internal/models"
)

// RecipeService handles recipe persistence and queries.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// Sort orders accepted by ListRecipes.
const (
	SortNewest  = "newest"
	SortOldest  = "oldest"
	SortPopular = "popular"
)

// RecipeFilter carries the optional list query parameters.
type RecipeFilter struct {
	Category   string
	Difficulty string
	Dietary    string
	Search     string
	SortBy     string
}

// RecipeUpdate is the whitelist of fields a recipe author may change.
// Author, likes, ratings and timestamps are deliberately absent.
type RecipeUpdate struct {
	Title        *string
	Description  *string
	Ingredients  *[]string
	Instructions *[]string
	Images       *[]string
	Category     *string
	Difficulty   *string
	PrepTime     *int
	CookTime     *int
	Servings     *int
	Tags         *[]string
	Dietary      *[]string
}

// CreateRecipe validates and persists a new recipe, returning it with the
// author's display profile populated.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	if err := recipe.Validate(); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, recipe.ID)
}

// ListRecipes returns recipes matching the filter, with author profiles and
// likes populated. Sorting is newest (default), oldest, or popular by
// descending like count.
func (s *RecipeService) ListRecipes(ctx context.Context, filter RecipeFilter) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Preload("Author.Profile").
		Preload("Likes")

	if filter.Category != "" {
		query = query.Where("recipes.category = ?", filter.Category)
	}
	if filter.Difficulty != "" {
		query = query.Where("recipes.difficulty = ?", filter.Difficulty)
	}
	if filter.Dietary != "" {
		if s.db.Dialector.Name() == "postgres" {
			query = query.Where("recipes.dietary @> ?::jsonb", fmt.Sprintf("[%q]", filter.Dietary))
		} else {
			query = query.Where("CAST(recipes.dietary AS TEXT) LIKE ?", fmt.Sprintf("%%%q%%", filter.Dietary))
		}
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		if s.db.Dialector.Name() == "postgres" {
			query = query.Where(
				"LOWER(recipes.title) LIKE ? OR LOWER(recipes.tags::text) LIKE ? OR LOWER(recipes.description) LIKE ?",
				like, like, like)
		} else {
			query = query.Where(
				"LOWER(recipes.title) LIKE ? OR LOWER(CAST(recipes.tags AS TEXT)) LIKE ? OR LOWER(recipes.description) LIKE ?",
				like, like, like)
		}
	}

	switch filter.SortBy {
	case SortPopular:
		query = query.
			Joins("LEFT JOIN (SELECT recipe_id, COUNT(*) AS like_count FROM recipe_likes GROUP BY recipe_id) lc ON lc.recipe_id = recipes.id").
			Order("COALESCE(lc.like_count, 0) DESC").
			Order("recipes.created_at DESC")
	case SortOldest:
		query = query.Order("recipes.created_at ASC")
	default:
		query = query.Order("recipes.created_at DESC")
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetRecipe fetches one recipe with author, likers and ratings resolved to
// display form.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Author.Profile").
		Preload("Likes.User.Profile").
		Preload("Ratings.User.Profile").
		First(&recipe, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// UpdateRecipe applies a whitelisted patch to a recipe owned by userID.
// The merged result is re-validated with the same rules as creation.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id, userID uuid.UUID, patch *RecipeUpdate) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if recipe.AuthorID != userID {
		return nil, ErrForbidden
	}

	if patch.Title != nil {
		recipe.Title = *patch.Title
	}
	if patch.Description != nil {
		recipe.Description = *patch.Description
	}
	if patch.Ingredients != nil {
		recipe.Ingredients = models.JSONBStringArray(*patch.Ingredients)
	}
	if patch.Instructions != nil {
		recipe.Instructions = models.JSONBStringArray(*patch.Instructions)
	}
	if patch.Images != nil {
		recipe.Images = models.JSONBStringArray(*patch.Images)
	}
	if patch.Category != nil {
		recipe.Category = *patch.Category
	}
	if patch.Difficulty != nil {
		recipe.Difficulty = *patch.Difficulty
	}
	if patch.PrepTime != nil {
		recipe.PrepTime = *patch.PrepTime
	}
	if patch.CookTime != nil {
		recipe.CookTime = *patch.CookTime
	}
	if patch.Servings != nil {
		recipe.Servings = *patch.Servings
	}
	if patch.Tags != nil {
		recipe.Tags = models.JSONBStringArray(*patch.Tags)
	}
	if patch.Dietary != nil {
		recipe.Dietary = models.JSONBStringArray(*patch.Dietary)
	}

	if err := recipe.Validate(); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(&recipe).Error; err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, id)
}

// DeleteRecipe removes a recipe owned by userID.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id, userID uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	if recipe.AuthorID != userID {
		return ErrForbidden
	}

	return s.db.WithContext(ctx).Delete(&recipe).Error
}

// ToggleLike flips the like membership of userID on a recipe and returns
// the new like count and whether the recipe is now liked. The delete-or-
// insert runs against the unique (recipe_id, user_id) index, so concurrent
// toggles by different users cannot overwrite each other.
func (s *RecipeService) ToggleLike(ctx context.Context, recipeID, userID uuid.UUID) (int64, bool, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).Select("id").First(&recipe, "id = ?", recipeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, false, ErrNotFound
		}
		return 0, false, err
	}

	res := s.db.WithContext(ctx).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		Delete(&models.RecipeLike{})
	if res.Error != nil {
		return 0, false, res.Error
	}

	liked := false
	if res.RowsAffected == 0 {
		like := models.RecipeLike{RecipeID: recipeID, UserID: userID}
		err := s.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&like).Error
		if err != nil {
			return 0, false, err
		}
		liked = true
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&models.RecipeLike{}).
		Where("recipe_id = ?", recipeID).
		Count(&count).Error
	if err != nil {
		return 0, false, err
	}
	return count, liked, nil
}

// RateRecipe records userID's rating for a recipe. A second rating by the
// same user replaces the first.
func (s *RecipeService) RateRecipe(ctx context.Context, recipeID, userID uuid.UUID, rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", models.ErrValidation)
	}

	var recipe models.Recipe
	if err := s.db.WithContext(ctx).Select("id").First(&recipe, "id = ?", recipeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}

	entry := models.RecipeRating{RecipeID: recipeID, UserID: userID, Rating: rating}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "recipe_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"rating": rating}),
		}).
		Create(&entry).Error
}
