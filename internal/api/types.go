package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/recipeshare/backend/internal/models"
)

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Username string `json:"username" binding:"required"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateRecipeRequest is the whitelist body of PUT /api/recipes/:id. Fields
// left out of the JSON body are not touched.
type UpdateRecipeRequest struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Ingredients  *[]string `json:"ingredients"`
	Instructions *[]string `json:"instructions"`
	Images       *[]string `json:"images"`
	Category     *string   `json:"category"`
	Difficulty   *string   `json:"difficulty"`
	PrepTime     *int      `json:"prepTime"`
	CookTime     *int      `json:"cookTime"`
	Servings     *int      `json:"servings"`
	Tags         *[]string `json:"tags"`
	Dietary      *[]string `json:"dietary"`
}

// RateRecipeRequest is the body of POST /api/recipes/:id/rate.
type RateRecipeRequest struct {
	Rating int `json:"rating" binding:"required"`
}

// AuthorResponse is the display form of a recipe author.
type AuthorResponse struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	Bio            string    `json:"bio,omitempty"`
}

// LikeResponse identifies one user who liked a recipe.
type LikeResponse struct {
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
}

// RatingResponse is one user's rating of a recipe.
type RatingResponse struct {
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
	Rating   int       `json:"rating"`
}

// RecipeResponse is the wire form of a recipe in list, create and update
// responses. Likes appear as a count only.
type RecipeResponse struct {
	ID           uuid.UUID      `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Ingredients  []string       `json:"ingredients"`
	Instructions []string       `json:"instructions"`
	Images       []string       `json:"images"`
	Author       AuthorResponse `json:"author"`
	Category     string         `json:"category"`
	Difficulty   string         `json:"difficulty"`
	PrepTime     int            `json:"prepTime"`
	CookTime     int            `json:"cookTime"`
	Servings     int            `json:"servings"`
	Likes        int            `json:"likes"`
	Tags         []string       `json:"tags"`
	Dietary      []string       `json:"dietary"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// RecipeDetailResponse is the wire form of GET /api/recipes/:id, with
// likers and ratings resolved to display form.
type RecipeDetailResponse struct {
	RecipeResponse
	LikedBy []LikeResponse   `json:"likedBy"`
	Ratings []RatingResponse `json:"ratings"`
}

func toAuthorResponse(author models.User) AuthorResponse {
	return AuthorResponse{
		ID:             author.ID,
		Username:       author.Profile.Username,
		ProfilePicture: author.Profile.ProfilePictureURL,
		Bio:            author.Profile.Bio,
	}
}

func toRecipeResponse(r *models.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Ingredients:  []string(r.Ingredients),
		Instructions: []string(r.Instructions),
		Images:       []string(r.Images),
		Author:       toAuthorResponse(r.Author),
		Category:     r.Category,
		Difficulty:   r.Difficulty,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		Servings:     r.Servings,
		Likes:        len(r.Likes),
		Tags:         []string(r.Tags),
		Dietary:      []string(r.Dietary),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toRecipeDetailResponse(r *models.Recipe) RecipeDetailResponse {
	resp := RecipeDetailResponse{
		RecipeResponse: toRecipeResponse(r),
		LikedBy:        []LikeResponse{},
		Ratings:        []RatingResponse{},
	}
	for _, like := range r.Likes {
		resp.LikedBy = append(resp.LikedBy, LikeResponse{
			UserID:   like.UserID,
			Username: like.User.Profile.Username,
		})
	}
	for _, rating := range r.Ratings {
		resp.Ratings = append(resp.Ratings, RatingResponse{
			UserID:   rating.UserID,
			Username: rating.User.Profile.Username,
			Rating:   rating.Rating,
		})
	}
	return resp
}
