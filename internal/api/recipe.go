package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/recipeshare/backend/config"
	"github.com/recipeshare/backend/internal/middleware"
	"github.com/recipeshare/backend/internal/models"
	"github.com/recipeshare/backend/internal/service"
)

// RecipeHandler serves the recipe CRUD and social endpoints.
type RecipeHandler struct {
	recipes     service.IRecipeService
	authService service.IAuthService
	storage     middleware.ImageStorage
	rateLimiter *middleware.RateLimiter
}

func NewRecipeHandler(recipes service.IRecipeService, authService service.IAuthService, storage middleware.ImageStorage, rateLimiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipes:     recipes,
		authService: authService,
		storage:     storage,
		rateLimiter: rateLimiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.AuthMiddleware(h.authService)

	limit := func(c *gin.Context) { c.Next() }
	if h.rateLimiter != nil {
		limit = h.rateLimiter.Middleware()
	}

	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", auth, limit, middleware.Upload(h.storage), h.CreateRecipe)
		recipes.PUT("/:id", auth, limit, h.UpdateRecipe)
		recipes.DELETE("/:id", auth, limit, h.DeleteRecipe)
		recipes.POST("/:id/like", auth, h.LikeRecipe)
		recipes.POST("/:id/rate", auth, h.RateRecipe)
	}
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	recipe := models.Recipe{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		Difficulty:  c.PostForm("difficulty"),
		AuthorID:    userID,
	}

	// Array fields arrive JSON-encoded inside the multipart form.
	for field, dst := range map[string]*models.JSONBStringArray{
		"ingredients":  &recipe.Ingredients,
		"instructions": &recipe.Instructions,
		"tags":         &recipe.Tags,
		"dietary":      &recipe.Dietary,
	} {
		values, err := decodeStringArray(c.PostForm(field))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s: expected a JSON array of strings", field)})
			return
		}
		*dst = models.JSONBStringArray(values)
	}

	for field, dst := range map[string]*int{
		"prepTime": &recipe.PrepTime,
		"cookTime": &recipe.CookTime,
		"servings": &recipe.Servings,
	} {
		raw := c.PostForm(field)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s: expected a number", field)})
			return
		}
		*dst = n
	}

	if images, exists := c.Get(middleware.UploadedImagesKey); exists {
		recipe.Images = models.JSONBStringArray(images.([]string))
	}

	created, err := h.recipes.CreateRecipe(c.Request.Context(), &recipe)
	if err != nil {
		h.respondError(c, err, "Error creating recipe")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Recipe created successfully",
		"recipe":  toRecipeResponse(created),
	})
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filter := service.RecipeFilter{
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
		Dietary:    c.Query("dietary"),
		Search:     c.Query("search"),
		SortBy:     c.Query("sortBy"),
	}

	recipes, err := h.recipes.ListRecipes(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err, "Error fetching recipes")
		return
	}

	resp := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		resp = append(resp, toRecipeResponse(&recipes[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Error fetching recipe")
		return
	}

	c.JSON(http.StatusOK, toRecipeDetailResponse(recipe))
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := service.RecipeUpdate{
		Title:        req.Title,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		Images:       req.Images,
		Category:     req.Category,
		Difficulty:   req.Difficulty,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
		Tags:         req.Tags,
		Dietary:      req.Dietary,
	}

	updated, err := h.recipes.UpdateRecipe(c.Request.Context(), id, userID, &patch)
	if err != nil {
		h.respondError(c, err, "Error updating recipe")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe updated successfully",
		"recipe":  toRecipeResponse(updated),
	})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), id, userID); err != nil {
		h.respondError(c, err, "Error deleting recipe")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted successfully"})
}

func (h *RecipeHandler) LikeRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	count, liked, err := h.recipes.ToggleLike(c.Request.Context(), id, userID)
	if err != nil {
		h.respondError(c, err, "Error liking recipe")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe like toggled",
		"likes":   count,
		"isLiked": liked,
	})
}

func (h *RecipeHandler) RateRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req RateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.recipes.RateRecipe(c.Request.Context(), id, userID, req.Rating); err != nil {
		h.respondError(c, err, "Error rating recipe")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe rated successfully"})
}

// respondError maps service errors to HTTP statuses. Unexpected failures
// are logged server-side; their details reach the client only outside
// production.
func (h *RecipeHandler) respondError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized to modify this recipe"})
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("%s: %v", action, err)
		resp := gin.H{"error": action}
		if !config.IsProduction() {
			resp["detail"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, resp)
	}
}

func recipeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return uuid.Nil, false
	}
	return id, true
}

func callerID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, false
	}
	id, ok := val.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, false
	}
	return id, true
}

// decodeStringArray parses an array field submitted as a JSON-encoded
// string inside multipart form data. An empty value decodes to nil.
func decodeStringArray(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, err
	}
	return values, nil
}
