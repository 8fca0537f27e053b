package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/recipeshare/backend/config"
	"github.com/recipeshare/backend/internal/api"
	"github.com/recipeshare/backend/internal/database"
	"github.com/recipeshare/backend/web"
)

// New configures the application routes: the JSON API under /api, uploaded
// images under /uploads, and the embedded browser client under /app.
func New(cfg *config.Config, db *database.DB, authHandler *api.AuthHandler, recipeHandler *api.RecipeHandler) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	router.GET("/api/health", func(c *gin.Context) {
		if err := db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	apiGroup := router.Group("/api")
	authHandler.RegisterRoutes(apiGroup)
	recipeHandler.RegisterRoutes(apiGroup)

	if cfg.StorageBackend == "local" {
		router.Static("/uploads", cfg.UploadDir)
	}

	web.Register(router)

	return router
}
