package http

import (
	"github.com/gin-gonic/gin"

	"github.com/drinkdex/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		catalog := v1.Group("/catalog")
		{
			catalog.POST("/refresh", handler.RefreshCatalog)
			catalog.GET("", handler.ListCatalog)
			catalog.GET("/categories", handler.ListCategories)
		}

		ratings := v1.Group("/ratings")
		{
			ratings.GET("/:view", handler.RatingView)
			ratings.GET("/:view/personal", handler.GetPersonalRatings)
			ratings.PUT("/:view/personal", handler.PutPersonalRatings)
		}

		cocktails := v1.Group("/cocktails")
		{
			cocktails.GET("", handler.ListCocktails)
			cocktails.GET("/ingredients", handler.ListIngredients)
		}

		v1.GET("/barshelf", handler.GetShelf)
		v1.PUT("/barshelf", handler.PutShelf)
	}

	return router
}
