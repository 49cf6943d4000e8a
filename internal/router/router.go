package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/freizeitplan/backend/internal/api"
	"github.com/freizeitplan/backend/internal/database"
	"github.com/freizeitplan/backend/internal/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Camps        *api.CampHandler
	Recipes      *api.RecipeHandler
	Ingredients  *api.IngredientHandler
	Taxonomy     *api.TaxonomyHandler
	MealPlans    *api.MealPlanHandler
	ShoppingList *api.ShoppingListHandler
	Exports      *api.ExportHandler
	Settings     *api.SettingsHandler
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers, db *gorm.DB, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context(), db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")

	h.Camps.RegisterRoutes(v1)
	h.Recipes.RegisterRoutes(v1)
	h.Ingredients.RegisterRoutes(v1)
	h.Taxonomy.RegisterRoutes(v1)
	h.MealPlans.RegisterRoutes(v1)
	h.ShoppingList.RegisterRoutes(v1)
	h.Exports.RegisterRoutes(v1)
	h.Settings.RegisterRoutes(v1)

	return router
}
