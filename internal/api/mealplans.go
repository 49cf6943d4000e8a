package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/freizeitplan/backend/internal/middleware"
	"github.com/freizeitplan/backend/internal/models"
	"github.com/freizeitplan/backend/internal/service"
)

// MealPlanHandler exposes the meal planning endpoints.
type MealPlanHandler struct {
	mealPlans *service.MealPlanService
	logger    *zap.Logger
}

func NewMealPlanHandler(mealPlans *service.MealPlanService, logger *zap.Logger) *MealPlanHandler {
	return &MealPlanHandler{mealPlans: mealPlans, logger: logger}
}

// RegisterRoutes sets up the meal plan routes.
func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/camps/:id/meal-plans", h.ListForCamp)

	mealPlans := router.Group("/meal-plans")
	{
		mealPlans.POST("", h.Create)
		mealPlans.POST("/bulk", h.CreateBulk)
		mealPlans.GET("/:id", h.Get)
		mealPlans.PUT("/:id", h.Update)
		mealPlans.DELETE("/:id", h.Delete)
		mealPlans.POST("/:id/copy", h.Copy)
	}
}

func (h *MealPlanHandler) ListForCamp(c *gin.Context) {
	campID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid camp ID"})
		return
	}
	entries, err := h.mealPlans.ListForCamp(c.Request.Context(), campID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *MealPlanHandler) Create(c *gin.Context) {
	var req MealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, err := h.mealPlans.Create(c.Request.Context(), input)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// CreateBulk plans several meals in a single transaction, used when filling
// a whole camp week at once.
func (h *MealPlanHandler) CreateBulk(c *gin.Context) {
	var reqs []MealPlanRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	inputs := make([]service.MealPlanInput, 0, len(reqs))
	for _, req := range reqs {
		input, err := req.toInput()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		inputs = append(inputs, input)
	}
	entries, err := h.mealPlans.CreateBulk(c.Request.Context(), inputs)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entries)
}

func (h *MealPlanHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal plan ID"})
		return
	}
	entry, err := h.mealPlans.Get(c.Request.Context(), id)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *MealPlanHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal plan ID"})
		return
	}
	var req MealPlanUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, err := h.mealPlans.Update(c.Request.Context(), id, req.RecipeID, req.Notes)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *MealPlanHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal plan ID"})
		return
	}
	if err := h.mealPlans.Delete(c.Request.Context(), id); err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "meal plan entry deleted"})
}

// Copy duplicates an entry into another date and meal slot. When target_type
// is omitted the entry keeps its meal type.
func (h *MealPlanHandler) Copy(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal plan ID"})
		return
	}
	var req MealPlanCopyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	targetDate, err := time.Parse(dateLayout, req.TargetDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target_date"})
		return
	}
	var targetType models.MealType
	if req.TargetType != "" {
		targetType, err = models.ParseMealType(req.TargetType)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	} else {
		entry, err := h.mealPlans.Get(c.Request.Context(), id)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		targetType = entry.MealType
	}
	copied, err := h.mealPlans.Copy(c.Request.Context(), id, targetDate, targetType)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, copied)
}
