package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/freizeitplan/backend/internal/middleware"
	"github.com/freizeitplan/backend/internal/service"
)

// ShoppingListHandler exposes the calculated shopping list for a camp.
type ShoppingListHandler struct {
	shopping *service.ShoppingListService
	logger   *zap.Logger
}

func NewShoppingListHandler(shopping *service.ShoppingListService, logger *zap.Logger) *ShoppingListHandler {
	return &ShoppingListHandler{shopping: shopping, logger: logger}
}

// RegisterRoutes sets up the shopping list routes.
func (h *ShoppingListHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/camps/:id/shopping-list", h.Get)
	router.GET("/camps/:id/shopping-list/summary", h.Summary)
}

func (h *ShoppingListHandler) Get(c *gin.Context) {
	campID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid camp ID"})
		return
	}
	list, err := h.shopping.Calculate(c.Request.Context(), campID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Summary returns headline numbers without the per-item breakdown.
func (h *ShoppingListHandler) Summary(c *gin.Context) {
	campID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid camp ID"})
		return
	}
	list, err := h.shopping.Calculate(c.Request.Context(), campID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"camp_id":       list.CampID,
		"total_items":   list.TotalItems,
		"total_recipes": list.TotalRecipes,
		"categories":    len(list.Categories),
	})
}
