package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freizeitplan/backend/internal/middleware"
	"github.com/freizeitplan/backend/internal/service"
	"github.com/freizeitplan/backend/internal/units"
)

// SettingsHandler exposes the unit display rule settings.
type SettingsHandler struct {
	settings *service.SettingsService
}

func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// RegisterRoutes sets up the settings routes.
func (h *SettingsHandler) RegisterRoutes(router *gin.RouterGroup) {
	settings := router.Group("/settings")
	{
		settings.GET("/conversions", h.ListConversions)
		settings.PUT("/conversions/:unit", h.SetConversion)
		settings.DELETE("/conversions/:unit", h.DeleteConversion)
	}
}

type conversionRequest struct {
	Threshold float64 `json:"threshold" binding:"required,gt=0"`
	Target    string  `json:"target" binding:"required"`
	Factor    float64 `json:"factor" binding:"required,gt=0"`
}

// ListConversions returns the defaults merged with custom overrides, so the
// client always sees the effective rule per unit.
func (h *SettingsHandler) ListConversions(c *gin.Context) {
	custom, err := h.settings.DisplayRules(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	effective := units.DefaultDisplayRules()
	for unit, rule := range custom {
		effective[unit] = rule
	}
	c.JSON(http.StatusOK, gin.H{
		"defaults": units.DefaultDisplayRules(),
		"custom":   custom,
		"rules":    effective,
	})
}

func (h *SettingsHandler) SetConversion(c *gin.Context) {
	unit := units.Normalize(c.Param("unit"))
	var req conversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rule := units.DisplayRule{
		Threshold: req.Threshold,
		Target:    req.Target,
		Factor:    req.Factor,
	}
	if err := h.settings.SetDisplayRule(c.Request.Context(), unit, rule); err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unit": unit, "rule": rule})
}

func (h *SettingsHandler) DeleteConversion(c *gin.Context) {
	unit := units.Normalize(c.Param("unit"))
	if err := h.settings.RemoveDisplayRule(c.Request.Context(), unit); err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "conversion rule removed"})
}
