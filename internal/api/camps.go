package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/freizeitplan/backend/internal/middleware"
	"github.com/freizeitplan/backend/internal/service"
)

// CampHandler exposes camp management endpoints.
type CampHandler struct {
	camps  *service.CampService
	stats  *service.StatsService
	logger *zap.Logger
}

func NewCampHandler(camps *service.CampService, stats *service.StatsService, logger *zap.Logger) *CampHandler {
	return &CampHandler{camps: camps, stats: stats, logger: logger}
}

// RegisterRoutes sets up the camp routes.
func (h *CampHandler) RegisterRoutes(router *gin.RouterGroup) {
	camps := router.Group("/camps")
	{
		camps.GET("", h.List)
		camps.POST("", h.Create)
		camps.GET("/:id", h.Get)
		camps.PUT("/:id", h.Update)
		camps.DELETE("/:id", h.Delete)
		camps.POST("/:id/select", h.Select)
		camps.GET("/:id/statistics", h.Statistics)
	}
}

func (h *CampHandler) List(c *gin.Context) {
	camps, err := h.camps.List(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, camps)
}

func (h *CampHandler) Create(c *gin.Context) {
	var req CampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	camp, err := h.camps.Create(c.Request.Context(), input)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, camp)
}

func (h *CampHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid camp ID"})
		return
	}
	camp, err := h.camps.Get(c.Request.Context(), id)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, camp)
}

func (h *CampHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid camp ID"})
		return
	}
	var req CampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	camp, err := h.camps.Update(c.Request.Context(), id, input)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, camp)
}

func (h *CampHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid camp ID"})
		return
	}
	if err := h.camps.Delete(c.Request.Context(), id); err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "camp deleted"})
}

// Select marks a camp as the active one by bumping its last-accessed time,
// which drives the ordering of the camp list.
func (h *CampHandler) Select(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid camp ID"})
		return
	}
	if err := h.camps.Touch(c.Request.Context(), id); err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "camp selected"})
}

func (h *CampHandler) Statistics(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid camp ID"})
		return
	}
	stats, err := h.stats.ForCamp(c.Request.Context(), id)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
