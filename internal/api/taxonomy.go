package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/freizeitplan/backend/internal/middleware"
	"github.com/freizeitplan/backend/internal/models"
	"github.com/freizeitplan/backend/internal/service"
)

// TaxonomyHandler exposes tag and allergen endpoints.
type TaxonomyHandler struct {
	taxonomy *service.TaxonomyService
}

func NewTaxonomyHandler(taxonomy *service.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomy: taxonomy}
}

// RegisterRoutes sets up the tag and allergen routes.
func (h *TaxonomyHandler) RegisterRoutes(router *gin.RouterGroup) {
	tags := router.Group("/tags")
	{
		tags.GET("", h.ListTags)
		tags.POST("", h.CreateTag)
		tags.DELETE("/:id", h.DeleteTag)
	}
	allergens := router.Group("/allergens")
	{
		allergens.GET("", h.ListAllergens)
		allergens.POST("", h.CreateAllergen)
		allergens.DELETE("/:id", h.DeleteAllergen)
	}
}

type tagRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

type allergenRequest struct {
	Name string `json:"name" binding:"required"`
	Icon string `json:"icon"`
}

func (h *TaxonomyHandler) ListTags(c *gin.Context) {
	tags, err := h.taxonomy.ListTags(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (h *TaxonomyHandler) CreateTag(c *gin.Context) {
	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tag, err := h.taxonomy.CreateTag(c.Request.Context(), &models.Tag{
		Name:  req.Name,
		Color: req.Color,
		Icon:  req.Icon,
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

func (h *TaxonomyHandler) DeleteTag(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tag ID"})
		return
	}
	if err := h.taxonomy.DeleteTag(c.Request.Context(), id); err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tag deleted"})
}

func (h *TaxonomyHandler) ListAllergens(c *gin.Context) {
	allergens, err := h.taxonomy.ListAllergens(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, allergens)
}

func (h *TaxonomyHandler) CreateAllergen(c *gin.Context) {
	var req allergenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	allergen, err := h.taxonomy.CreateAllergen(c.Request.Context(), &models.Allergen{
		Name: req.Name,
		Icon: req.Icon,
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, allergen)
}

func (h *TaxonomyHandler) DeleteAllergen(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid allergen ID"})
		return
	}
	if err := h.taxonomy.DeleteAllergen(c.Request.Context(), id); err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "allergen deleted"})
}
