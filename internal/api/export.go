package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/freizeitplan/backend/internal/middleware"
	"github.com/freizeitplan/backend/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler exposes Excel export and import endpoints.
type ExportHandler struct {
	exports  *service.ExportService
	importer *service.ImportService
	logger   *zap.Logger
}

func NewExportHandler(exports *service.ExportService, importer *service.ImportService, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{exports: exports, importer: importer, logger: logger}
}

// RegisterRoutes sets up the export and import routes.
func (h *ExportHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/camps/:id/export/shopping-list", h.ShoppingList)
	router.GET("/camps/:id/export/meal-plan", h.MealPlan)
	router.POST("/import/recipes", h.ImportRecipes)
}

// ShoppingList streams the shopping list workbook as a download. With
// ?upload=true the workbook is stored in S3 instead and a presigned URL
// is returned.
func (h *ExportHandler) ShoppingList(c *gin.Context) {
	campID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid camp ID"})
		return
	}
	f, err := h.exports.ShoppingListWorkbook(c.Request.Context(), campID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	h.deliver(c, f, fmt.Sprintf("einkaufsliste-%s.xlsx", campID))
}

// MealPlan streams the meal plan workbook as a download. Supports the same
// ?upload=true behavior as ShoppingList.
func (h *ExportHandler) MealPlan(c *gin.Context) {
	campID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid camp ID"})
		return
	}
	f, err := h.exports.MealPlanWorkbook(c.Request.Context(), campID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	h.deliver(c, f, fmt.Sprintf("speiseplan-%s.xlsx", campID))
}

func (h *ExportHandler) deliver(c *gin.Context, f *excelize.File, filename string) {
	if c.Query("upload") == "true" {
		url, err := h.exports.Upload(c.Request.Context(), f, "exports/"+filename)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": url})
		return
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ImportRecipes accepts an uploaded workbook and imports one recipe per
// sheet.
func (h *ExportHandler) ImportRecipes(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return
	}
	src, err := file.Open()
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	defer src.Close()

	result, err := h.importer.ImportWorkbook(c.Request.Context(), src)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
