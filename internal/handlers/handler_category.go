package handlers

import (
	"net/http"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/fintrack-app/fintrack_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// listCategories godoc
// @Summary Category catalog
// @Description Returns the fixed category catalog used for display grouping
// @Tags categories
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Router /categories [get]
func listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToCategoryResponses(domain.Categories))
}

// registerCategoryRoutes registers the category catalog route.
func registerCategoryRoutes(rg *gin.RouterGroup) {
	rg.GET("/categories", listCategories)
}
