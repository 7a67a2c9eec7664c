package controllers

import (
	"errors"
	"net/http"

	"github.com/comandaviva/comanda-api/config"
	"github.com/comandaviva/comanda-api/middleware"
	"github.com/comandaviva/comanda-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CategoryRequest represents the request body for creating or updating a
// category
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
	SortOrder   int    `json:"sort_order"`
	Active      *bool  `json:"active"`
}

// ListCategories handles GET /api/v1/categories
func ListCategories(c *gin.Context) {
	companyID, err := middleware.GetCompanyID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not determine company")
		return
	}

	var categories []models.Category
	err = config.GetDB().
		Where("company_id = ?", companyID).
		Order("sort_order ASC, name ASC").
		Find(&categories).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load categories")
		return
	}

	respondData(c, http.StatusOK, categories)
}

// CreateCategory handles POST /api/v1/categories
func CreateCategory(c *gin.Context) {
	companyID, err := middleware.GetCompanyID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not determine company")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		SortOrder:   req.SortOrder,
		CompanyID:   companyID,
		Active:      active,
	}

	if err := config.GetDB().Create(&category).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create category")
		return
	}

	respondData(c, http.StatusCreated, category)
}

// UpdateCategory handles PUT /api/v1/categories/:id
func UpdateCategory(c *gin.Context) {
	companyID, err := middleware.GetCompanyID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not determine company")
		return
	}

	categoryID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid category id")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	db := config.GetDB()
	var category models.Category
	err = db.Where("id = ? AND company_id = ?", categoryID, companyID).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Category not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load category")
		return
	}

	category.Name = req.Name
	category.Description = req.Description
	category.Color = req.Color
	category.SortOrder = req.SortOrder
	if req.Active != nil {
		category.Active = *req.Active
	}

	if err := db.Save(&category).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update category")
		return
	}

	respondData(c, http.StatusOK, category)
}

// DeleteCategory handles DELETE /api/v1/categories/:id. A category that
// still has menu items cannot be removed.
func DeleteCategory(c *gin.Context) {
	companyID, err := middleware.GetCompanyID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not determine company")
		return
	}

	categoryID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid category id")
		return
	}

	db := config.GetDB()
	var category models.Category
	err = db.Where("id = ? AND company_id = ?", categoryID, companyID).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Category not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load category")
		return
	}

	var itemCount int64
	err = db.Model(&models.MenuItem{}).
		Where("category_id = ? AND company_id = ?", categoryID, companyID).
		Count(&itemCount).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to check category usage")
		return
	}
	if itemCount > 0 {
		respondError(c, http.StatusConflict, "CATEGORY_IN_USE", "Category still has menu items")
		return
	}

	if err := db.Delete(&category).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete category")
		return
	}

	respondData(c, http.StatusOK, gin.H{"deleted": true})
}
