package controllers

import (
	"errors"
	"net/http"

	"github.com/comandaviva/comanda-api/config"
	"github.com/comandaviva/comanda-api/middleware"
	"github.com/comandaviva/comanda-api/models"
	"github.com/comandaviva/comanda-api/services"
	"github.com/comandaviva/comanda-api/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MenuItemRequest represents the request body for creating or updating a
// menu item. Category can be given by id or by name; a named category that
// does not exist yet is created.
type MenuItemRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" binding:"required"`
	CategoryID   uint    `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Available    *bool   `json:"available"`
	SortOrder    int     `json:"sort_order"`
	PrepMinutes  int     `json:"prep_minutes"`
	Ingredients  string  `json:"ingredients"`
}

// ListMenuItems handles GET /api/v1/menu - the company's menu with presigned
// image URLs
func ListMenuItems(c *gin.Context) {
	companyID, err := middleware.GetCompanyID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not determine company")
		return
	}

	var items []models.MenuItem
	err = config.GetDB().Preload("Category").
		Where("company_id = ?", companyID).
		Order("sort_order ASC, name ASC").
		Find(&items).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load menu")
		return
	}

	attachImageURLs(items)
	respondData(c, http.StatusOK, items)
}

// CreateMenuItem handles POST /api/v1/menu
func CreateMenuItem(c *gin.Context) {
	companyID, err := middleware.GetCompanyID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not determine company")
		return
	}

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	db := config.GetDB()
	categoryID, err := resolveCategory(db, companyID, req)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	item := models.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  categoryID,
		CompanyID:   companyID,
		Available:   available,
		SortOrder:   req.SortOrder,
		PrepMinutes: req.PrepMinutes,
		Ingredients: req.Ingredients,
	}

	if err := db.Create(&item).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create menu item")
		return
	}

	db.Preload("Category").First(&item, item.ID)
	respondData(c, http.StatusCreated, item)
}

// UpdateMenuItem handles PUT /api/v1/menu/:id
func UpdateMenuItem(c *gin.Context) {
	companyID, err := middleware.GetCompanyID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not determine company")
		return
	}

	itemID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid menu item id")
		return
	}

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	db := config.GetDB()
	var item models.MenuItem
	err = db.Where("id = ? AND company_id = ?", itemID, companyID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Menu item not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load menu item")
		return
	}

	categoryID, err := resolveCategory(db, companyID, req)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	item.Name = req.Name
	item.Description = req.Description
	item.Price = req.Price
	item.CategoryID = categoryID
	item.SortOrder = req.SortOrder
	item.PrepMinutes = req.PrepMinutes
	item.Ingredients = req.Ingredients
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := db.Save(&item).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update menu item")
		return
	}

	db.Preload("Category").First(&item, item.ID)
	respondData(c, http.StatusOK, item)
}

// DeleteMenuItem handles DELETE /api/v1/menu/:id - also removes the stored
// image, if any
func DeleteMenuItem(c *gin.Context) {
	companyID, err := middleware.GetCompanyID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not determine company")
		return
	}

	itemID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid menu item id")
		return
	}

	db := config.GetDB()
	var item models.MenuItem
	err = db.Where("id = ? AND company_id = ?", itemID, companyID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Menu item not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load menu item")
		return
	}

	if item.ImageS3Key != nil {
		if svc := services.GetImageService(); svc != nil {
			// best effort, the row is removed either way
			_ = svc.DeleteImage(*item.ImageS3Key)
		}
	}

	if err := db.Delete(&item).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete menu item")
		return
	}

	respondData(c, http.StatusOK, gin.H{"deleted": true})
}

// UploadMenuItemImage handles POST /api/v1/menu/:id/image - multipart upload
// of a menu photo
func UploadMenuItemImage(c *gin.Context) {
	companyID, err := middleware.GetCompanyID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not determine company")
		return
	}

	itemID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid menu item id")
		return
	}

	db := config.GetDB()
	var item models.MenuItem
	err = db.Where("id = ? AND company_id = ?", itemID, companyID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Menu item not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load menu item")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Image file is required")
		return
	}

	svc := services.GetImageService()
	if svc == nil {
		respondError(c, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "Image storage is not configured")
		return
	}

	s3Key, err := svc.UploadImage(fileHeader)
	if err != nil {
		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			respondError(c, http.StatusBadRequest, uploadErr.Code, uploadErr.Message)
			return
		}
		respondError(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to upload image")
		return
	}

	// replace the previous image if there was one
	if item.ImageS3Key != nil && *item.ImageS3Key != s3Key {
		_ = svc.DeleteImage(*item.ImageS3Key)
	}

	item.ImageS3Key = &s3Key
	if err := db.Model(&item).Update("image_s3_key", s3Key).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save image reference")
		return
	}

	if url, err := svc.GetImageURL(s3Key); err == nil && url != "" {
		item.ImageURL = &url
	}

	respondData(c, http.StatusOK, item)
}

// resolveCategory finds the category for a menu item request. A category
// name with no matching row creates the category on the fly.
func resolveCategory(db *gorm.DB, companyID uint, req MenuItemRequest) (uint, error) {
	if req.CategoryID != 0 {
		var category models.Category
		err := db.Where("id = ? AND company_id = ?", req.CategoryID, companyID).First(&category).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, errors.New("category not found")
		}
		if err != nil {
			return 0, err
		}
		return category.ID, nil
	}

	if req.CategoryName == "" {
		return 0, errors.New("category_id or category_name is required")
	}

	var category models.Category
	err := db.Where("company_id = ? AND name = ?", companyID, req.CategoryName).
		FirstOrCreate(&category, models.Category{
			Name:      req.CategoryName,
			CompanyID: companyID,
			Active:    true,
		}).Error
	if err != nil {
		return 0, err
	}
	return category.ID, nil
}

// attachImageURLs fills the computed ImageURL field with presigned URLs
func attachImageURLs(items []models.MenuItem) {
	svc := services.GetImageService()
	if svc == nil {
		return
	}
	for i := range items {
		if items[i].ImageS3Key == nil {
			continue
		}
		url, err := svc.GetImageURL(*items[i].ImageS3Key)
		if err != nil || url == "" {
			continue
		}
		items[i].ImageURL = &url
	}
}
