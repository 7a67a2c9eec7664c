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

// DeliveryAreaRequest represents the request body for creating or updating a
// delivery area
type DeliveryAreaRequest struct {
	Name             string               `json:"name" binding:"required"`
	Neighborhoods    models.Neighborhoods `json:"neighborhoods"`
	RadiusKm         float64              `json:"radius_km"`
	DeliveryFee      float64              `json:"delivery_fee"`
	EstimatedMinutes int                  `json:"estimated_minutes"`
	Color            string               `json:"color"`
	Active           *bool                `json:"active"`
}

// ListDeliveryAreas handles GET /api/v1/delivery-areas
func ListDeliveryAreas(c *gin.Context) {
	companyID, err := middleware.GetCompanyID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not determine company")
		return
	}

	var areas []models.DeliveryArea
	err = config.GetDB().
		Where("company_id = ?", companyID).
		Order("name ASC").
		Find(&areas).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load delivery areas")
		return
	}

	respondData(c, http.StatusOK, areas)
}

// CreateDeliveryArea handles POST /api/v1/delivery-areas
func CreateDeliveryArea(c *gin.Context) {
	companyID, err := middleware.GetCompanyID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not determine company")
		return
	}

	var req DeliveryAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	if req.DeliveryFee < 0 {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Delivery fee cannot be negative")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	area := models.DeliveryArea{
		Name:             req.Name,
		CompanyID:        companyID,
		Neighborhoods:    req.Neighborhoods,
		RadiusKm:         req.RadiusKm,
		DeliveryFee:      req.DeliveryFee,
		EstimatedMinutes: req.EstimatedMinutes,
		Color:            req.Color,
		Active:           active,
	}

	if err := config.GetDB().Create(&area).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create delivery area")
		return
	}

	respondData(c, http.StatusCreated, area)
}

// UpdateDeliveryArea handles PUT /api/v1/delivery-areas/:id
func UpdateDeliveryArea(c *gin.Context) {
	companyID, err := middleware.GetCompanyID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not determine company")
		return
	}

	areaID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid delivery area id")
		return
	}

	var req DeliveryAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	if req.DeliveryFee < 0 {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Delivery fee cannot be negative")
		return
	}

	db := config.GetDB()
	var area models.DeliveryArea
	err = db.Where("id = ? AND company_id = ?", areaID, companyID).First(&area).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Delivery area not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load delivery area")
		return
	}

	area.Name = req.Name
	area.Neighborhoods = req.Neighborhoods
	area.RadiusKm = req.RadiusKm
	area.DeliveryFee = req.DeliveryFee
	area.EstimatedMinutes = req.EstimatedMinutes
	area.Color = req.Color
	if req.Active != nil {
		area.Active = *req.Active
	}

	if err := db.Save(&area).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update delivery area")
		return
	}

	respondData(c, http.StatusOK, area)
}

// DeleteDeliveryArea handles DELETE /api/v1/delivery-areas/:id
func DeleteDeliveryArea(c *gin.Context) {
	companyID, err := middleware.GetCompanyID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not determine company")
		return
	}

	areaID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid delivery area id")
		return
	}

	db := config.GetDB()
	var area models.DeliveryArea
	err = db.Where("id = ? AND company_id = ?", areaID, companyID).First(&area).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Delivery area not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load delivery area")
		return
	}

	if err := db.Delete(&area).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete delivery area")
		return
	}

	respondData(c, http.StatusOK, gin.H{"deleted": true})
}
