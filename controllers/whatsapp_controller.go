package controllers

import (
	"errors"
	"net/http"

	"github.com/comandaviva/comanda-api/config"
	"github.com/comandaviva/comanda-api/middleware"
	"github.com/comandaviva/comanda-api/models"
	"github.com/comandaviva/comanda-api/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SendWhatsAppMessageRequest represents the request body for sending a text
// message through the company's WhatsApp instance
type SendWhatsAppMessageRequest struct {
	Phone   string `json:"phone" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// GetWhatsAppStatus handles GET /api/v1/whatsapp/status
func GetWhatsAppStatus(c *gin.Context) {
	company, ok := loadCallerCompany(c)
	if !ok {
		return
	}

	svc := services.GetWhatsAppService()
	if svc == nil {
		respondError(c, http.StatusServiceUnavailable, "WHATSAPP_UNAVAILABLE", "WhatsApp integration is not configured")
		return
	}

	status, err := svc.Status(company)
	if err != nil {
		respondError(c, http.StatusBadGateway, "WHATSAPP_ERROR", "Failed to query WhatsApp status")
		return
	}

	respondData(c, http.StatusOK, status)
}

// SendWhatsAppMessage handles POST /api/v1/whatsapp/send
func SendWhatsAppMessage(c *gin.Context) {
	company, ok := loadCallerCompany(c)
	if !ok {
		return
	}

	var req SendWhatsAppMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	svc := services.GetWhatsAppService()
	if svc == nil {
		respondError(c, http.StatusServiceUnavailable, "WHATSAPP_UNAVAILABLE", "WhatsApp integration is not configured")
		return
	}

	if err := svc.SendMessage(company, req.Phone, req.Message); err != nil {
		respondError(c, http.StatusBadGateway, "WHATSAPP_ERROR", "Failed to send message")
		return
	}

	respondData(c, http.StatusOK, gin.H{"sent": true})
}

// loadCallerCompany resolves the caller's company row. Writes the error
// response itself when it fails.
func loadCallerCompany(c *gin.Context) (*models.Company, bool) {
	companyID, err := middleware.GetCompanyID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not determine company")
		return nil, false
	}

	var company models.Company
	err = config.GetDB().First(&company, companyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Company not found")
		return nil, false
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load company")
		return nil, false
	}

	return &company, true
}
