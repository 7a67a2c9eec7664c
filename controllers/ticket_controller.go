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

// TicketRequest represents the request body for opening a support ticket
type TicketRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
}

// TicketStatusRequest represents the request body for changing a ticket's
// status
type TicketStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListTickets handles GET /api/v1/tickets
func ListTickets(c *gin.Context) {
	companyID, err := middleware.GetCompanyID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not determine company")
		return
	}

	var tickets []models.SupportTicket
	err = config.GetDB().
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&tickets).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load tickets")
		return
	}

	respondData(c, http.StatusOK, tickets)
}

// CreateTicket handles POST /api/v1/tickets
func CreateTicket(c *gin.Context) {
	companyID, err := middleware.GetCompanyID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not determine company")
		return
	}

	var req TicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}
	category := req.Category
	if category == "" {
		category = "other"
	}

	ticket := models.SupportTicket{
		CompanyID:   companyID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		Category:    category,
		Status:      models.TicketStatusOpen,
	}
	if userID, err := middleware.GetUserID(c); err == nil {
		ticket.UserID = &userID
	}

	if err := config.GetDB().Create(&ticket).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create ticket")
		return
	}

	respondData(c, http.StatusCreated, ticket)
}

// UpdateTicketStatus handles PATCH /api/v1/tickets/:id/status
func UpdateTicketStatus(c *gin.Context) {
	companyID, err := middleware.GetCompanyID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not determine company")
		return
	}

	ticketID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid ticket id")
		return
	}

	var req TicketStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	switch req.Status {
	case models.TicketStatusOpen, models.TicketStatusAnswered, models.TicketStatusClosed:
	default:
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown ticket status")
		return
	}

	db := config.GetDB()
	var ticket models.SupportTicket
	err = db.Where("id = ? AND company_id = ?", ticketID, companyID).First(&ticket).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Ticket not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load ticket")
		return
	}

	if err := db.Model(&ticket).Update("status", req.Status).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update ticket")
		return
	}

	respondData(c, http.StatusOK, ticket)
}
