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

// CustomerRequest represents the request body for creating or updating a
// customer
type CustomerRequest struct {
	Name       string `json:"name" binding:"required"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	WhatsApp   string `json:"whatsapp"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Notes      string `json:"notes"`
}

// ListCustomers handles GET /api/v1/customers
func ListCustomers(c *gin.Context) {
	companyID, err := middleware.GetCompanyID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not determine company")
		return
	}

	var customers []models.Customer
	err = config.GetDB().
		Where("company_id = ?", companyID).
		Order("name ASC").
		Find(&customers).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load customers")
		return
	}

	respondData(c, http.StatusOK, customers)
}

// CreateCustomer handles POST /api/v1/customers
func CreateCustomer(c *gin.Context) {
	companyID, err := middleware.GetCompanyID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not determine company")
		return
	}

	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	customer := models.Customer{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		WhatsApp:   req.WhatsApp,
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Notes:      req.Notes,
		CompanyID:  companyID,
		Active:     true,
	}

	if err := config.GetDB().Create(&customer).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create customer")
		return
	}

	respondData(c, http.StatusCreated, customer)
}

// UpdateCustomer handles PUT /api/v1/customers/:id
func UpdateCustomer(c *gin.Context) {
	companyID, err := middleware.GetCompanyID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not determine company")
		return
	}

	customerID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid customer id")
		return
	}

	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	db := config.GetDB()
	var customer models.Customer
	err = db.Where("id = ? AND company_id = ?", customerID, companyID).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Customer not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load customer")
		return
	}

	customer.Name = req.Name
	customer.Phone = req.Phone
	customer.Email = req.Email
	customer.WhatsApp = req.WhatsApp
	customer.Address = req.Address
	customer.City = req.City
	customer.State = req.State
	customer.PostalCode = req.PostalCode
	customer.Notes = req.Notes

	if err := db.Save(&customer).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update customer")
		return
	}

	respondData(c, http.StatusOK, customer)
}
