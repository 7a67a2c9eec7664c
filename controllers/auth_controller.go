package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/comandaviva/comanda-api/config"
	"github.com/comandaviva/comanda-api/middleware"
	"github.com/comandaviva/comanda-api/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterRequest represents the request body for registering a new company
// with its admin user
type RegisterRequest struct {
	CompanyName string `json:"company_name" binding:"required"`
	Subdomain   string `json:"subdomain" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone"`
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required,min=8"`
	Name        string `json:"name"`
}

// LoginRequest represents the request body for logging in. Login accepts
// either the username or the email address.
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/v1/auth/register - creates a company and its
// first admin user in one transaction
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	subdomain := strings.ToLower(strings.TrimSpace(req.Subdomain))
	db := config.GetDB()

	var existing int64
	db.Model(&models.Company{}).
		Where("subdomain = ? OR email = ?", subdomain, req.Email).
		Count(&existing)
	if existing > 0 {
		respondError(c, http.StatusConflict, "ALREADY_REGISTERED", "Subdomain or email is already in use")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process password")
		return
	}

	var user models.User
	err = db.Transaction(func(tx *gorm.DB) error {
		company := models.Company{
			Name:      req.CompanyName,
			Email:     req.Email,
			Phone:     req.Phone,
			Subdomain: subdomain,
			Active:    true,
		}
		if err := tx.Create(&company).Error; err != nil {
			return err
		}

		user = models.User{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
			CompanyID:    &company.ID,
			Name:         req.Name,
			Phone:        req.Phone,
			Active:       true,
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to register company")
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to issue token")
		return
	}

	respondData(c, http.StatusCreated, gin.H{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/v1/auth/login
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	var user models.User
	err := config.GetDB().
		Where("username = ? OR email = ?", req.Login, req.Login).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid login or password")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load user")
		return
	}

	if !user.Active {
		respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid login or password")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid login or password")
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to issue token")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// Me handles GET /api/v1/auth/me - the authenticated user with its company
func Me(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not determine user")
		return
	}

	var user models.User
	err = config.GetDB().Preload("Company").First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load user")
		return
	}

	respondData(c, http.StatusOK, user)
}
