package controllers

import (
	"net/http"
	"strconv"

	"github.com/comandaviva/comanda-api/config"
	"github.com/comandaviva/comanda-api/middleware"
	"github.com/comandaviva/comanda-api/models"
	"github.com/comandaviva/comanda-api/services"
	"github.com/gin-gonic/gin"
)

// ListOrders handles GET /api/v1/orders - lists the company's orders, newest first
func ListOrders(c *gin.Context) {
	companyID, err := middleware.GetCompanyID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not determine company")
		return
	}

	orders, err := services.NewOrderService(config.GetDB()).List(companyID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load orders")
		return
	}

	respondData(c, http.StatusOK, orders)
}

// GetOrder handles GET /api/v1/orders/:id
func GetOrder(c *gin.Context) {
	companyID, err := middleware.GetCompanyID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not determine company")
		return
	}

	orderID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order id")
		return
	}

	order, err := services.NewOrderService(config.GetDB()).Get(companyID, orderID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, order)
}

// CreateOrder handles POST /api/v1/orders - validates and prices a draft,
// persists the order in pending status
func CreateOrder(c *gin.Context) {
	companyID, err := middleware.GetCompanyID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not determine company")
		return
	}

	var draft services.OrderDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	order, err := services.NewOrderService(config.GetDB()).Create(companyID, draft)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondData(c, http.StatusCreated, order)
}

// ConfirmOrder handles POST /api/v1/orders/:id/confirm - moves the order to
// confirmed and records its revenue entry
func ConfirmOrder(c *gin.Context) {
	companyID, err := middleware.GetCompanyID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not determine company")
		return
	}

	orderID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order id")
		return
	}

	order, err := services.NewOrderService(config.GetDB()).Confirm(companyID, orderID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, order)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel
func CancelOrder(c *gin.Context) {
	companyID, err := middleware.GetCompanyID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not determine company")
		return
	}

	orderID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order id")
		return
	}

	order, err := services.NewOrderService(config.GetDB()).Cancel(companyID, orderID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, order)
}

// EditOrder handles PUT /api/v1/orders/:id - replaces the draft of a
// pending order and recomputes its totals
func EditOrder(c *gin.Context) {
	companyID, err := middleware.GetCompanyID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not determine company")
		return
	}

	orderID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order id")
		return
	}

	var draft services.OrderDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	order, err := services.NewOrderService(config.GetDB()).Edit(companyID, orderID, draft)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, order)
}

// SetOrderStatusRequest represents the request body for a status change
type SetOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// SetOrderStatus handles PATCH /api/v1/orders/:id/status - kitchen flow
// transitions (preparing, ready, delivered)
func SetOrderStatus(c *gin.Context) {
	companyID, err := middleware.GetCompanyID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not determine company")
		return
	}

	orderID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order id")
		return
	}

	var req SetOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	order, err := services.NewOrderService(config.GetDB()).SetStatus(companyID, orderID, req.Status)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, order)
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
