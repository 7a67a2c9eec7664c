package controllers

import (
	"errors"
	"net/http"

	"github.com/comandaviva/comanda-api/services"
	"github.com/gin-gonic/gin"
)

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// handleServiceError maps the service failure taxonomy to HTTP responses.
// Anything outside the taxonomy is an internal error.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, services.ErrInvalidOrder):
		respondError(c, http.StatusBadRequest, "INVALID_ORDER", err.Error())
	case errors.Is(err, services.ErrInvalidEntry):
		respondError(c, http.StatusBadRequest, "INVALID_ENTRY", err.Error())
	case errors.Is(err, services.ErrOrderFinalized):
		respondError(c, http.StatusConflict, "ORDER_FINALIZED", err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}
