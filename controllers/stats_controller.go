package controllers

import (
	"net/http"

	"github.com/comandaviva/comanda-api/config"
	"github.com/comandaviva/comanda-api/middleware"
	"github.com/comandaviva/comanda-api/services"
	"github.com/gin-gonic/gin"
)

// GetCompanyStats handles GET /api/v1/stats - the dashboard headline numbers
func GetCompanyStats(c *gin.Context) {
	companyID, err := middleware.GetCompanyID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not determine company")
		return
	}

	stats, err := services.NewStatsService(config.GetDB()).CompanyStats(companyID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to compute stats")
		return
	}

	respondData(c, http.StatusOK, stats)
}
