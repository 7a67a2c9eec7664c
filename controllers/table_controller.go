package controllers

import (
	"net/http"

	"github.com/comandaviva/comanda-api/config"
	"github.com/comandaviva/comanda-api/middleware"
	"github.com/comandaviva/comanda-api/services"
	"github.com/gin-gonic/gin"
)

// ListTables handles GET /api/v1/tables
func ListTables(c *gin.Context) {
	companyID, err := middleware.GetCompanyID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not determine company")
		return
	}

	tables, err := services.NewTableService(config.GetDB()).List(companyID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load tables")
		return
	}

	respondData(c, http.StatusOK, tables)
}

// CloseTable handles POST /api/v1/tables/:label/close - delivers every open
// order on the table and closes it
func CloseTable(c *gin.Context) {
	companyID, err := middleware.GetCompanyID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not determine company")
		return
	}

	label := c.Param("label")
	if label == "" {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Table label is required")
		return
	}

	table, err := services.NewTableService(config.GetDB()).Close(companyID, label)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, table)
}
