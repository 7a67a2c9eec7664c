package controllers

import (
	"net/http"

	"github.com/comandaviva/comanda-api/config"
	"github.com/comandaviva/comanda-api/middleware"
	"github.com/comandaviva/comanda-api/services"
	"github.com/gin-gonic/gin"
)

// ListLedgerEntries handles GET /api/v1/finance/entries
func ListLedgerEntries(c *gin.Context) {
	companyID, err := middleware.GetCompanyID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not determine company")
		return
	}

	entries, err := services.NewLedgerService(config.GetDB()).List(companyID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load ledger entries")
		return
	}

	respondData(c, http.StatusOK, entries)
}

// RecordLedgerEntry handles POST /api/v1/finance/entries - appends a manual
// revenue or expense entry
func RecordLedgerEntry(c *gin.Context) {
	companyID, err := middleware.GetCompanyID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not determine company")
		return
	}

	var input services.EntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	entry, err := services.NewLedgerService(config.GetDB()).Record(companyID, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondData(c, http.StatusCreated, entry)
}

// GetLedgerSummary handles GET /api/v1/finance/summary - the company's
// financial position
func GetLedgerSummary(c *gin.Context) {
	companyID, err := middleware.GetCompanyID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not determine company")
		return
	}

	summary, err := services.NewLedgerService(config.GetDB()).Summarize(companyID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to compute summary")
		return
	}

	respondData(c, http.StatusOK, summary)
}
