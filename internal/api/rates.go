package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KDZFoundation/agrooptima/internal/model"
)

// ListRates returns the rate catalog, optionally filtered by campaign year.
// GET /api/rates?year=2025
func (h *Handler) ListRates(c *gin.Context) {
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
		rates := h.catalog.ForYear(year)
		if rates == nil {
			rates = []model.SubsidyRate{}
		}
		c.JSON(http.StatusOK, rates)
		return
	}

	rates, err := h.store.AllRates()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	if rates == nil {
		rates = []model.SubsidyRate{}
	}
	c.JSON(http.StatusOK, rates)
}
