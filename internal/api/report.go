package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KDZFoundation/agrooptima/internal/store"
)

func campaignYear(c *gin.Context) (int, error) {
	raw := c.DefaultQuery("year", strconv.Itoa(time.Now().Year()))
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid year %q", raw)
	}
	return year, nil
}

// GetReport recomputes and returns the farm analysis report. Reports are
// never stored; every call reflects the current registry and policy.
// GET /api/farmers/:id/report?year=2025
func (h *Handler) GetReport(c *gin.Context) {
	year, err := campaignYear(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	farm, err := h.store.GetFarmData(c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "farmer not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	c.JSON(http.StatusOK, h.engine.Analyze(farm, year))
}

// ExportReport streams the analysis report as an XLSX workbook.
// GET /api/farmers/:id/report/export?year=2025
func (h *Handler) ExportReport(c *gin.Context) {
	year, err := campaignYear(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	farm, err := h.store.GetFarmData(c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "farmer not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	report := h.engine.Analyze(farm, year)
	f, err := h.exporter.Export(farm, report)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("raport_%s_%d.xlsx", c.Param("id"), year)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		h.logger.Warn("report download aborted")
	}
}
