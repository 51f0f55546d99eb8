package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/KDZFoundation/agrooptima/internal/engine"
)

// GetConfig returns the live policy and retriever settings.
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"policy":    h.cfg.Policy,
		"retriever": h.cfg.Retriever,
	})
}

// UpdateConfigRequest partial policy update. Pointer fields distinguish
// "not sent" from zero.
type UpdateConfigRequest struct {
	AreaTolerance      *float64 `json:"areaTolerance"`
	PointValuePLN      *float64 `json:"pointValuePln"`
	EURToPLN           *float64 `json:"eurToPln"`
	EntryAreaShare     *float64 `json:"entryAreaShare"`
	EntryPointsPerHa   *float64 `json:"entryPointsPerHa"`
	SchemeDensityLimit *int     `json:"schemeDensityLimit"`
}

// UpdateConfig applies a partial policy update, persists it and swaps the
// engine so the next report uses the new parameters.
// PATCH /api/config
func (h *Handler) UpdateConfig(c *gin.Context) {
	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	p := &h.cfg.Policy
	if req.AreaTolerance != nil {
		if *req.AreaTolerance < 0 || *req.AreaTolerance > 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "areaTolerance must be within [0, 1]"})
			return
		}
		p.AreaTolerance = *req.AreaTolerance
	}
	if req.PointValuePLN != nil {
		p.PointValuePLN = *req.PointValuePLN
	}
	if req.EURToPLN != nil {
		if *req.EURToPLN <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "eurToPln must be positive"})
			return
		}
		p.EURToPLN = *req.EURToPLN
	}
	if req.EntryAreaShare != nil {
		p.EntryAreaShare = *req.EntryAreaShare
	}
	if req.EntryPointsPerHa != nil {
		p.EntryPointsPerHa = *req.EntryPointsPerHa
	}
	if req.SchemeDensityLimit != nil {
		p.SchemeDensityLimit = *req.SchemeDensityLimit
	}

	h.engine = engine.New(h.catalog, policyFromConfig(*p))

	if err := h.saveConfig(h.cfg); err != nil {
		h.logger.Warn("config save failed", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"policy": h.cfg.Policy})
}
