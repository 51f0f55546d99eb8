package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/KDZFoundation/agrooptima/internal/hierarchy"
	"github.com/KDZFoundation/agrooptima/internal/store"
)

// GetHierarchy reconstructs the campaign provenance graph for a farmer.
// With evidence=1 the nodes are additionally annotated with document
// snippets from the retriever.
// GET /api/farmers/:id/hierarchy?year=2025&evidence=1
func (h *Handler) GetHierarchy(c *gin.Context) {
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

	// Only an unreadable farm snapshot is fatal. A failed document lookup
	// degrades: the builder marks the application node as missing.
	docs, err := h.store.ListDocuments(c.Param("id"))
	if err != nil {
		h.logger.Warn("document lookup failed, building graph without documents",
			zap.String("farmer", c.Param("id")), zap.Error(err))
		docs = nil
	}

	graph, err := hierarchy.Build(hierarchy.BuildInput{
		Farm:        farm,
		Year:        year,
		Documents:   docs,
		Catalog:     h.catalog,
		GeneratedAt: time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "graph construction failed"})
		return
	}

	if c.Query("evidence") == "1" && h.annotator != nil {
		h.annotator.Annotate(c.Request.Context(), graph)
	}

	c.JSON(http.StatusOK, graph)
}
