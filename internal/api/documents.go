package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/KDZFoundation/agrooptima/internal/model"
	"github.com/KDZFoundation/agrooptima/internal/store"
)

// ListDocuments returns a farmer's document registry.
// GET /api/farmers/:id/documents
func (h *Handler) ListDocuments(c *gin.Context) {
	if _, err := h.store.GetFarmer(c.Param("id")); errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "farmer not found"})
		return
	}
	docs, err := h.store.ListDocuments(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	if docs == nil {
		docs = []model.FarmerDocument{}
	}
	c.JSON(http.StatusOK, docs)
}

// IndexDocumentRequest document metadata plus its extracted text
type IndexDocumentRequest struct {
	Name         string `json:"name" binding:"required"`
	Type         string `json:"type"`
	Category     string `json:"category"`
	CampaignYear string `json:"campaignYear"`
	Content      string `json:"content" binding:"required"`
}

// IndexDocument registers a document and chunks its text into the
// knowledge base. Re-indexing the same document replaces its chunks.
// POST /api/farmers/:id/documents
func (h *Handler) IndexDocument(c *gin.Context) {
	farmerID := c.Param("id")
	if _, err := h.store.GetFarmer(farmerID); errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "farmer not found"})
		return
	}

	var req IndexDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Type == "" {
		req.Type = "OTHER"
	}
	if req.Category == "" {
		req.Category = "INNE"
	}

	now := time.Now()
	doc := model.FarmerDocument{
		ID:           uuid.NewString(),
		FarmerID:     farmerID,
		Name:         req.Name,
		Type:         req.Type,
		Category:     req.Category,
		CampaignYear: req.CampaignYear,
		Size:         strconv.Itoa(len(req.Content)) + " B",
		UploadDate:   now.Format("2006-01-02"),
	}
	if err := h.store.InsertDocument(&doc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "write failed"})
		return
	}

	chunks, err := h.retriever.IndexDocument(doc, req.Content, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "indexing failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"document": doc, "chunks": chunks})
}

// SearchChunks runs a keyword query against the knowledge base.
// GET /api/search?q=ekoschemat&limit=5
func (h *Handler) SearchChunks(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query"})
		return
	}
	limit := 5
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 50 {
			limit = n
		}
	}

	chunks, err := h.retriever.Search(c.Request.Context(), query, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	if chunks == nil {
		chunks = []model.KnowledgeChunk{}
	}
	c.JSON(http.StatusOK, chunks)
}
