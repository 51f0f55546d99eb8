package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse system status
type StatusResponse struct {
	Initialized   bool  `json:"initialized"`
	FarmerCount   int   `json:"farmerCount"`
	RateCount     int   `json:"rateCount"`
	ChunkCount    int   `json:"chunkCount"`
	CampaignYears []int `json:"campaignYears"`
}

// GetStatus reports whether the instance carries data yet.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	farmers, err := h.store.ListFarmers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "status query failed"})
		return
	}
	rateCount, err := h.store.CountRates()
	if err != nil {
		rateCount = 0
	}

	c.JSON(http.StatusOK, StatusResponse{
		Initialized:   len(farmers) > 0,
		FarmerCount:   len(farmers),
		RateCount:     rateCount,
		ChunkCount:    h.retriever.Count(),
		CampaignYears: h.catalog.Years(),
	})
}
