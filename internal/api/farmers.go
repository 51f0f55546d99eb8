package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/KDZFoundation/agrooptima/internal/model"
	"github.com/KDZFoundation/agrooptima/internal/store"
)

// ListFarmers returns the farmer registry.
// GET /api/farmers
func (h *Handler) ListFarmers(c *gin.Context) {
	farmers, err := h.store.ListFarmers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	if farmers == nil {
		farmers = []*model.FarmerClient{}
	}
	c.JSON(http.StatusOK, farmers)
}

// GetFarmer returns one farmer with the full parcel snapshot.
// GET /api/farmers/:id
func (h *Handler) GetFarmer(c *gin.Context) {
	farmer, err := h.store.GetFarmer(c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "farmer not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	fields, err := h.store.GetFields(farmer.ProducerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	if fields == nil {
		fields = []*model.Field{}
	}

	c.JSON(http.StatusOK, gin.H{"farmer": farmer, "fields": fields})
}

// UpsertFarmerRequest new or updated farmer record
type UpsertFarmerRequest struct {
	ProducerID  string  `json:"producerId" binding:"required,len=9,numeric"`
	FirstName   string  `json:"firstName" binding:"required"`
	LastName    string  `json:"lastName" binding:"required"`
	FarmName    string  `json:"farmName"`
	TotalArea   float64 `json:"totalArea" binding:"gte=0"`
	Status      string  `json:"status"`
	LastContact string  `json:"lastContact"`
}

// UpsertFarmer creates or updates a farmer.
// POST /api/farmers
func (h *Handler) UpsertFarmer(c *gin.Context) {
	var req UpsertFarmerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status == "" {
		req.Status = "ACTIVE"
	}

	farmer := &model.FarmerClient{
		ProducerID:  req.ProducerID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		FarmName:    req.FarmName,
		TotalArea:   req.TotalArea,
		Status:      req.Status,
		LastContact: req.LastContact,
	}
	if err := h.store.UpsertFarmer(farmer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "write failed"})
		return
	}
	c.JSON(http.StatusOK, farmer)
}

// ListFields returns a farmer's parcels with history.
// GET /api/farmers/:id/fields
func (h *Handler) ListFields(c *gin.Context) {
	if _, err := h.store.GetFarmer(c.Param("id")); errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "farmer not found"})
		return
	}
	fields, err := h.store.GetFields(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	if fields == nil {
		fields = []*model.Field{}
	}
	c.JSON(http.StatusOK, fields)
}

// FieldRequest parcel attributes
type FieldRequest struct {
	Name               string  `json:"name"`
	RegistrationNumber string  `json:"registrationNumber" binding:"required"`
	Commune            string  `json:"commune"`
	Area               float64 `json:"area" binding:"gt=0"`
	EligibleArea       float64 `json:"eligibleArea" binding:"gte=0"`
	Crop               string  `json:"crop"`
}

// CreateField adds a parcel to a farmer's registry.
// POST /api/farmers/:id/fields
func (h *Handler) CreateField(c *gin.Context) {
	if _, err := h.store.GetFarmer(c.Param("id")); errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "farmer not found"})
		return
	}

	var req FieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	field := &model.Field{
		ID:                 uuid.NewString(),
		Name:               req.Name,
		RegistrationNumber: req.RegistrationNumber,
		Commune:            req.Commune,
		Area:               req.Area,
		EligibleArea:       req.EligibleArea,
		Crop:               req.Crop,
	}
	if field.Name == "" {
		field.Name = field.RegistrationNumber
	}
	if err := h.store.InsertField(c.Param("id"), field); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "write failed"})
		return
	}
	c.JSON(http.StatusCreated, field)
}

// UpdateField overwrites a parcel's registry attributes.
// PATCH /api/fields/:fieldId
func (h *Handler) UpdateField(c *gin.Context) {
	var req FieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	field := &model.Field{
		ID:                 c.Param("fieldId"),
		Name:               req.Name,
		RegistrationNumber: req.RegistrationNumber,
		Commune:            req.Commune,
		Area:               req.Area,
		EligibleArea:       req.EligibleArea,
		Crop:               req.Crop,
	}
	err := h.store.UpdateField(field)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "field not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "write failed"})
		return
	}
	c.JSON(http.StatusOK, field)
}

// HistoryRequest one campaign-year declaration
type HistoryRequest struct {
	Year              int              `json:"year" binding:"required,gte=2000,lte=2100"`
	Crop              string           `json:"crop"`
	Area              float64          `json:"area" binding:"gte=0"`
	EligibleArea      float64          `json:"eligibleArea" binding:"gte=0"`
	AppliedEcoSchemes []string         `json:"appliedEcoSchemes"`
	CropParts         []model.CropPart `json:"cropParts"`
	LimingDate        string           `json:"limingDate"`
	SoilPH            *float64         `json:"soilPh"`
}

// UpsertHistory writes one (parcel, year) declaration, replacing any earlier
// entry for the same year.
// PUT /api/fields/:fieldId/history
func (h *Handler) UpsertHistory(c *gin.Context) {
	var req HistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.store.GetField(c.Param("fieldId")); errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "field not found"})
		return
	}

	entry := &model.HistoryEntry{
		Year:              req.Year,
		Crop:              req.Crop,
		Area:              req.Area,
		EligibleArea:      req.EligibleArea,
		AppliedEcoSchemes: req.AppliedEcoSchemes,
		CropParts:         req.CropParts,
		LimingDate:        req.LimingDate,
		SoilPH:            req.SoilPH,
	}
	if err := h.store.UpsertHistoryEntry(c.Param("fieldId"), entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "write failed"})
		return
	}
	c.JSON(http.StatusOK, entry)
}

// DeleteHistory removes one (parcel, year) declaration. Parcels themselves
// are never deleted through the API.
// DELETE /api/fields/:fieldId/history/:year
func (h *Handler) DeleteHistory(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}

	err = h.store.DeleteHistoryEntry(c.Param("fieldId"), year)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.Status(http.StatusNoContent)
}
