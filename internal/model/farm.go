package model

// CropMixed is the derived crop label when a history entry is split into
// multiple crop parts with different crops.
const CropMixed = "Mieszanka"

// FarmerClient 9-digit producer number (EP) keyed farmer record
type FarmerClient struct {
	ProducerID  string `json:"producerId"`
	AdvisorID   *int64 `json:"advisorId,omitempty"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	FarmName    string `json:"farmName"`
	TotalArea   float64 `json:"totalArea"`
	Status      string `json:"status"` // ACTIVE/PENDING/COMPLETED
	LastContact string `json:"lastContact"`
}

// FarmProfile campaign-level profile of one farm
type FarmProfile struct {
	ProducerID  string  `json:"producerId"`
	TotalAreaUR float64 `json:"totalAreaUR"` // utilised agricultural area [ha]
}

// FarmData point-in-time snapshot handed to the analysis engine
type FarmData struct {
	FarmName string      `json:"farmName"`
	Profile  FarmProfile `json:"profile"`
	Fields   []*Field    `json:"fields"`
}

// Field cadastral parcel with its per-year declaration history
type Field struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	RegistrationNumber string          `json:"registrationNumber"`
	Commune            string          `json:"commune"`
	Area               float64         `json:"area"`         // total arable area [ha]
	EligibleArea       float64         `json:"eligibleArea"` // reference (PEG) area [ha]
	Crop               string          `json:"crop"`
	History            []*HistoryEntry `json:"history"`
}

// HistoryForYear returns the declaration for one campaign year, nil if the
// parcel was not farmed that year. At most one entry per (field, year).
func (f *Field) HistoryForYear(year int) *HistoryEntry {
	for _, h := range f.History {
		if h.Year == year {
			return h
		}
	}
	return nil
}

// HistoryEntry one (field, year) crop declaration
type HistoryEntry struct {
	Year              int        `json:"year"`
	Crop              string     `json:"crop"`
	Area              float64    `json:"area"`
	EligibleArea      float64    `json:"eligibleArea"`
	AppliedEcoSchemes []string   `json:"appliedEcoSchemes"`
	CropParts         []CropPart `json:"cropParts,omitempty"`
	LimingDate        string     `json:"limingDate,omitempty"` // YYYY-MM-DD
	SoilPH            *float64   `json:"soilPh,omitempty"`
}

// CropPart named sub-division ("A", "B", ...) of a parcel for one year
type CropPart struct {
	Designation string   `json:"designation"`
	Crop        string   `json:"crop"`
	Area        float64  `json:"area"`
	EcoSchemes  []string `json:"ecoSchemes"`
}

// Parts returns the explicit crop parts, or a single part synthesized from the
// entry's scalar fields when the declaration was never split. Aggregation and
// graph construction consume both shapes through this one path.
func (h *HistoryEntry) Parts(fieldArea float64) []CropPart {
	if len(h.CropParts) > 0 {
		return h.CropParts
	}
	area := h.Area
	if area == 0 {
		area = fieldArea
	}
	return []CropPart{{
		Designation: "A",
		Crop:        h.Crop,
		Area:        area,
		EcoSchemes:  h.AppliedEcoSchemes,
	}}
}

// DeclaredCrop derives the entry's crop label: with parts present the label
// follows the parts (single part → its crop, several crops → mixed).
func (h *HistoryEntry) DeclaredCrop() string {
	if len(h.CropParts) == 0 {
		return h.Crop
	}
	crop := h.CropParts[0].Crop
	for _, p := range h.CropParts[1:] {
		if p.Crop != crop {
			return CropMixed
		}
	}
	return crop
}

// FarmerDocument uploaded document metadata
type FarmerDocument struct {
	ID           string `json:"id"`
	FarmerID     string `json:"farmerId"`
	Name         string `json:"name"`
	Type         string `json:"type"`     // PDF/CSV/GML/SHP/OTHER
	Category     string `json:"category"` // WNIOSEK/MAPA/REJESTR/INNE
	CampaignYear string `json:"campaignYear"`
	Size         string `json:"size"`
	UploadDate   string `json:"uploadDate"`
}

// DocCategoryApplication marks the e-application (e-Wniosek) document whose
// presence per campaign year the hierarchy extractor checks.
const DocCategoryApplication = "WNIOSEK"
