package model

// Rate categories (Stawki tables)
const (
	CategoryEcoScheme     = "EKOSCHEMAT"
	CategoryDirectPayment = "DOPLATA"
	CategoryWelfare       = "DOBROSTAN"
)

// SubsidyRate one subsidy-rate definition for one campaign year.
// Reference data: looked up by ShortName, never mutated by the engine.
type SubsidyRate struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	ShortName     string   `json:"shortName"` // practice code, e.g. E_OBOR
	Rate          float64  `json:"rate"`
	Unit          string   `json:"unit"` // PLN/ha, EUR/ha, PLN/pkt, PLN/DJP, PLN/szt., PLN/kg
	Category      string   `json:"category"`
	Year          int      `json:"year"`
	Points        float64  `json:"points,omitempty"` // points per hectare, 0 = flat rate
	ConflictsWith []string `json:"conflictsWith,omitempty"`
	Description   string   `json:"description,omitempty"`
}
