package engine

// Policy regulatory parameters of one campaign's payment rules.
// All values are data, not constants: ARiMR revises them year over year.
type Policy struct {
	AreaTolerance      float64 // over-declaration band as share of reference area
	AreaEpsilon        float64 // ha differences below this are floating-point noise
	PointValuePLN      float64 // PLN per eco-scheme point
	EURToPLN           float64 // conversion for EUR-denominated rates
	EntryAreaShare     float64 // entry condition: share of totalAreaUR
	EntryPointsPerHa   float64 // entry condition: minimum points per hectare
	SchemeDensityLimit int     // practice codes per part before a warning
}

// DefaultPolicy returns the 2025/2026 campaign parameters.
func DefaultPolicy() Policy {
	return Policy{
		AreaTolerance:      0.03,
		AreaEpsilon:        0.001,
		PointValuePLN:      100.0,
		EURToPLN:           4.3,
		EntryAreaShare:     0.25,
		EntryPointsPerHa:   5.0,
		SchemeDensityLimit: 3,
	}
}
