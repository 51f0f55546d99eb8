package model

// Issue severities
const (
	IssueWarning = "WARNING"
	IssueError   = "ERROR"
)

// ValidationIssue data-driven outcome of the area reconciliation check.
// Returned in the report, never raised as an error.
type ValidationIssue struct {
	Type      string `json:"type"` // WARNING or ERROR
	FieldID   string `json:"fieldId"`
	FieldName string `json:"fieldName"`
	Message   string `json:"message"`
}

// SchemeConflict forbidden co-occurrence of two practice codes on one crop part
type SchemeConflict struct {
	FieldID         string   `json:"fieldId"`
	FieldName       string   `json:"fieldName"`
	PartDesignation string   `json:"partDesignation"`
	Schemes         []string `json:"schemes"` // the conflicting pair, input order
}

// EcoSchemeCalculation per-scheme accumulation bucket
type EcoSchemeCalculation struct {
	SchemeCode     string  `json:"schemeCode"`
	TotalArea      float64 `json:"totalArea"`
	TotalPoints    float64 `json:"totalPoints"`
	EstimatedValue float64 `json:"estimatedValue"` // PLN
}

// FarmAnalysisReport derived report, recomputed on demand.
// A pure function of (FarmData, year, rate catalog, policy).
type FarmAnalysisReport struct {
	Year                int                              `json:"year"`
	ValidationIssues    []ValidationIssue                `json:"validationIssues"`
	Conflicts           []SchemeConflict                 `json:"conflicts"`
	EcoSchemes          map[string]*EcoSchemeCalculation `json:"ecoSchemes"`
	TotalPoints         float64                          `json:"totalPoints"`
	RequiredPoints      float64                          `json:"requiredPoints"`
	IsEntryConditionMet bool                             `json:"isEntryConditionMet"`
	TotalEstimatedValue float64                          `json:"totalEstimatedValue"`
}
