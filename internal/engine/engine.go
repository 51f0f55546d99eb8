// Package engine implements the eco-scheme compliance and payment calculation
// core: area reconciliation against reference (PEG) areas, per-scheme
// accumulation with mutual-exclusion detection, and the campaign-wide farm
// analysis report.
//
// Everything here is a pure function of (farm snapshot, year, rate catalog,
// policy): no clock, no I/O, safe to run concurrently for different farms.
package engine

import (
	"github.com/KDZFoundation/agrooptima/internal/model"
	"github.com/KDZFoundation/agrooptima/internal/ratecatalog"
)

// Engine runs the campaign analysis.
type Engine struct {
	catalog *ratecatalog.Catalog
	policy  Policy
}

// New creates an engine over one rate catalog and one policy version.
func New(catalog *ratecatalog.Catalog, policy Policy) *Engine {
	return &Engine{catalog: catalog, policy: policy}
}

// Analyze builds the farm analysis report for one campaign year.
// Parcels without a declaration for the year are skipped; incomplete reference
// data degrades to best-effort defaults and never aborts the analysis.
func (e *Engine) Analyze(farm *model.FarmData, year int) *model.FarmAnalysisReport {
	report := &model.FarmAnalysisReport{
		Year:             year,
		ValidationIssues: []model.ValidationIssue{},
		Conflicts:        []model.SchemeConflict{},
		EcoSchemes:       make(map[string]*model.EcoSchemeCalculation),
	}

	report.RequiredPoints = farm.Profile.TotalAreaUR * e.policy.EntryAreaShare * e.policy.EntryPointsPerHa

	for _, field := range farm.Fields {
		entry := field.HistoryForYear(year)
		if entry == nil {
			continue
		}

		if issue := e.reconcileArea(field, entry); issue != nil {
			report.ValidationIssues = append(report.ValidationIssues, *issue)
		}

		e.aggregateParts(report, field, entry.Parts(field.Area), year)
	}

	for _, calc := range report.EcoSchemes {
		report.TotalEstimatedValue += calc.EstimatedValue
	}
	report.IsEntryConditionMet = report.TotalPoints >= report.RequiredPoints

	return report
}
