package engine

import (
	"fmt"
	"strings"

	"github.com/KDZFoundation/agrooptima/internal/model"
)

// aggregateParts walks one declaration's crop parts and accumulates the
// report's per-scheme buckets, farm-level points, mutual-exclusion conflicts
// and density warnings.
//
// Unmatched practice codes still accrue area, just no monetary value:
// mid-campaign registries routinely reference codes before the rate table
// carries them.
func (e *Engine) aggregateParts(report *model.FarmAnalysisReport, field *model.Field, parts []model.CropPart, year int) {
	for _, part := range parts {
		if len(part.EcoSchemes) == 0 {
			continue
		}

		if len(part.EcoSchemes) > e.policy.SchemeDensityLimit {
			report.ValidationIssues = append(report.ValidationIssues, model.ValidationIssue{
				Type:      model.IssueWarning,
				FieldID:   field.ID,
				FieldName: field.Name,
				Message: fmt.Sprintf(
					"Duża liczba praktyk (%d) na części %s - sprawdź wykluczenia.",
					len(part.EcoSchemes), part.Designation),
			})
		}

		report.Conflicts = append(report.Conflicts, e.partConflicts(field, part, year)...)

		for _, code := range part.EcoSchemes {
			calc, ok := report.EcoSchemes[code]
			if !ok {
				calc = &model.EcoSchemeCalculation{SchemeCode: code}
				report.EcoSchemes[code] = calc
			}

			calc.TotalArea += part.Area

			rate, ok := e.catalog.Lookup(year, code)
			if !ok {
				continue
			}

			if rate.Points > 0 {
				pts := part.Area * rate.Points
				calc.TotalPoints += pts
				report.TotalPoints += pts
				calc.EstimatedValue += pts * e.policy.PointValuePLN
			} else {
				calc.EstimatedValue += part.Area * e.effectiveRate(rate)
			}
		}
	}
}

// partConflicts reports every excluded pair of codes applied together on one
// part. Iterating unordered pairs keeps each (part, pair) reported exactly
// once regardless of code order in the declaration.
func (e *Engine) partConflicts(field *model.Field, part model.CropPart, year int) []model.SchemeConflict {
	var conflicts []model.SchemeConflict
	codes := part.EcoSchemes
	for i := 0; i < len(codes); i++ {
		for j := i + 1; j < len(codes); j++ {
			if !e.catalog.InConflict(year, codes[i], codes[j]) {
				continue
			}
			conflicts = append(conflicts, model.SchemeConflict{
				FieldID:         field.ID,
				FieldName:       field.Name,
				PartDesignation: part.Designation,
				Schemes:         []string{codes[i], codes[j]},
			})
		}
	}
	return conflicts
}

// effectiveRate converts EUR-denominated rates to PLN with the campaign
// conversion rate from policy.
func (e *Engine) effectiveRate(rate model.SubsidyRate) float64 {
	if strings.Contains(rate.Unit, "EUR") {
		return rate.Rate * e.policy.EURToPLN
	}
	return rate.Rate
}
