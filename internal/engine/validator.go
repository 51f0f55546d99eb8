package engine

import (
	"fmt"
	"strings"

	"github.com/KDZFoundation/agrooptima/internal/model"
)

// reconcileArea checks one declaration against the administratively eligible
// (reference) area. Returns nil when the declaration fits; otherwise a WARNING
// within the tolerance band or an ERROR above it.
func (e *Engine) reconcileArea(field *model.Field, entry *model.HistoryEntry) *model.ValidationIssue {
	declaredSum, breakdown := declaredArea(entry)
	referenceArea := referenceArea(field, entry)

	diff := declaredSum - referenceArea
	tolerance := referenceArea * e.policy.AreaTolerance

	if diff <= e.policy.AreaEpsilon {
		return nil
	}

	if diff > tolerance {
		return &model.ValidationIssue{
			Type:      model.IssueError,
			FieldID:   field.ID,
			FieldName: field.Name,
			Message: fmt.Sprintf(
				"Przekroczenie powierzchni referencyjnej! Zadeklarowano: %.2f ha, Ewidencja (PEG): %.2f ha. Podział: %s",
				declaredSum, referenceArea, breakdown),
		}
	}

	return &model.ValidationIssue{
		Type:      model.IssueWarning,
		FieldID:   field.ID,
		FieldName: field.Name,
		Message: fmt.Sprintf(
			"Niewielkie przekroczenie powierzchni referencyjnej (w granicach błędu %.0f%%).",
			e.policy.AreaTolerance*100),
	}
}

// declaredArea sums the crop-part areas, falling back to the entry's scalar
// area when the declaration was never split. The breakdown string goes into
// ERROR messages for traceability.
func declaredArea(entry *model.HistoryEntry) (float64, string) {
	if len(entry.CropParts) == 0 {
		return entry.Area, fmt.Sprintf("Brak podziału: %.2f ha", entry.Area)
	}

	var sum float64
	parts := make([]string, 0, len(entry.CropParts))
	for _, p := range entry.CropParts {
		sum += p.Area
		parts = append(parts, fmt.Sprintf("%s: %.2f ha", p.Designation, p.Area))
	}
	return sum, strings.Join(parts, ", ")
}

// referenceArea resolves the eligible area through the fallback chain
// year entry → parcel → declared scalar → parcel total → 0, so that
// partially imported registries still reconcile best-effort.
func referenceArea(field *model.Field, entry *model.HistoryEntry) float64 {
	switch {
	case entry.EligibleArea > 0:
		return entry.EligibleArea
	case field.EligibleArea > 0:
		return field.EligibleArea
	case entry.Area > 0:
		return entry.Area
	case field.Area > 0:
		return field.Area
	}
	return 0
}
