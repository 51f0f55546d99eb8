package engine

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KDZFoundation/agrooptima/internal/model"
)

func entryConditionFarm(totalAreaUR, schemeArea float64) *model.FarmData {
	return &model.FarmData{
		Profile: model.FarmProfile{ProducerID: "123456789", TotalAreaUR: totalAreaUR},
		Fields: []*model.Field{{
			ID: "f1", Name: "Działka", Area: schemeArea, EligibleArea: schemeArea,
			History: []*model.HistoryEntry{{
				Year: 2025, Crop: "Pszenica", Area: schemeArea,
				AppliedEcoSchemes: []string{"E_MPW"},
			}},
		}},
	}
}

func TestEntryCondition(t *testing.T) {
	// 40 ha * 0.25 * 5 = 50 required points; E_MPW pays 5 pts/ha.
	e := testEngine(pointRate("E_MPW", 5))

	tests := []struct {
		name       string
		schemeArea float64
		met        bool
	}{
		{"exactly at threshold", 10.0, true},
		{"just below threshold", 9.9998, false},
		{"well above threshold", 12.0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := e.Analyze(entryConditionFarm(40, tt.schemeArea), 2025)

			assert.InDelta(t, 50.0, report.RequiredPoints, 1e-9)
			assert.Equal(t, tt.met, report.IsEntryConditionMet)
		})
	}
}

func TestRequiredPointsFollowsPolicy(t *testing.T) {
	policy := DefaultPolicy()
	policy.EntryAreaShare = 0.3
	policy.EntryPointsPerHa = 4.0
	e := New(testEngine().catalog, policy)

	report := e.Analyze(entryConditionFarm(50, 0), 2025)

	assert.InDelta(t, 50*0.3*4.0, report.RequiredPoints, 1e-9)
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	e := testEngine(
		pointRate("E_MPW", 5),
		model.SubsidyRate{ID: "r2", ShortName: "E_OBOR", Points: 2, Year: 2025,
			ConflictsWith: []string{"E_GNOJ"}},
		pointRate("E_GNOJ", 3),
	)

	farm := &model.FarmData{
		FarmName: "Gospodarstwo",
		Profile:  model.FarmProfile{ProducerID: "123456789", TotalAreaUR: 40},
		Fields: []*model.Field{
			{
				ID: "f1", Name: "Działka 1", Area: 5.4, EligibleArea: 5.4,
				History: []*model.HistoryEntry{{
					Year: 2025,
					CropParts: []model.CropPart{
						{Designation: "A", Crop: "Pszenica", Area: 3.0, EcoSchemes: []string{"E_MPW"}},
						{Designation: "B", Crop: "Rzepak", Area: 2.6, EcoSchemes: []string{"E_OBOR", "E_GNOJ"}},
					},
				}},
			},
			{
				ID: "f2", Name: "Działka 2", Area: 2.1, EligibleArea: 2.05,
				History: []*model.HistoryEntry{{
					Year: 2025, Crop: "Jęczmień", Area: 2.1,
					AppliedEcoSchemes: []string{"E_MPW"},
				}},
			},
		},
	}

	first := e.Analyze(farm, 2025)
	second := e.Analyze(farm, 2025)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("reports differ between identical invocations:\n%+v\n%+v", first, second)
	}
}

func TestEmptyFarm(t *testing.T) {
	report := testEngine().Analyze(&model.FarmData{
		Profile: model.FarmProfile{TotalAreaUR: 10},
	}, 2025)

	assert.Empty(t, report.ValidationIssues)
	assert.Empty(t, report.Conflicts)
	assert.Empty(t, report.EcoSchemes)
	assert.InDelta(t, 12.5, report.RequiredPoints, 1e-9)
	assert.False(t, report.IsEntryConditionMet)
	assert.Zero(t, report.TotalEstimatedValue)
}
