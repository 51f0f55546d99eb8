package hierarchy

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KDZFoundation/agrooptima/internal/model"
	"github.com/KDZFoundation/agrooptima/internal/ratecatalog"
)

var buildTime = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func testInput() BuildInput {
	return BuildInput{
		Farm: &model.FarmData{
			FarmName: "Gospodarstwo Kowalski",
			Profile:  model.FarmProfile{ProducerID: "123456789", TotalAreaUR: 40},
			Fields: []*model.Field{
				{
					ID: "f1", Name: "Działka za lasem", RegistrationNumber: "145/2",
					Commune: "Brodnica", Area: 5.4, EligibleArea: 5.4,
					History: []*model.HistoryEntry{{
						Year: 2025, EligibleArea: 5.4,
						CropParts: []model.CropPart{
							{Designation: "A", Crop: "Pszenica", Area: 3.0, EcoSchemes: []string{"E_MPW"}},
							{Designation: "B", Crop: "Rzepak", Area: 2.4, EcoSchemes: []string{"E_IPR", "E_XXX"}},
						},
					}},
				},
				{
					ID: "f2", Name: "Przy drodze", RegistrationNumber: "88/1",
					Area: 2.1, EligibleArea: 2.05,
					History: []*model.HistoryEntry{{
						Year: 2025, Crop: "Jęczmień", Area: 2.1,
						AppliedEcoSchemes: []string{"E_MPW"},
					}},
				},
				{
					ID: "f3", Name: "Ugór", RegistrationNumber: "12/4",
					Commune: "Brodnica", Area: 1.0, EligibleArea: 1.0,
					// no declaration for 2025
					History: []*model.HistoryEntry{{Year: 2024, Crop: "Żyto", Area: 1.0}},
				},
			},
		},
		Year: 2025,
		Documents: []model.FarmerDocument{
			{ID: "d1", Name: "wniosek_2025.pdf", Category: "WNIOSEK", CampaignYear: "2025"},
			{ID: "d2", Name: "mapa.pdf", Category: "MAPA", CampaignYear: "2025"},
		},
		Catalog: ratecatalog.New([]model.SubsidyRate{
			{ID: "r1", ShortName: "E_MPW", Name: "Międzyplony ozime", Points: 5, Unit: "PLN/pkt", Year: 2025},
			{ID: "r2", ShortName: "E_IPR", Name: "Integrowana Produkcja", Rate: 505.18, Unit: "PLN/ha", Year: 2025},
		}),
		GeneratedAt: buildTime,
	}
}

func nodeByID(t *testing.T, g *model.HierarchyGraph, id string) *model.HierarchyNode {
	t.Helper()
	n := g.Node(id)
	require.NotNil(t, n, "missing node %s", id)
	return n
}

func TestBuildGraphStructure(t *testing.T) {
	g, err := Build(testInput())
	require.NoError(t, err)

	assert.Equal(t, "camp_2025_123456789", g.RootID)

	root := nodeByID(t, g, g.RootID)
	assert.Equal(t, model.NodeFarm, root.Type)
	// e-application + two communes (Brodnica, unassigned bucket).
	require.Len(t, root.Children, 3)

	doc := nodeByID(t, g, "doc_camp_2025_123456789")
	assert.Equal(t, model.StatusValid, doc.Status)
	assert.Contains(t, doc.Label, "wniosek_2025.pdf")

	brodnica := nodeByID(t, g, "commune_Brodnica_camp_2025_123456789")
	// f3 has no 2025 declaration: only f1 appears under Brodnica.
	require.Len(t, brodnica.Children, 1)
	assert.Equal(t, "2 działek", brodnica.Value)

	unassigned := nodeByID(t, g, "commune_"+CommuneUnassigned+"_camp_2025_123456789")
	require.Len(t, unassigned.Children, 1)

	parcel := nodeByID(t, g, "parcel_ref_f1_camp_2025_123456789")
	assert.Equal(t, model.StatusValid, parcel.Status)
	require.Len(t, parcel.Children, 2) // two crop parts

	agriA := nodeByID(t, g, "agri_f1_0_camp_2025_123456789")
	require.Len(t, agriA.Children, 1)

	scheme := nodeByID(t, g, "scheme_agri_f1_0_camp_2025_123456789_E_MPW")
	assert.Equal(t, model.StatusValid, scheme.Status)
	assert.Equal(t, "5 pkt/ha", scheme.Value)
}

func TestBuildGraphCompleteness(t *testing.T) {
	g, err := Build(testInput())
	require.NoError(t, err)

	// Every declared parcel appears as exactly one PARCEL_REF under exactly
	// one COMMUNE; every applied code as exactly one ECO_SCHEME.
	parcelCount := map[string]int{}
	schemeCount := map[string]int{}
	childRefs := map[string]int{}

	for _, n := range g.Nodes {
		switch n.Type {
		case model.NodeParcelRef:
			parcelCount[n.ID]++
		case model.NodeEcoScheme:
			schemeCount[n.ID]++
		}
		for _, c := range n.Children {
			childRefs[c]++
		}
	}

	assert.Len(t, parcelCount, 2) // f1 and f2, not f3
	for id, count := range parcelCount {
		assert.Equal(t, 1, count, id)
		assert.Equal(t, 1, childRefs[id], "parcel %s referenced by one commune", id)
	}

	assert.Len(t, schemeCount, 4) // E_MPW, E_IPR, E_XXX on f1; E_MPW on f2
	for id, count := range schemeCount {
		assert.Equal(t, 1, count, id)
		assert.Equal(t, 1, childRefs[id], "scheme %s under one agri parcel", id)
	}
}

func TestBuildDeterminism(t *testing.T) {
	first, err := Build(testInput())
	require.NoError(t, err)
	second, err := Build(testInput())
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("graphs differ between identical inputs (-first +second):\n%s", diff)
	}
}

func TestMissingApplicationDocument(t *testing.T) {
	in := testInput()
	in.Documents = []model.FarmerDocument{
		{ID: "d2", Name: "mapa.pdf", Category: "MAPA", CampaignYear: "2025"},
		{ID: "d3", Name: "wniosek_2024.pdf", Category: "WNIOSEK", CampaignYear: "2024"},
	}

	g, err := Build(in)
	require.NoError(t, err)

	doc := nodeByID(t, g, "doc_camp_2025_123456789")
	assert.Equal(t, model.StatusError, doc.Status)
	assert.Equal(t, "BRAK e-Wniosku", doc.Label)
}

func TestUnknownSchemeCodeNodeErrors(t *testing.T) {
	g, err := Build(testInput())
	require.NoError(t, err)

	scheme := nodeByID(t, g, "scheme_agri_f1_1_camp_2025_123456789_E_XXX")
	assert.Equal(t, model.StatusError, scheme.Status)
	assert.Equal(t, "Brak stawki", scheme.Value)
}

func TestZeroEligibleAreaParcelWarning(t *testing.T) {
	in := testInput()
	in.Farm.Fields = []*model.Field{{
		ID: "f9", Name: "Bez PEG", RegistrationNumber: "1/1",
		History: []*model.HistoryEntry{{Year: 2025, Crop: "Trawy", Area: 0.8}},
	}}

	g, err := Build(in)
	require.NoError(t, err)

	parcel := nodeByID(t, g, "parcel_ref_f9_camp_2025_123456789")
	assert.Equal(t, model.StatusWarning, parcel.Status)
}

func TestEntryWithoutEligibleAreaWarnsDespiteParcelPEG(t *testing.T) {
	in := testInput()
	in.Farm.Fields = []*model.Field{{
		ID: "f9", Name: "Bez PEG w deklaracji", RegistrationNumber: "1/1",
		Area: 2.0, EligibleArea: 2.0,
		History: []*model.HistoryEntry{{Year: 2025, Crop: "Trawy", Area: 2.0}},
	}}

	g, err := Build(in)
	require.NoError(t, err)

	// The declaration carries no eligible area of its own, so the node is
	// flagged; the parcel-level PEG still backs the displayed value.
	parcel := nodeByID(t, g, "parcel_ref_f9_camp_2025_123456789")
	assert.Equal(t, model.StatusWarning, parcel.Status)
	assert.Equal(t, "2.00 ha PEG", parcel.Value)
}

func TestSynthesizedPartForUnsplitDeclaration(t *testing.T) {
	g, err := Build(testInput())
	require.NoError(t, err)

	// f2 declares without crop parts: one synthetic part "A".
	agri := nodeByID(t, g, "agri_f2_0_camp_2025_123456789")
	assert.True(t, strings.HasPrefix(agri.Label, "Uprawa A:"), agri.Label)
	assert.Equal(t, "2.10 ha", agri.Value)
}

func TestEvidenceQueriesOnQualifyingNodes(t *testing.T) {
	g, err := Build(testInput())
	require.NoError(t, err)

	assert.Contains(t, nodeByID(t, g, "commune_Brodnica_camp_2025_123456789").Evidence.Query, "Gmina Brodnica")
	assert.Contains(t, nodeByID(t, g, "parcel_ref_f1_camp_2025_123456789").Evidence.Query, "145/2")
	assert.Contains(t, nodeByID(t, g, "scheme_agri_f1_0_camp_2025_123456789_E_MPW").Evidence.Query, "Międzyplony")

	// Farm, document and crop-part nodes are never annotated.
	assert.Empty(t, nodeByID(t, g, g.RootID).Evidence.Query)
	assert.Empty(t, nodeByID(t, g, "agri_f1_0_camp_2025_123456789").Evidence.Query)
}

func TestNilFarmIsFatal(t *testing.T) {
	_, err := Build(BuildInput{Year: 2025, GeneratedAt: buildTime})
	assert.ErrorIs(t, err, ErrNoFarmData)
}
