// Package hierarchy reconstructs the provenance graph of one farm's campaign
// year: farm → e-application → commune → parcel → crop part → eco-scheme.
//
// Construction is split in two phases. Build is pure and synchronous; the
// Annotator then resolves each node's evidence query against the retriever.
// The split keeps graph structure testable without any external collaborator.
package hierarchy

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/KDZFoundation/agrooptima/internal/model"
	"github.com/KDZFoundation/agrooptima/internal/ratecatalog"
)

// CommuneUnassigned buckets parcels with no territorial unit on record.
const CommuneUnassigned = "Nieprzypisane"

// ErrNoFarmData signals that the farm's own parcel structure could not be
// read. This is the only fatal condition: every other missing input degrades.
var ErrNoFarmData = errors.New("hierarchy: farm snapshot unavailable")

// Top-K evidence matches per node type.
const (
	topKCommune = 2
	topKParcel  = 2
	topKScheme  = 1
)

// BuildInput inputs of one graph construction.
type BuildInput struct {
	Farm        *model.FarmData
	Year        int
	Documents   []model.FarmerDocument
	Catalog     *ratecatalog.Catalog
	GeneratedAt time.Time // stamped on all evidence records
}

// Build constructs the campaign graph. Node IDs derive from stable keys
// (campaign, commune name, field id, part index, scheme code), so identical
// inputs reproduce an identical graph.
func Build(in BuildInput) (*model.HierarchyGraph, error) {
	if in.Farm == nil {
		return nil, ErrNoFarmData
	}

	b := &builder{in: in, now: in.GeneratedAt.UTC()}
	return b.build(), nil
}

type builder struct {
	in    BuildInput
	now   time.Time
	nodes []*model.HierarchyNode
}

func (b *builder) add(n *model.HierarchyNode) *model.HierarchyNode {
	b.nodes = append(b.nodes, n)
	return n
}

func (b *builder) build() *model.HierarchyGraph {
	farm := b.in.Farm
	campaignID := fmt.Sprintf("camp_%d_%s", b.in.Year, farm.Profile.ProducerID)

	root := b.add(&model.HierarchyNode{
		ID:     campaignID,
		Type:   model.NodeFarm,
		Label:  fmt.Sprintf("Kampania %d: %s", b.in.Year, farm.FarmName),
		Value:  "EP: " + farm.Profile.ProducerID,
		Status: model.StatusValid,
		Evidence: model.Evidence{
			Source:    "System Core",
			Timestamp: b.now,
			Details:   "Struktura kampanii wygenerowana automatycznie.",
		},
		Children: []string{},
	})

	root.Children = append(root.Children, b.applicationNode(campaignID).ID)

	for _, commune := range b.communes() {
		root.Children = append(root.Children, b.communeNode(campaignID, commune).ID)
	}

	return &model.HierarchyGraph{Nodes: b.nodes, RootID: campaignID}
}

// applicationNode records presence or absence of the campaign's e-application
// (WNIOSEK) document.
func (b *builder) applicationNode(campaignID string) *model.HierarchyNode {
	var wniosek *model.FarmerDocument
	yearStr := strconv.Itoa(b.in.Year)
	for i := range b.in.Documents {
		d := &b.in.Documents[i]
		if d.Category == model.DocCategoryApplication && d.CampaignYear == yearStr {
			wniosek = d
			break
		}
	}

	node := &model.HierarchyNode{
		ID:   "doc_" + campaignID,
		Type: model.NodeFinancialResult,
	}
	if wniosek != nil {
		node.Label = "e-Wniosek: " + wniosek.Name
		node.Value = "Wgrano"
		node.Status = model.StatusValid
		node.Evidence = model.Evidence{
			Source:    "Moduł Dokumentów",
			Timestamp: b.now,
			Details:   "Plik zweryfikowany pod kątem kampanii.",
		}
	} else {
		node.Label = "BRAK e-Wniosku"
		node.Value = "Wymagany"
		node.Status = model.StatusError
		node.Evidence = model.Evidence{
			Source:    "Moduł Dokumentów",
			Timestamp: b.now,
			Details:   "Nie znaleziono pliku.",
		}
	}
	return b.add(node)
}

// communes returns distinct territorial units in first-appearance order,
// which keeps the graph deterministic for a given snapshot.
func (b *builder) communes() []string {
	seen := make(map[string]bool)
	var order []string
	for _, f := range b.in.Farm.Fields {
		name := f.Commune
		if name == "" {
			name = CommuneUnassigned
		}
		if !seen[name] {
			seen[name] = true
			order = append(order, name)
		}
	}
	return order
}

func (b *builder) communeNode(campaignID, commune string) *model.HierarchyNode {
	var fields []*model.Field
	for _, f := range b.in.Farm.Fields {
		name := f.Commune
		if name == "" {
			name = CommuneUnassigned
		}
		if name == commune {
			fields = append(fields, f)
		}
	}

	node := b.add(&model.HierarchyNode{
		ID:     fmt.Sprintf("commune_%s_%s", strings.ReplaceAll(commune, " ", "_"), campaignID),
		Type:   model.NodeCommune,
		Label:  "Gmina: " + commune,
		Value:  fmt.Sprintf("%d działek", len(fields)),
		Status: model.StatusValid,
		Evidence: model.Evidence{
			Source:    "Ewidencja Gruntów",
			Timestamp: b.now,
			Details:   "Agregacja terytorialna dla gminy.",
			Query:     fmt.Sprintf("Gmina %s obręb ewidencyjny", commune),
		},
		Children: []string{},
	})

	for _, field := range fields {
		entry := field.HistoryForYear(b.in.Year)
		if entry == nil {
			continue
		}
		node.Children = append(node.Children, b.parcelNode(campaignID, field, entry).ID)
	}

	return node
}

func (b *builder) parcelNode(campaignID string, field *model.Field, entry *model.HistoryEntry) *model.HierarchyNode {
	// Status reflects the declaration itself: an entry without its own
	// eligible area is flagged even when the parcel carries a known PEG.
	// The parcel-level figure only backs the displayed value.
	status := model.StatusValid
	if entry.EligibleArea <= 0 {
		status = model.StatusWarning
	}

	eligible := entry.EligibleArea
	if eligible == 0 {
		eligible = field.EligibleArea
	}

	node := b.add(&model.HierarchyNode{
		ID:     fmt.Sprintf("parcel_ref_%s_%s", field.ID, campaignID),
		Type:   model.NodeParcelRef,
		Label:  "Działka " + field.RegistrationNumber,
		Value:  fmt.Sprintf("%.2f ha PEG", eligible),
		Status: status,
		Evidence: model.Evidence{
			Source:    "Zasób ARiMR",
			Timestamp: b.now,
			Details:   "Powierzchnia referencyjna zweryfikowana z ewidencją.",
			Query:     fmt.Sprintf("Działka %s powierzchnia %.2f ha", field.RegistrationNumber, eligible),
		},
		Children: []string{},
	})

	for idx, part := range entry.Parts(field.Area) {
		node.Children = append(node.Children, b.agriParcelNode(campaignID, field, idx, part).ID)
	}

	return node
}

func (b *builder) agriParcelNode(campaignID string, field *model.Field, idx int, part model.CropPart) *model.HierarchyNode {
	node := b.add(&model.HierarchyNode{
		ID:     fmt.Sprintf("agri_%s_%d_%s", field.ID, idx, campaignID),
		Type:   model.NodeAgriParcel,
		Label:  fmt.Sprintf("Uprawa %s: %s", part.Designation, part.Crop),
		Value:  fmt.Sprintf("%.2f ha", part.Area),
		Status: model.StatusValid,
		Evidence: model.Evidence{
			Source:    "Struktura Zasiewów",
			Timestamp: b.now,
			Details:   "Deklaracja rośliny uprawnej na części działki.",
		},
		Children: []string{},
	})

	for _, code := range part.EcoSchemes {
		node.Children = append(node.Children, b.schemeNode(node.ID, code).ID)
	}

	return node
}

func (b *builder) schemeNode(agriParcelID, code string) *model.HierarchyNode {
	node := &model.HierarchyNode{
		ID:    fmt.Sprintf("scheme_%s_%s", agriParcelID, code),
		Type:  model.NodeEcoScheme,
		Label: "Praktyka: " + code,
	}

	rate, ok := b.in.Catalog.Lookup(b.in.Year, code)
	if ok {
		node.Status = model.StatusValid
		if rate.Points > 0 {
			node.Value = fmt.Sprintf("%g pkt/ha", rate.Points)
		} else {
			node.Value = fmt.Sprintf("%.2f %s", rate.Rate, rate.Unit)
		}
		details := rate.Description
		if details == "" {
			details = "Zastosowanie ekoschematu."
		}
		node.Evidence = model.Evidence{
			Source:    "Logika Biznesowa",
			Timestamp: b.now,
			Details:   details,
			Query:     fmt.Sprintf("Wymogi ekoschematu %s %s", code, rate.Name),
		}
	} else {
		node.Status = model.StatusError
		node.Value = "Brak stawki"
		node.Evidence = model.Evidence{
			Source:    "Logika Biznesowa",
			Timestamp: b.now,
			Details:   "Brak definicji stawki dla kampanii.",
			Query:     fmt.Sprintf("Wymogi ekoschematu %s", code),
		}
	}

	return b.add(node)
}

// topK returns how many evidence matches a node type is annotated with.
func topK(nodeType string) int {
	switch nodeType {
	case model.NodeCommune:
		return topKCommune
	case model.NodeParcelRef:
		return topKParcel
	case model.NodeEcoScheme:
		return topKScheme
	}
	return 0
}
