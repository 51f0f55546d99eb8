package model

import "time"

// Hierarchy node types, root to leaf
const (
	NodeFarm            = "FARM"
	NodeFinancialResult = "FINANCIAL_RESULT"
	NodeCommune         = "COMMUNE"
	NodeParcelRef       = "PARCEL_REF"
	NodeAgriParcel      = "AGRI_PARCEL"
	NodeEcoScheme       = "ECO_SCHEME"
)

// Node statuses
const (
	StatusValid   = "VALID"
	StatusWarning = "WARNING"
	StatusError   = "ERROR"
)

// EvidenceSnippet supporting text retrieved for a node
type EvidenceSnippet struct {
	ChunkID      string `json:"chunkId"`
	DocumentName string `json:"documentName"`
	Content      string `json:"content"`
}

// Evidence provenance record carried by every hierarchy node.
// Query is the natural-language retrieval query derived from the node's own
// fields during graph construction; the annotation pass resolves it into
// Matches. Nodes with an empty Query are never annotated.
type Evidence struct {
	Source    string            `json:"source"`
	Timestamp time.Time         `json:"timestamp"`
	Details   string            `json:"details"`
	Query     string            `json:"query,omitempty"`
	Matches   []EvidenceSnippet `json:"matches,omitempty"`
}

// HierarchyNode one node of the campaign provenance graph.
// Children holds child node IDs; the graph is a rooted tree-shaped DAG.
type HierarchyNode struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Label    string   `json:"label"`
	Value    string   `json:"value"`
	Status   string   `json:"status"`
	Evidence Evidence `json:"evidence"`
	Children []string `json:"children,omitempty"`
}

// HierarchyGraph derived provenance graph for one (farm, year) campaign.
// Node IDs derive from stable keys, so identical inputs reproduce an
// identical graph.
type HierarchyGraph struct {
	Nodes  []*HierarchyNode `json:"nodes"`
	RootID string           `json:"rootId"`
}

// Node returns the node with the given id, nil if absent.
func (g *HierarchyGraph) Node(id string) *HierarchyNode {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}
