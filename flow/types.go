package flow

import (
	"encoding/json"
	"errors"
	"sort"

	"github.com/shopspring/decimal"
)

// Sentinel errors surfaced to the UI shell and CLI. All of them are
// recoverable: the run is discarded and the application stays usable.
var (
	// ErrUnsupportedFormat indicates the file extension is not a recognized
	// spreadsheet or delimited text format.
	ErrUnsupportedFormat = errors.New("unsupported file type")
	// ErrMissingColumns indicates no header could be resolved to the source
	// or destination role.
	ErrMissingColumns = errors.New("could not find 'From' and 'To' columns")
	// ErrEmptyGraph indicates aggregation produced no nodes or edges.
	ErrEmptyGraph = errors.New("the network is empty")
)

// Transfer is one normalized row of the canonical relation. Source and
// Destination are trimmed strings; Amount is nil when the column was absent
// or the cell did not parse as a number.
type Transfer struct {
	Source      string           `json:"source"`
	Destination string           `json:"destination"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
}

// Relation is the canonical three-field row set produced by ReadTable.
type Relation []Transfer

// Node is a distinct account identifier appearing as source or destination.
// Degree is the weighted in-degree plus weighted out-degree, where each
// incident edge weighs its transfer count.
type Node struct {
	ID     string `json:"id"`
	Degree int    `json:"degree"`
}

// EdgeKey identifies a directed edge by its ordered endpoint pair.
type EdgeKey struct {
	Source      string
	Destination string
}

// Edge is one directed edge of the transfer graph, collapsing every row
// that shares the same ordered (source, destination) pair.
type Edge struct {
	Source        string           `json:"source"`
	Destination   string           `json:"destination"`
	TransferCount int              `json:"transferCount"`
	AmountTotal   *decimal.Decimal `json:"amountTotal,omitempty"`
	Weight        int              `json:"weight"`
	Tooltip       string           `json:"tooltip"`
}

// Graph is the aggregated directed transfer graph handed to the renderer.
type Graph struct {
	Nodes map[string]*Node
	Edges map[EdgeKey]*Edge
}

// NewGraph returns an empty graph ready for insertion.
func NewGraph() *Graph {
	return &Graph{
		Nodes: make(map[string]*Node),
		Edges: make(map[EdgeKey]*Edge),
	}
}

// Empty reports whether the graph has no nodes or no edges.
func (g *Graph) Empty() bool {
	return len(g.Nodes) == 0 || len(g.Edges) == 0
}

func (g *Graph) ensureNode(id string) *Node {
	if n, ok := g.Nodes[id]; ok {
		return n
	}
	n := &Node{ID: id}
	g.Nodes[id] = n
	return n
}

// SortedNodes returns the nodes ordered by identifier for deterministic
// rendering and serialization.
func (g *Graph) SortedNodes() []*Node {
	nodes := make([]*Node, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	return nodes
}

// SortedEdges returns the edges ordered by source then destination.
func (g *Graph) SortedEdges() []*Edge {
	edges := make([]*Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Destination < edges[j].Destination
	})
	return edges
}

// MarshalJSON serializes the graph as sorted node and edge lists.
func (g *Graph) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Nodes []*Node `json:"nodes"`
		Edges []*Edge `json:"edges"`
	}{
		Nodes: g.SortedNodes(),
		Edges: g.SortedEdges(),
	})
}
