package flow

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Aggregate groups the relation by ordered (source, destination) pairs and
// builds the directed transfer graph. A->B and B->A stay separate edges;
// self-loops are retained. Groups with a blank endpoint after trimming are
// skipped, covering relations that were built by hand rather than by
// ReadTable. An empty relation yields an empty graph, never an error.
func Aggregate(rel Relation) *Graph {
	type group struct {
		count int
		total *decimal.Decimal
	}
	groups := make(map[EdgeKey]*group, len(rel))
	for _, t := range rel {
		key := EdgeKey{
			Source:      strings.TrimSpace(t.Source),
			Destination: strings.TrimSpace(t.Destination),
		}
		g := groups[key]
		if g == nil {
			g = &group{}
			groups[key] = g
		}
		g.count++
		if t.Amount != nil {
			if g.total == nil {
				zero := decimal.Zero
				g.total = &zero
			}
			sum := g.total.Add(*t.Amount)
			g.total = &sum
		}
	}

	out := NewGraph()
	for key, g := range groups {
		if key.Source == "" || key.Destination == "" {
			continue
		}
		out.ensureNode(key.Source)
		out.ensureNode(key.Destination)
		out.Edges[key] = &Edge{
			Source:        key.Source,
			Destination:   key.Destination,
			TransferCount: g.count,
			AmountTotal:   g.total,
			Weight:        g.count,
			Tooltip:       edgeTooltip(key.Source, key.Destination, g.count, g.total),
		}
	}

	// Weighted degree: each incident edge contributes its transfer count,
	// so a self-loop counts twice.
	for _, e := range out.Edges {
		out.Nodes[e.Source].Degree += e.TransferCount
		out.Nodes[e.Destination].Degree += e.TransferCount
	}
	return out
}

// edgeTooltip builds the hover text for an edge. The format is shared with
// downstream consumers of the rendered page and must be reproduced exactly.
func edgeTooltip(src, dst string, count int, total *decimal.Decimal) string {
	tooltip := fmt.Sprintf("From: %s->To: %s; Transfers: %d", src, dst, count)
	if total != nil {
		tooltip += fmt.Sprintf("; Total amount: %s", total.StringFixed(2))
	}
	return tooltip
}
