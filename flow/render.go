package flow

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
)

// RenderOptions controls the generated vis-network page.
type RenderOptions struct {
	Height      string `json:"height"`
	Width       string `json:"width"`
	ScalingMin  int    `json:"scalingMin"`
	ScalingMax  int    `json:"scalingMax"`
	OpenBrowser bool   `json:"openBrowser"`
}

// ApplyDefaults populates zero values with the stock layout settings.
func (o *RenderOptions) ApplyDefaults() {
	if o.Height == "" {
		o.Height = "750px"
	}
	if o.Width == "" {
		o.Width = "100%"
	}
	if o.ScalingMin <= 0 {
		o.ScalingMin = 10
	}
	if o.ScalingMax <= 0 {
		o.ScalingMax = 50
	}
}

// visNode and visEdge mirror the node/edge objects the vis-network renderer
// consumes. Nodes show only their identifier on canvas and in the hover
// tooltip; edge details live exclusively in the edge tooltip.
type visNode struct {
	ID      string     `json:"id"`
	Label   string     `json:"label"`
	Title   string     `json:"title"`
	Shape   string     `json:"shape"`
	Value   int        `json:"value"`
	Scaling visScaling `json:"scaling"`
}

type visScaling struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type visEdge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Arrows string `json:"arrows"`
	Title  string `json:"title"`
	Value  int    `json:"value"`
}

type visPage struct {
	Title   string
	Height  string
	Width   string
	Nodes   template.JS
	Edges   template.JS
	Options template.JS
}

var visTemplate = template.Must(template.New("graph").Parse(visPageHTML))

const visPageHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="https://unpkg.com/vis-network/standalone/umd/vis-network.min.js"></script>
<style>
#network { width: {{.Width}}; height: {{.Height}}; border: 1px solid #dddddd; }
</style>
</head>
<body>
<div id="network"></div>
<script>
var nodes = new vis.DataSet({{.Nodes}});
var edges = new vis.DataSet({{.Edges}});
var container = document.getElementById("network");
var network = new vis.Network(container, {nodes: nodes, edges: edges}, {{.Options}});
</script>
</body>
</html>
`

// visOptions matches the interaction and physics settings of the renderer:
// hover tooltips, navigation buttons and stabilized force layout.
const visOptions = `{
  "interaction": {"hover": true, "navigationButtons": true},
  "physics": {"solver": "barnesHut", "stabilization": true}
}`

// Render writes the transfer graph as a standalone interactive HTML page for
// the vis-network renderer. It fails with ErrEmptyGraph when there is
// nothing to draw.
func Render(g *Graph, opts RenderOptions, outPath string) error {
	if g == nil || g.Empty() {
		return fmt.Errorf("%w: check that your file has 'From' and 'To' columns and at least one row", ErrEmptyGraph)
	}
	opts.ApplyDefaults()

	nodes := make([]visNode, 0, len(g.Nodes))
	for _, n := range g.SortedNodes() {
		value := n.Degree
		if value < 1 {
			value = 1
		}
		nodes = append(nodes, visNode{
			ID:      n.ID,
			Label:   n.ID,
			Title:   n.ID,
			Shape:   "dot",
			Value:   value,
			Scaling: visScaling{Min: opts.ScalingMin, Max: opts.ScalingMax},
		})
	}
	edges := make([]visEdge, 0, len(g.Edges))
	for _, e := range g.SortedEdges() {
		edges = append(edges, visEdge{
			From:   e.Source,
			To:     e.Destination,
			Arrows: "to",
			Title:  e.Tooltip,
			Value:  e.Weight,
		})
	}

	nodesJSON, err := json.Marshal(nodes)
	if err != nil {
		return fmt.Errorf("encode nodes: %w", err)
	}
	edgesJSON, err := json.Marshal(edges)
	if err != nil {
		return fmt.Errorf("encode edges: %w", err)
	}

	var buf bytes.Buffer
	page := visPage{
		Title:   "Transfer network",
		Height:  opts.Height,
		Width:   opts.Width,
		Nodes:   template.JS(nodesJSON),
		Edges:   template.JS(edgesJSON),
		Options: template.JS(visOptions),
	}
	if err := visTemplate.Execute(&buf, page); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(outPath), err)
	}
	return nil
}

// OutputPathFor returns the default HTML path for an input file: same
// directory, same stem, with a "_graph.html" suffix.
func OutputPathFor(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + "_graph.html"
}
