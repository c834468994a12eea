package flow

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_EmptyGraph(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "graph.html")
	err := Render(NewGraph(), RenderOptions{}, out)
	require.ErrorIs(t, err, ErrEmptyGraph)
	assert.NoFileExists(t, out)

	err = Render(nil, RenderOptions{}, out)
	require.ErrorIs(t, err, ErrEmptyGraph)
}

func TestRender_WritesVisNetworkPage(t *testing.T) {
	t.Parallel()

	g := Aggregate(Relation{
		{Source: "X", Destination: "Y", Amount: amt("10")},
		{Source: "X", Destination: "Y", Amount: amt("5")},
	})
	out := filepath.Join(t.TempDir(), "graph.html")
	require.NoError(t, Render(g, RenderOptions{}, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	page := string(data)

	assert.Contains(t, page, "vis-network")
	assert.Contains(t, page, `"id":"X"`)
	assert.Contains(t, page, `"label":"Y"`)
	assert.Contains(t, page, `"shape":"dot"`)
	assert.Contains(t, page, `"arrows":"to"`)
	// Edge details live in the hover title; the arrow in the tooltip is
	// JSON-escaped, so match around it.
	assert.Contains(t, page, "Transfers: 2; Total amount: 15.00")
	assert.Contains(t, page, "navigationButtons")
	// Defaults applied.
	assert.Contains(t, page, "750px")
	assert.Contains(t, page, `"min":10`)
	assert.Contains(t, page, `"max":50`)
}

func TestRender_CustomOptions(t *testing.T) {
	t.Parallel()

	g := Aggregate(Relation{{Source: "A", Destination: "B"}})
	out := filepath.Join(t.TempDir(), "graph.html")
	opts := RenderOptions{Height: "500px", Width: "80%", ScalingMin: 5, ScalingMax: 99}
	require.NoError(t, Render(g, opts, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	page := string(data)
	assert.Contains(t, page, "500px")
	assert.Contains(t, page, `"min":5`)
	assert.Contains(t, page, `"max":99`)
}

func TestRenderOptions_ApplyDefaults(t *testing.T) {
	t.Parallel()

	var o RenderOptions
	o.ApplyDefaults()
	assert.Equal(t, "750px", o.Height)
	assert.Equal(t, "100%", o.Width)
	assert.Equal(t, 10, o.ScalingMin)
	assert.Equal(t, 50, o.ScalingMax)
	assert.False(t, o.OpenBrowser)
}

func TestOutputPathFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.Join("data", "transfers_graph.html"),
		OutputPathFor(filepath.Join("data", "transfers.csv")))
	assert.Equal(t, "book_graph.html", OutputPathFor("book.xlsx"))
	assert.Equal(t, "noext_graph.html", OutputPathFor("noext"))
}
