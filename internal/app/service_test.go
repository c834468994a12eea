package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transferviz/flow"
)

func newTestService(t *testing.T, cfg flow.Config) *Service {
	t.Helper()
	// Never reach for the browser from tests.
	cfg.Render.OpenBrowser = false
	return NewService(cfg, zerolog.Nop())
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transfers.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestServiceProcess_RendersGraph(t *testing.T) {
	svc := newTestService(t, flow.Config{})
	path := writeCSV(t, "From,To,Amount\nX,Y,10\nX,Y,5\n")

	var stages []string
	res, err := svc.Process(path, func(stage string) { stages = append(stages, stage) })
	require.NoError(t, err)

	assert.Equal(t, 2, res.Rows)
	assert.Equal(t, 2, res.Nodes)
	assert.Equal(t, 1, res.Edges)
	assert.False(t, res.Opened)
	assert.Equal(t, flow.OutputPathFor(path), res.OutputPath)
	assert.FileExists(t, res.OutputPath)
	// Reading -> building -> rendering transitions, in order.
	require.Len(t, stages, 3)
	assert.Contains(t, stages[0], "Reading")
	assert.Contains(t, stages[1], "Building graph")
	assert.Contains(t, stages[2], "Rendering")
}

func TestServiceProcess_EmptyGraph(t *testing.T) {
	svc := newTestService(t, flow.Config{})
	path := writeCSV(t, "From,To\n")

	_, err := svc.Process(path, nil)
	require.ErrorIs(t, err, flow.ErrEmptyGraph)
	assert.NoFileExists(t, flow.OutputPathFor(path))
}

func TestServiceProcess_PropagatesNormalizerErrors(t *testing.T) {
	svc := newTestService(t, flow.Config{})

	_, err := svc.Process(writeCSV(t, "alpha,beta\n1,2\n"), nil)
	require.ErrorIs(t, err, flow.ErrMissingColumns)

	badExt := filepath.Join(t.TempDir(), "transfers.pdf")
	require.NoError(t, os.WriteFile(badExt, []byte("From,To\nA,B\n"), 0o644))
	_, err = svc.Process(badExt, nil)
	require.ErrorIs(t, err, flow.ErrUnsupportedFormat)
}

func TestServiceProcess_OutputDir(t *testing.T) {
	outDir := t.TempDir()
	svc := newTestService(t, flow.Config{OutputDir: outDir})
	path := writeCSV(t, "From,To\nA,B\n")

	res, err := svc.Process(path, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "transfers_graph.html"), res.OutputPath)
	assert.FileExists(t, res.OutputPath)
}
