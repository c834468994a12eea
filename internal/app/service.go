package app

import (
	"fmt"
	"path/filepath"

	"github.com/pkg/browser"
	"github.com/rs/zerolog"

	"transferviz/flow"
)

// Service runs the normalize -> aggregate -> render pipeline for the shell.
// Each run is independent: the relation and graph it allocates are used once
// and discarded.
type Service struct {
	cfg flow.Config
	log zerolog.Logger
}

// NewService applies configuration defaults and column overrides.
func NewService(cfg flow.Config, log zerolog.Logger) *Service {
	cfg.ApplyDefaults()
	if cfg.Columns != nil {
		flow.SetColumnCandidates(*cfg.Columns)
	}
	return &Service{cfg: cfg, log: log}
}

// Config returns the active configuration.
func (s *Service) Config() flow.Config {
	return s.cfg
}

// Result summarizes one pipeline run.
type Result struct {
	Rows       int
	Nodes      int
	Edges      int
	OutputPath string
	Opened     bool
}

// Process runs the full pipeline for one file. The progress callback receives
// the status transitions shown in the UI. On any failure the error is
// returned untouched and no artifact is written, leaving prior state intact.
func (s *Service) Process(path string, progress func(stage string)) (Result, error) {
	report := func(stage string) {
		if progress != nil {
			progress(stage)
		}
	}
	var res Result

	report(fmt.Sprintf("Reading: %s", path))
	rel, err := flow.ReadTable(path)
	if err != nil {
		return res, err
	}
	res.Rows = len(rel)
	s.log.Info().Str("file", filepath.Base(path)).Int("rows", res.Rows).Msg("table normalized")

	report(fmt.Sprintf("Rows loaded: %d. Building graph...", res.Rows))
	g := flow.Aggregate(rel)
	if g.Empty() {
		return res, fmt.Errorf("%w: no edges to display, ensure there are valid 'From' and 'To' rows", flow.ErrEmptyGraph)
	}
	res.Nodes = len(g.Nodes)
	res.Edges = len(g.Edges)
	s.log.Info().Int("nodes", res.Nodes).Int("edges", res.Edges).Msg("graph aggregated")

	out := s.outputPath(path)
	report(fmt.Sprintf("Rendering: %s", filepath.Base(out)))
	if err := flow.Render(g, s.cfg.Render, out); err != nil {
		return res, err
	}
	res.OutputPath = out
	s.log.Info().Str("output", out).Msg("graph rendered")

	if s.cfg.Render.OpenBrowser {
		if err := browser.OpenFile(out); err != nil {
			// Launch failure is not fatal; the page is on disk either way.
			s.log.Warn().Err(err).Msg("open browser")
		} else {
			res.Opened = true
		}
	}
	return res, nil
}

// outputPath places the rendered page next to the input file, or inside the
// configured output directory when one is set.
func (s *Service) outputPath(inputPath string) string {
	out := flow.OutputPathFor(inputPath)
	if s.cfg.OutputDir != "" {
		out = filepath.Join(s.cfg.OutputDir, filepath.Base(out))
	}
	return out
}
