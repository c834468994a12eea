package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/browser"
	"github.com/rs/zerolog"

	"transferviz/flow"
)

type cliOptions struct {
	configPath string
	inputPath  string
	outputPath string
	outputDir  string
	noOpen     bool
	jsonOut    bool
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	opts, err := parseFlags()
	if err != nil {
		log.Fatal().Err(err).Msg("transferviz-cli")
	}
	if err := run(opts, log); err != nil {
		log.Fatal().Err(err).Msg("transferviz-cli")
	}
}

func parseFlags() (cliOptions, error) {
	var opts cliOptions
	flag.StringVar(&opts.configPath, "config", "", "Path to config.json (default: ./config.json)")
	flag.StringVar(&opts.inputPath, "input", "", "Spreadsheet or CSV file containing transfers")
	flag.StringVar(&opts.outputPath, "output", "", "HTML file to write (default: <input stem>_graph.html)")
	flag.StringVar(&opts.outputDir, "output-dir", "", "Directory where the HTML is written when --output is omitted")
	flag.BoolVar(&opts.noOpen, "no-open", false, "Do not open the rendered page in a browser")
	flag.BoolVar(&opts.jsonOut, "json", false, "Print the aggregated graph as JSON to STDOUT instead of rendering")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s --input FILE [options]\n\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	opts.configPath = strings.TrimSpace(opts.configPath)
	opts.inputPath = strings.TrimSpace(opts.inputPath)
	opts.outputPath = strings.TrimSpace(opts.outputPath)
	opts.outputDir = strings.TrimSpace(opts.outputDir)

	if opts.inputPath == "" {
		flag.Usage()
		return opts, errors.New("missing required --input file")
	}
	return opts, nil
}

func run(opts cliOptions, log zerolog.Logger) error {
	cfg, err := flow.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Columns != nil {
		flow.SetColumnCandidates(*cfg.Columns)
	}

	rel, err := flow.ReadTable(opts.inputPath)
	if err != nil {
		return fmt.Errorf("read table: %w", err)
	}
	log.Info().Str("file", filepath.Base(opts.inputPath)).Int("rows", len(rel)).Msg("table normalized")

	g := flow.Aggregate(rel)
	if g.Empty() {
		return fmt.Errorf("%w: no edges to display, ensure there are valid 'From' and 'To' rows", flow.ErrEmptyGraph)
	}
	log.Info().Int("nodes", len(g.Nodes)).Int("edges", len(g.Edges)).Msg("graph aggregated")

	if opts.jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(g)
	}

	outputPath, err := resolveOutputPath(opts, cfg)
	if err != nil {
		return err
	}
	if err := flow.Render(g, cfg.Render, outputPath); err != nil {
		return fmt.Errorf("render graph: %w", err)
	}
	log.Info().Str("output", outputPath).Msg("graph rendered")

	if cfg.Render.OpenBrowser && !opts.noOpen {
		if err := browser.OpenFile(outputPath); err != nil {
			log.Warn().Err(err).Msg("open browser")
		}
	}
	return nil
}

func resolveOutputPath(opts cliOptions, cfg flow.Config) (string, error) {
	if opts.outputPath != "" {
		return opts.outputPath, nil
	}
	out := flow.OutputPathFor(opts.inputPath)
	dir := opts.outputDir
	if dir == "" {
		dir = cfg.OutputDir
	}
	if dir == "" {
		return out, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	return filepath.Join(dir, filepath.Base(out)), nil
}
