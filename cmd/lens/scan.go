package main

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"lens/internal/config"
	"lens/internal/extract"
	"lens/internal/imports"
	"lens/internal/lang"
	"lens/internal/scan"
)

var (
	scanFormat    string
	scanWorkers   int
	scanLimit     int
	scanEdgesPath string
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Analyze a source tree and report summaries, hotspots and import health",
	Long: `Walk the repository, extract structural elements from every supported
source file, score file quality and rank hotspots.

Resolved import edges can be supplied as a JSON file produced by a module
resolver; with edges present the scan also reports cycles, unused imports
and layer violations.

Examples:
  lens scan
  lens scan --repo=../service --format=human
  lens scan --edges=.lens/edges.json --limit=25`,
	Run: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanFormat, "format", "json", "Output format (json, human)")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0, "Extraction workers (0 = config default)")
	scanCmd.Flags().IntVar(&scanLimit, "limit", 0, "Maximum hotspots to report (0 = config default)")
	scanCmd.Flags().StringVar(&scanEdgesPath, "edges", "", "JSON file with resolved import edges")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) {
	start := time.Now()
	cfg := mustLoadConfig()
	logger := newLogger(cfg.Logging)

	res, err := runScanWithConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning: %v\n", err)
		os.Exit(1)
	}

	switch scanFormat {
	case "human":
		printScanHuman(res)
	default:
		printJSON(res)
	}

	logger.Debug("Scan finished", map[string]interface{}{
		"scanId":   res.ScanID,
		"duration": time.Since(start).Milliseconds(),
	})
}

func runScanWithConfig(cfg *config.Config) (*scan.Result, error) {
	inputs, err := walkInputs(cfg)
	if err != nil {
		return nil, err
	}

	opts := scan.Options{
		Workers:      cfg.Scan.Workers,
		HotspotLimit: cfg.Scan.HotspotLimit,
		Score:        cfg.Scoring,
	}
	if scanWorkers > 0 {
		opts.Workers = scanWorkers
	}
	if scanLimit > 0 {
		opts.HotspotLimit = scanLimit
	}

	if scanEdgesPath != "" {
		edges, refs, err := loadEdges(scanEdgesPath)
		if err != nil {
			return nil, err
		}
		opts.Edges = edges
		opts.Refs = refs
	}
	if cfg.Layers.RulesPath != "" {
		data, err := os.ReadFile(filepath.Join(cfg.RepoRoot, cfg.Layers.RulesPath))
		if err != nil {
			return nil, err
		}
		rules, err := imports.ParseLayerRules(data)
		if err != nil {
			return nil, err
		}
		opts.Layers = rules
	}

	scanner := scan.NewScanner(extract.NewExtractor(lang.DefaultRegistry()), newLogger(cfg.Logging))
	return scanner.Scan(newContext(), inputs, opts)
}

// walkInputs collects every supported source file under the repo root,
// honoring the configured ignore list and size limit.
func walkInputs(cfg *config.Config) ([]scan.Input, error) {
	ignore := make(map[string]bool, len(cfg.Scan.Ignore))
	for _, d := range cfg.Scan.Ignore {
		ignore[d] = true
	}

	var inputs []scan.Input
	root := cfg.RepoRoot
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && ignore[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		tag, ok := lang.LanguageFromExtension(filepath.Ext(path))
		if !ok {
			return nil
		}
		if info, err := d.Info(); err != nil || info.Size() > int64(cfg.Scan.MaxFileSizeBytes) {
			return nil
		}
		source, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		inputs = append(inputs, scan.Input{
			Path:     filepath.ToSlash(rel),
			Source:   source,
			Language: tag,
		})
		return nil
	})
	return inputs, err
}

// edgesFile is the JSON shape a module resolver hands over.
type edgesFile struct {
	Edges []imports.Edge      `json:"edges"`
	Refs  map[string][]string `json:"refs"`
}

func loadEdges(path string) ([]imports.Edge, map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	var f edgesFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, nil, err
	}
	return f.Edges, f.Refs, nil
}

func printScanHuman(res *scan.Result) {
	fmt.Printf("Scan %s\n", res.ScanID)
	fmt.Printf("  files: %d  elements: %d (%d functions, %d methods, %d classes)\n",
		res.Totals.Files, res.Totals.Elements, res.Totals.Functions, res.Totals.Methods, res.Totals.Classes)
	fmt.Printf("  lines: %d total, %d code, %d comment, %d blank\n",
		res.Totals.Lines.Total, res.Totals.Lines.Code, res.Totals.Lines.Comment, res.Totals.Lines.Blank)

	if len(res.Diagnostics) > 0 {
		fmt.Printf("  diagnostics: %d\n", len(res.Diagnostics))
		for _, d := range res.Diagnostics {
			fmt.Printf("    [%s] %s: %s\n", d.Severity, d.File, d.Message)
		}
	}

	if len(res.Hotspots) > 0 {
		fmt.Println("\nHotspots:")
		for i, h := range res.Hotspots {
			fmt.Printf("  %2d. %-40s score %6.2f  quality %5.1f\n",
				i+1, h.Summary.Path, h.HotspotScore, h.Summary.Quality.Score)
		}
	}

	if len(res.Cycles) > 0 {
		fmt.Println("\nImport cycles:")
		for _, c := range res.Cycles {
			fmt.Printf("  %s\n", strings.Join(c, " -> "))
		}
	}
	for _, u := range res.Unused {
		fmt.Printf("unused import %q in %s:%d\n", u.Module, u.File, u.Line)
	}
	for _, v := range res.Violations {
		fmt.Printf("layer violation %s (%s) -> %s (%s)\n", v.From, v.FromLayer, v.To, v.ToLayer)
	}
}
