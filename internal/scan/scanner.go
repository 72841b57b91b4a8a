// Package scan fans structural extraction out across a bounded worker pool
// and aggregates the per-file results into repository-level summaries.
package scan

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"lens/internal/blame"
	"lens/internal/extract"
	"lens/internal/imports"
	"lens/internal/lang"
	"lens/internal/logging"
	"lens/internal/score"
)

// Input is one file to analyze, as handed over by the directory walker.
type Input struct {
	Path     string
	Source   []byte
	Language lang.Language
}

// Options configure a scan. Edges and Refs come from the caller's module
// resolver; when absent, the import analyses are skipped and import counts
// are zero.
type Options struct {
	// Workers bounds the extraction pool. Zero means DefaultWorkers.
	Workers int
	// HotspotLimit caps the ranked hotspot list. Zero means DefaultHotspotLimit.
	HotspotLimit int
	Score        score.Config
	Layers       *imports.LayerRules
	Edges        []imports.Edge
	// Refs maps file path to the symbols referenced in it, for unused-import
	// analysis.
	Refs map[string][]string
}

const (
	DefaultWorkers      = 4
	DefaultHotspotLimit = 10
)

// Result is everything a scan produced. Per-file failures surface as
// diagnostics inside Files, never as an error.
type Result struct {
	ScanID      string                 `json:"scanId"`
	Files       []*extract.FileExtract `json:"files"`
	Summaries   []*score.FileSummary   `json:"summaries"`
	Hotspots    []score.Hotspot        `json:"hotspots"`
	Totals      Totals                 `json:"totals"`
	Graph       *imports.Graph         `json:"graph,omitempty"`
	Cycles      []imports.Cycle        `json:"cycles,omitempty"`
	Unused      []imports.UnusedImport `json:"unused,omitempty"`
	Violations  []imports.LayerViolation `json:"violations,omitempty"`
	Diagnostics []extract.Diagnostic   `json:"diagnostics,omitempty"`
}

// Scanner runs scans. Safe for concurrent use; each Scan call is
// independent.
type Scanner struct {
	extractor *extract.Extractor
	logger    *logging.Logger
}

func NewScanner(extractor *extract.Extractor, logger *logging.Logger) *Scanner {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Scanner{extractor: extractor, logger: logger}
}

// Scan extracts every input file on a bounded pool, then computes scores,
// hotspots, totals, and the import analyses behind the completion barrier.
// Cancellation is cooperative at file granularity: files not yet started
// when ctx is done are skipped and ctx.Err is returned with nil Result.
func (s *Scanner) Scan(ctx context.Context, files []Input, opts Options) (*Result, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	extracts := make([]*extract.FileExtract, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, in := range files {
		i, in := i, in
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			extracts[i] = s.extractor.Extract(gctx, in.Path, in.Source, in.Language)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Everything below requires all files to be in.
	importCounts := make(map[string]int)
	for _, e := range opts.Edges {
		importCounts[e.From]++
	}

	res := &Result{
		ScanID: uuid.New().String(),
		Files:  extracts,
	}
	res.Summaries = make([]*score.FileSummary, len(extracts))
	for i, fe := range extracts {
		res.Summaries[i] = score.Score(fe, importCounts[fe.Path], opts.Score)
		res.Diagnostics = append(res.Diagnostics, fe.Diagnostics...)
	}

	limit := opts.HotspotLimit
	if limit <= 0 {
		limit = DefaultHotspotLimit
	}
	res.Hotspots = score.RankHotspots(res.Summaries, opts.Score, limit)
	res.Totals = sumTotals(extracts)

	if len(opts.Edges) > 0 {
		res.Graph = imports.BuildGraph(opts.Edges)
		res.Cycles = imports.FindCycles(res.Graph)
		res.Unused = imports.FindUnused(opts.Edges, opts.Refs)
		res.Violations = imports.CheckLayers(opts.Edges, opts.Layers)
	}

	s.logger.Info("scan completed", map[string]interface{}{
		"scanId":      res.ScanID,
		"files":       len(res.Files),
		"elements":    res.Totals.Elements,
		"diagnostics": len(res.Diagnostics),
		"cycles":      len(res.Cycles),
	})
	return res, nil
}

// Blame resolves authorship for one scanned file using the scan's extracted
// elements. lines come from the repository-access collaborator.
func (r *Result) Blame(file string, lines []blame.Line, target string, cfg blame.Config) *blame.Attribution {
	var elements []extract.Element
	for _, fe := range r.Files {
		if fe.Path == file {
			elements = fe.Elements
			break
		}
	}
	return blame.Resolve(file, lines, elements, target, cfg)
}
