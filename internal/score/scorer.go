package score

import (
	"sort"

	"lens/internal/extract"
	"lens/internal/lang"
)

// Score reduces one file's elements into a FileSummary. importCount is the
// number of import bindings in the file, supplied by the import resolver.
func Score(fe *extract.FileExtract, importCount int, cfg Config) *FileSummary {
	summary := &FileSummary{
		Path:  fe.Path,
		Lines: fe.Lines,
		Elements: ElementCounts{
			Imports: importCount,
		},
		Quality: Quality{
			LongFunctions: []string{},
			DeepNesting:   []string{},
		},
	}

	total := len(fe.Elements)
	if total == 0 {
		summary.Quality.Score = 100
		return summary
	}

	var (
		sumComplexity int
		sumLength     int
		longCount     int
		deepCount     int
	)
	summary.Complexity.Min = fe.Elements[0].Complexity

	for _, el := range fe.Elements {
		switch el.Kind {
		case lang.KindClass:
			summary.Elements.Classes++
		default:
			summary.Elements.Functions++
		}

		sumComplexity += el.Complexity
		sumLength += el.LineCount

		if el.Complexity > summary.Complexity.Max {
			summary.Complexity.Max = el.Complexity
		}
		if el.Complexity < summary.Complexity.Min {
			summary.Complexity.Min = el.Complexity
		}

		if el.LineCount > cfg.LongElementLines {
			longCount++
			summary.Quality.LongFunctions = append(summary.Quality.LongFunctions, el.Name)
		}
		if el.NestingDepth > cfg.DeepNestingDepth {
			deepCount++
			summary.Quality.DeepNesting = append(summary.Quality.DeepNesting, el.Name)
		}
	}

	avgComplexity := float64(sumComplexity) / float64(total)
	avgLength := float64(sumLength) / float64(total)
	summary.Complexity.Avg = avgComplexity

	pComplexity := capped(max0(avgComplexity-cfg.ComplexityTarget)*cfg.ComplexityPenalty.Factor, cfg.ComplexityPenalty.Cap)
	pLength := capped(max0(avgLength-cfg.LengthTarget)/cfg.LengthPenalty.Factor, cfg.LengthPenalty.Cap)
	pLongRatio := capped(float64(longCount)/float64(total)*cfg.LongRatioPenalty.Factor, cfg.LongRatioPenalty.Cap)
	pNestRatio := capped(float64(deepCount)/float64(total)*cfg.NestRatioPenalty.Factor, cfg.NestRatioPenalty.Cap)

	summary.Quality.Score = clamp(100-pComplexity-pLength-pLongRatio-pNestRatio, 0, 100)
	return summary
}

// HotspotScore computes the unbounded ranking score for a summary. Used only
// for ordering; higher means more attention needed.
func HotspotScore(s *FileSummary, cfg Config) float64 {
	return max0((70-s.Quality.Score)/10) +
		max0(s.Complexity.Avg-cfg.ComplexityTarget) +
		5*float64(len(s.Quality.LongFunctions)) +
		3*float64(len(s.Quality.DeepNesting))
}

// RankHotspots sorts summaries descending by hotspot score and truncates to
// the top limit entries.
func RankHotspots(summaries []*FileSummary, cfg Config, limit int) []Hotspot {
	hotspots := make([]Hotspot, 0, len(summaries))
	for _, s := range summaries {
		hotspots = append(hotspots, Hotspot{
			Summary:      s,
			HotspotScore: HotspotScore(s, cfg),
		})
	}

	sort.SliceStable(hotspots, func(i, j int) bool {
		return hotspots[i].HotspotScore > hotspots[j].HotspotScore
	})

	if limit > 0 && len(hotspots) > limit {
		hotspots = hotspots[:limit]
	}
	return hotspots
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func capped(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
