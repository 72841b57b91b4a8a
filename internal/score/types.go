// Package score reduces a file's structural elements into aggregate metrics,
// a 0-100 quality score and a hotspot severity score.
package score

import "lens/internal/extract"

// Penalty is one penalty term: a multiplier-or-divisor factor and a hard cap.
type Penalty struct {
	Factor float64 `json:"factor" mapstructure:"factor"`
	Cap    float64 `json:"cap" mapstructure:"cap"`
}

// Config holds the scoring thresholds and penalty weights. Passed explicitly
// into the scorer, never global.
type Config struct {
	// ComplexityTarget is the average complexity above which the complexity
	// penalty starts.
	ComplexityTarget float64 `json:"complexityTarget" mapstructure:"complexityTarget"`

	// LengthTarget is the average element length (lines) above which the
	// length penalty starts.
	LengthTarget float64 `json:"lengthTarget" mapstructure:"lengthTarget"`

	// LongElementLines marks an element as long when its line count exceeds
	// this threshold.
	LongElementLines int `json:"longElementLines" mapstructure:"longElementLines"`

	// DeepNestingDepth marks an element as deeply nested when its nesting
	// depth exceeds this threshold.
	DeepNestingDepth int `json:"deepNestingDepth" mapstructure:"deepNestingDepth"`

	// ComplexityPenalty scales (avg_complexity - target) by Factor.
	ComplexityPenalty Penalty `json:"complexityPenalty" mapstructure:"complexityPenalty"`

	// LengthPenalty divides (avg_length - target) by Factor.
	LengthPenalty Penalty `json:"lengthPenalty" mapstructure:"lengthPenalty"`

	// LongRatioPenalty scales the long-element ratio by Factor.
	LongRatioPenalty Penalty `json:"longRatioPenalty" mapstructure:"longRatioPenalty"`

	// NestRatioPenalty scales the deep-element ratio by Factor.
	NestRatioPenalty Penalty `json:"nestRatioPenalty" mapstructure:"nestRatioPenalty"`
}

// DefaultConfig returns the default scoring configuration.
func DefaultConfig() Config {
	return Config{
		ComplexityTarget:  10,
		LengthTarget:      50,
		LongElementLines:  100,
		DeepNestingDepth:  4,
		ComplexityPenalty: Penalty{Factor: 5, Cap: 50},
		LengthPenalty:     Penalty{Factor: 2, Cap: 25},
		LongRatioPenalty:  Penalty{Factor: 50, Cap: 50},
		NestRatioPenalty:  Penalty{Factor: 50, Cap: 50},
	}
}

// ElementCounts breaks a file's contents down by category.
type ElementCounts struct {
	Functions int `json:"functions"`
	Classes   int `json:"classes"`
	Imports   int `json:"imports"`
}

// ComplexityStats aggregates element complexity for one file.
type ComplexityStats struct {
	Avg float64 `json:"avg"`
	Max int     `json:"max"`
	Min int     `json:"min"`
}

// Quality holds the 0-100 quality score and the offending element names.
type Quality struct {
	Score         float64  `json:"score"`
	LongFunctions []string `json:"longFunctions"`
	DeepNesting   []string `json:"deepNesting"`
}

// FileSummary aggregates one file's elements. Derived: recomputed fully on
// each scan, never incrementally mutated.
type FileSummary struct {
	Path       string             `json:"path"`
	Lines      extract.LineCounts `json:"lines"`
	Elements   ElementCounts      `json:"elements"`
	Complexity ComplexityStats    `json:"complexity"`
	Quality    Quality            `json:"quality"`
}

// Hotspot is a file summary ranked by hotspot score. Recomputed per scan,
// never persisted.
type Hotspot struct {
	Summary      *FileSummary `json:"summary"`
	HotspotScore float64      `json:"hotspotScore"`
}
