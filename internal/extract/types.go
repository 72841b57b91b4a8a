// Package extract turns parsed source text into normalized structural
// elements with computed size, complexity and nesting metrics.
package extract

import (
	"lens/internal/errors"
	"lens/internal/lang"
)

// Element is one function, method or class definition with its metrics.
// Immutable once produced; owned by the file extract that contains it.
type Element struct {
	// Name is the qualified name, unique within file+kind. Methods are
	// qualified as "Class.method".
	Name string `json:"name"`

	// Kind is function, method or class.
	Kind lang.ElementKind `json:"kind"`

	// File is the path the element was extracted from.
	File string `json:"file"`

	// StartLine is the 1-based line the definition starts on.
	StartLine int `json:"startLine"`

	// LineCount is the number of lines the definition spans, including any
	// nested definitions.
	LineCount int `json:"lineCount"`

	// Complexity is the heuristic cyclomatic complexity: 1 plus the decision
	// points in the element's own subtree, nested definitions excluded.
	Complexity int `json:"complexity"`

	// NestingDepth is the maximum depth of nested control-flow blocks.
	NestingDepth int `json:"nestingDepth"`

	// Decorators holds decorator/annotation names in source order.
	Decorators []string `json:"decorators,omitempty"`
}

// Severity classifies a diagnostic.
type Severity string

const (
	SeverityError Severity = "error"
	SeverityInfo  Severity = "info"
)

// Diagnostic is a per-file, non-fatal condition collected during a scan.
type Diagnostic struct {
	File     string           `json:"file"`
	Code     errors.ErrorCode `json:"code"`
	Severity Severity         `json:"severity"`
	Message  string           `json:"message"`
}

// LineCounts breaks a file's lines down by category.
type LineCounts struct {
	Total   int `json:"total"`
	Code    int `json:"code"`
	Comment int `json:"comment"`
	Blank   int `json:"blank"`
}

// FileExtract is the result of extracting one file. A parse or language
// problem surfaces as a diagnostic, never as an error: a single file must
// not abort a multi-file scan.
type FileExtract struct {
	Path        string        `json:"path"`
	Language    lang.Language `json:"language"`
	Elements    []Element     `json:"elements"`
	Diagnostics []Diagnostic  `json:"diagnostics,omitempty"`
	Lines       LineCounts    `json:"lines"`
}
