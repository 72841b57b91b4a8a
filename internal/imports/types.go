// Package imports builds a directed file-level import graph and reports
// unused imports, elementary cycles, and layer violations.
package imports

// Edge is one resolved import statement. Target is empty when the module
// resolver could not map the import to a file in the repository (external or
// third-party module); such edges never participate in cycle detection but
// still count for unused-import analysis.
type Edge struct {
	// From is the repo-relative path of the importing file.
	From string `json:"from"`
	// Module is the import identifier as written in source.
	Module string `json:"module"`
	// Target is the repo-relative path of the imported file, or "" when
	// unresolved.
	Target string `json:"target,omitempty"`
	// BoundNames are the local names the import introduces.
	BoundNames []string `json:"boundNames,omitempty"`
	// Wildcard marks star imports. Always treated as used.
	Wildcard bool `json:"wildcard,omitempty"`
	// ReExport marks export-from constructs. Always treated as used.
	ReExport bool `json:"reExport,omitempty"`
	// TypingOnly marks conditional typing-guard imports. Excluded from both
	// unused and cycle analysis.
	TypingOnly bool `json:"typingOnly,omitempty"`
	// Line is the 1-based source line of the import statement.
	Line int `json:"line"`
}

// UnusedImport flags an import whose bound names are never referenced.
type UnusedImport struct {
	File   string   `json:"file"`
	Module string   `json:"module"`
	Names  []string `json:"names,omitempty"`
	Line   int      `json:"line"`
}

// Cycle is an elementary import cycle as an ordered file sequence, rotated
// so the lexicographically smallest file comes first.
type Cycle []string

// LayerViolation is an import edge crossing layers against the configured
// allow-list.
type LayerViolation struct {
	From      string `json:"from"`
	To        string `json:"to"`
	FromLayer string `json:"fromLayer"`
	ToLayer   string `json:"toLayer"`
	Line      int    `json:"line"`
}
