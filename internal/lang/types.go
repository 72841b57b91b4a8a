// Package lang provides the language backend registry: tree-sitter grammars
// behind a uniform capability interface, keyed by language tag.
package lang

// Language identifies a supported language tag.
type Language string

const (
	LangGo         Language = "go"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
	LangPython     Language = "python"
	LangRust       Language = "rust"
	LangJava       Language = "java"
	LangKotlin     Language = "kotlin"
)

// ElementKind classifies a structural element.
type ElementKind string

const (
	KindFunction ElementKind = "function"
	KindMethod   ElementKind = "method"
	KindClass    ElementKind = "class"
)

// KindSet is a set of tree-sitter node kind names.
type KindSet map[string]bool

// NewKindSet builds a KindSet from the given node kinds.
func NewKindSet(kinds ...string) KindSet {
	s := make(KindSet, len(kinds))
	for _, k := range kinds {
		s[k] = true
	}
	return s
}

// Has reports whether the set contains the node kind.
func (s KindSet) Has(kind string) bool {
	return s[kind]
}

// NodeKinds declares which grammar node kinds a backend maps onto the
// structural model.
type NodeKinds struct {
	// Functions are definition nodes emitted as function or method elements.
	Functions KindSet
	// Classes are definition nodes emitted as class elements.
	Classes KindSet
	// Decisions contribute to cyclomatic complexity.
	Decisions KindSet
	// Nesting are control-flow blocks that increase nesting depth.
	Nesting KindSet
	// Decorators are decorator/annotation nodes attached to definitions.
	Decorators KindSet
	// Comments are comment nodes, used for comment-line counting.
	Comments KindSet
}

// LanguageFromExtension returns the language tag for a file extension.
func LanguageFromExtension(ext string) (Language, bool) {
	switch ext {
	case ".go":
		return LangGo, true
	case ".js", ".mjs", ".cjs", ".jsx":
		return LangJavaScript, true
	case ".ts", ".mts", ".cts":
		return LangTypeScript, true
	case ".tsx":
		return LangTSX, true
	case ".py", ".pyw":
		return LangPython, true
	case ".rs":
		return LangRust, true
	case ".java":
		return LangJava, true
	case ".kt", ".kts":
		return LangKotlin, true
	default:
		return "", false
	}
}

// SupportedExtensions returns all file extensions with a registered backend.
func SupportedExtensions() []string {
	return []string{
		".go",
		".js", ".mjs", ".cjs", ".jsx",
		".ts", ".mts", ".cts", ".tsx",
		".py", ".pyw",
		".rs",
		".java",
		".kt", ".kts",
	}
}
