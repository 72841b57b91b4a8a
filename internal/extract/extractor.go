//go:build cgo

package extract

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"lens/internal/errors"
	"lens/internal/lang"
)

// Extractor walks parse trees and emits normalized structural elements.
type Extractor struct {
	registry *lang.Registry
}

// NewExtractor creates an extractor over the given backend registry.
func NewExtractor(registry *lang.Registry) *Extractor {
	return &Extractor{registry: registry}
}

// Extract parses source text and returns the file's structural elements and
// diagnostics. A missing backend or a syntax error is reported as a
// diagnostic with an empty element list, never as an error.
func (x *Extractor) Extract(ctx context.Context, path string, source []byte, tag lang.Language) *FileExtract {
	fe := &FileExtract{
		Path:     path,
		Language: tag,
		Elements: []Element{},
	}

	backend, ok := x.registry.Lookup(tag)
	if !ok {
		fe.Diagnostics = append(fe.Diagnostics, Diagnostic{
			File:     path,
			Code:     errors.UnsupportedLanguage,
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("no backend registered for language %q", tag),
		})
		fe.Lines = countLines(source, nil)
		return fe
	}

	root, err := backend.Parse(ctx, source)
	if err != nil {
		fe.Diagnostics = append(fe.Diagnostics, Diagnostic{
			File:     path,
			Code:     errors.ParseError,
			Severity: SeverityError,
			Message:  err.Error(),
		})
		fe.Lines = countLines(source, nil)
		return fe
	}

	kinds := backend.Kinds()
	fe.Lines = countLines(source, commentSpans(root, kinds.Comments))

	if root.HasError() {
		fe.Diagnostics = append(fe.Diagnostics, Diagnostic{
			File:     path,
			Code:     errors.ParseError,
			Severity: SeverityError,
			Message:  "syntax error",
		})
		return fe
	}

	w := &walker{
		backend: backend,
		kinds:   kinds,
		source:  source,
		path:    path,
		seen:    make(map[string]bool),
	}
	w.walk(root, "")
	fe.Elements = w.elements
	return fe
}

// walker carries the per-file extraction state.
type walker struct {
	backend  lang.Backend
	kinds    lang.NodeKinds
	source   []byte
	path     string
	elements []Element
	seen     map[string]bool // kind+name uniqueness within the file
}

// walk visits definition nodes. enclosing is the qualified name of the
// nearest enclosing class, used to qualify methods as "Class.method".
func (w *walker) walk(node *sitter.Node, enclosing string) {
	if node == nil {
		return
	}

	nodeType := node.Type()
	isClass := w.kinds.Classes.Has(nodeType)
	isFunc := w.kinds.Functions.Has(nodeType)

	if isClass || isFunc {
		el := w.emit(node, enclosing, isClass)
		if isClass {
			enclosing = el.Name
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		w.walk(node.Child(i), enclosing)
	}
}

// emit builds one element from a definition node.
func (w *walker) emit(node *sitter.Node, enclosing string, isClass bool) Element {
	startLine := int(node.StartPoint().Row) + 1
	endLine := int(node.EndPoint().Row) + 1

	name := w.backend.ElementName(node, w.source)
	kind := lang.KindFunction
	switch {
	case isClass:
		kind = lang.KindClass
	case w.backend.Qualifier(node, w.source) != "":
		kind = lang.KindMethod
		name = w.backend.Qualifier(node, w.source) + "." + name
	case enclosing != "":
		kind = lang.KindMethod
		name = enclosing + "." + name
	}

	if strings.HasSuffix(name, ".") || name == "" {
		name = strings.TrimSuffix(name, ".") + fmt.Sprintf("<anonymous:%d>", startLine)
	}

	// Qualified names are unique within file+kind; disambiguate overloads
	// by start line.
	key := string(kind) + ":" + name
	if w.seen[key] {
		name = fmt.Sprintf("%s@%d", name, startLine)
		key = string(kind) + ":" + name
	}
	w.seen[key] = true

	el := Element{
		Name:         name,
		Kind:         kind,
		File:         w.path,
		StartLine:    startLine,
		LineCount:    endLine - startLine + 1,
		Complexity:   w.complexity(node),
		NestingDepth: w.nestingDepth(node),
		Decorators:   w.decorators(node),
	}
	w.elements = append(w.elements, el)
	return el
}

// complexity is 1 plus the count of decision points within the element's own
// subtree. Nested definitions are element boundaries: their branches count
// toward the nested element, not this one.
func (w *walker) complexity(root *sitter.Node) int {
	complexity := 1

	var visit func(node *sitter.Node)
	visit = func(node *sitter.Node) {
		if node == nil {
			return
		}
		if node != root && w.isElementBoundary(node.Type()) {
			return
		}

		nodeType := node.Type()
		if w.kinds.Decisions.Has(nodeType) {
			if nodeType == "binary_expression" || nodeType == "boolean_operator" {
				if w.backend.IsBooleanOperator(node, w.source) {
					complexity++
				}
			} else {
				complexity++
			}
		}

		for i := 0; i < int(node.ChildCount()); i++ {
			visit(node.Child(i))
		}
	}
	visit(root)

	return complexity
}

// nestingDepth is the maximum depth of nested control-flow blocks within the
// element, nested definitions excluded.
func (w *walker) nestingDepth(root *sitter.Node) int {
	maxDepth := 0

	var visit func(node *sitter.Node, depth int)
	visit = func(node *sitter.Node, depth int) {
		if node == nil {
			return
		}
		if node != root && w.isElementBoundary(node.Type()) {
			return
		}

		if w.kinds.Nesting.Has(node.Type()) {
			depth++
			if depth > maxDepth {
				maxDepth = depth
			}
		}

		for i := 0; i < int(node.ChildCount()); i++ {
			visit(node.Child(i), depth)
		}
	}
	visit(root, 0)

	return maxDepth
}

// decorators collects decorator/annotation names attached to a definition:
// nodes inside the definition subtree (Java modifiers) and preceding siblings
// (Python decorated_definition, TS class decorators).
func (w *walker) decorators(root *sitter.Node) []string {
	if len(w.kinds.Decorators) == 0 {
		return nil
	}

	var names []string
	seen := make(map[string]bool)
	add := func(node *sitter.Node) {
		name := decoratorName(w.source, node)
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	if parent := root.Parent(); parent != nil {
		for i := 0; i < int(parent.ChildCount()); i++ {
			child := parent.Child(i)
			if child == nil {
				continue
			}
			if child.StartByte() >= root.StartByte() {
				break
			}
			if w.kinds.Decorators.Has(child.Type()) {
				add(child)
			}
		}
	}

	var visit func(node *sitter.Node)
	visit = func(node *sitter.Node) {
		if node == nil {
			return
		}
		if node != root && w.isElementBoundary(node.Type()) {
			return
		}
		if w.kinds.Decorators.Has(node.Type()) {
			add(node)
		}
		for i := 0; i < int(node.ChildCount()); i++ {
			visit(node.Child(i))
		}
	}
	visit(root)

	return names
}

func (w *walker) isElementBoundary(nodeType string) bool {
	return w.kinds.Functions.Has(nodeType) || w.kinds.Classes.Has(nodeType)
}

// decoratorName normalizes a decorator node to its bare name: leading @
// stripped, call arguments dropped.
func decoratorName(source []byte, node *sitter.Node) string {
	text := string(source[node.StartByte():node.EndByte()])
	text = strings.TrimSpace(strings.TrimPrefix(text, "@"))
	if i := strings.IndexByte(text, '('); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}

// commentSpans collects the byte ranges of all comment nodes in a tree.
func commentSpans(root *sitter.Node, comments lang.KindSet) []byteSpan {
	var spans []byteSpan

	var visit func(node *sitter.Node)
	visit = func(node *sitter.Node) {
		if node == nil {
			return
		}
		if comments.Has(node.Type()) {
			spans = append(spans, byteSpan{start: node.StartByte(), end: node.EndByte()})
			return
		}
		for i := 0; i < int(node.ChildCount()); i++ {
			visit(node.Child(i))
		}
	}
	visit(root)

	return spans
}
