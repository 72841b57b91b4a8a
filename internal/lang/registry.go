//go:build cgo

package lang

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/kotlin"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Backend is the per-language capability interface. A backend parses source
// text and declares which grammar node kinds map onto the structural model.
type Backend interface {
	// Language returns the backend's language tag.
	Language() Language

	// Parse parses source text and returns the root node of the parse tree.
	Parse(ctx context.Context, source []byte) (*sitter.Node, error)

	// Kinds returns the backend's node kind declarations.
	Kinds() NodeKinds

	// Supports reports whether the backend emits elements of the given kind.
	Supports(kind ElementKind) bool

	// ElementName extracts the definition name from a node, or "" when the
	// node is anonymous.
	ElementName(node *sitter.Node, source []byte) string

	// Qualifier returns a language-level qualifier for a definition node,
	// such as the receiver type of a Go method. Empty for most nodes.
	Qualifier(node *sitter.Node, source []byte) string

	// IsBooleanOperator reports whether a decision candidate node is a
	// short-circuit boolean operator (&&, ||, and, or).
	IsBooleanOperator(node *sitter.Node, source []byte) bool
}

// Registry holds the resolved backends, keyed by language tag. Built once at
// startup and read-only afterwards.
type Registry struct {
	backends map[Language]Backend
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{backends: make(map[Language]Backend)}
}

// Register adds a backend for its language tag.
func (r *Registry) Register(b Backend) {
	r.backends[b.Language()] = b
}

// Lookup returns the backend for a language tag.
func (r *Registry) Lookup(tag Language) (Backend, bool) {
	b, ok := r.backends[tag]
	return b, ok
}

// Languages returns the registered language tags.
func (r *Registry) Languages() []Language {
	tags := make([]Language, 0, len(r.backends))
	for tag := range r.backends {
		tags = append(tags, tag)
	}
	return tags
}

// Available reports whether parsing backends are compiled in.
func Available() bool {
	return true
}

// DefaultRegistry builds a registry with every built-in backend.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, b := range builtinBackends() {
		r.Register(b)
	}
	return r
}

// grammarBackend implements Backend on top of a tree-sitter grammar plus
// per-language node kind tables.
type grammarBackend struct {
	lang     Language
	grammar  *sitter.Language
	kinds    NodeKinds
	booleans KindSet // node kinds that may carry a short-circuit operator
}

func (b *grammarBackend) Language() Language { return b.lang }

func (b *grammarBackend) Kinds() NodeKinds { return b.kinds }

func (b *grammarBackend) Supports(kind ElementKind) bool {
	switch kind {
	case KindFunction, KindMethod:
		return len(b.kinds.Functions) > 0
	case KindClass:
		return len(b.kinds.Classes) > 0
	}
	return false
}

// Parse parses source text with a fresh parser. tree-sitter parsers are not
// safe for concurrent use, and scans fan files out across workers.
func (b *grammarBackend) Parse(ctx context.Context, source []byte) (*sitter.Node, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(b.grammar)

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return tree.RootNode(), nil
}

func (b *grammarBackend) ElementName(node *sitter.Node, source []byte) string {
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		return string(source[nameNode.StartByte():nameNode.EndByte()])
	}

	// Kotlin definitions name via simple_identifier children rather than a
	// name field; Go falls back to a direct identifier child.
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if child.Type() == "identifier" || child.Type() == "simple_identifier" || child.Type() == "type_identifier" {
			return string(source[child.StartByte():child.EndByte()])
		}
	}
	return ""
}

func (b *grammarBackend) Qualifier(node *sitter.Node, source []byte) string {
	if b.lang != LangGo || node.Type() != "method_declaration" {
		return ""
	}
	receiver := node.ChildByFieldName("receiver")
	if receiver == nil {
		return ""
	}
	// receiver is a parameter_list; dig out the type identifier and strip
	// any pointer marker.
	text := string(source[receiver.StartByte():receiver.EndByte()])
	text = strings.Trim(text, "()")
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimPrefix(fields[len(fields)-1], "*")
}

func (b *grammarBackend) IsBooleanOperator(node *sitter.Node, source []byte) bool {
	if !b.booleans.Has(node.Type()) {
		return false
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if b.lang == LangPython {
			if child.Type() == "and" || child.Type() == "or" {
				return true
			}
			continue
		}
		op := string(source[child.StartByte():child.EndByte()])
		if op == "&&" || op == "||" {
			return true
		}
	}
	return false
}

func builtinBackends() []Backend {
	return []Backend{
		&grammarBackend{
			lang:    LangGo,
			grammar: golang.GetLanguage(),
			kinds: NodeKinds{
				Functions: NewKindSet("function_declaration", "method_declaration", "func_literal"),
				Classes:   NewKindSet("type_spec"),
				Decisions: NewKindSet(
					"if_statement",
					"for_statement",
					"range_clause",
					"expression_case",
					"type_case",
					"select_statement",
					"communication_case",
					"binary_expression",
				),
				Nesting: NewKindSet(
					"if_statement",
					"for_statement",
					"select_statement",
					"type_switch_statement",
					"expression_switch_statement",
				),
				Decorators: NewKindSet(),
				Comments:   NewKindSet("comment"),
			},
			booleans: NewKindSet("binary_expression"),
		},
		&grammarBackend{
			lang:     LangJavaScript,
			grammar:  javascript.GetLanguage(),
			kinds:    ecmaKinds(),
			booleans: NewKindSet("binary_expression"),
		},
		&grammarBackend{
			lang:     LangTypeScript,
			grammar:  typescript.GetLanguage(),
			kinds:    ecmaKinds(),
			booleans: NewKindSet("binary_expression"),
		},
		&grammarBackend{
			lang:     LangTSX,
			grammar:  tsx.GetLanguage(),
			kinds:    ecmaKinds(),
			booleans: NewKindSet("binary_expression"),
		},
		&grammarBackend{
			lang:    LangPython,
			grammar: python.GetLanguage(),
			kinds: NodeKinds{
				Functions: NewKindSet("function_definition", "lambda"),
				Classes:   NewKindSet("class_definition"),
				Decisions: NewKindSet(
					"if_statement",
					"elif_clause",
					"for_statement",
					"while_statement",
					"except_clause",
					"case_clause",
					"boolean_operator",
					"conditional_expression",
					"list_comprehension",
					"dictionary_comprehension",
					"set_comprehension",
					"generator_expression",
				),
				Nesting: NewKindSet(
					"if_statement",
					"for_statement",
					"while_statement",
					"try_statement",
					"with_statement",
					"match_statement",
				),
				Decorators: NewKindSet("decorator"),
				Comments:   NewKindSet("comment"),
			},
			booleans: NewKindSet("boolean_operator"),
		},
		&grammarBackend{
			lang:    LangRust,
			grammar: rust.GetLanguage(),
			kinds: NodeKinds{
				Functions: NewKindSet("function_item", "closure_expression"),
				Classes:   NewKindSet("struct_item", "enum_item", "trait_item"),
				Decisions: NewKindSet(
					"if_expression",
					"match_arm",
					"while_expression",
					"loop_expression",
					"for_expression",
					"binary_expression",
				),
				Nesting: NewKindSet(
					"if_expression",
					"match_expression",
					"while_expression",
					"loop_expression",
					"for_expression",
				),
				Decorators: NewKindSet("attribute_item"),
				Comments:   NewKindSet("line_comment", "block_comment"),
			},
			booleans: NewKindSet("binary_expression"),
		},
		&grammarBackend{
			lang:    LangJava,
			grammar: java.GetLanguage(),
			kinds: NodeKinds{
				Functions: NewKindSet("method_declaration", "constructor_declaration", "lambda_expression"),
				Classes:   NewKindSet("class_declaration", "interface_declaration", "enum_declaration", "record_declaration"),
				Decisions: NewKindSet(
					"if_statement",
					"for_statement",
					"enhanced_for_statement",
					"while_statement",
					"do_statement",
					"switch_block_statement_group",
					"switch_rule",
					"catch_clause",
					"ternary_expression",
					"binary_expression",
				),
				Nesting: NewKindSet(
					"if_statement",
					"for_statement",
					"enhanced_for_statement",
					"while_statement",
					"do_statement",
					"switch_expression",
					"try_statement",
				),
				Decorators: NewKindSet("marker_annotation", "annotation"),
				Comments:   NewKindSet("line_comment", "block_comment"),
			},
			booleans: NewKindSet("binary_expression"),
		},
		&grammarBackend{
			lang:    LangKotlin,
			grammar: kotlin.GetLanguage(),
			kinds: NodeKinds{
				Functions: NewKindSet("function_declaration", "lambda_literal", "anonymous_function"),
				Classes:   NewKindSet("class_declaration", "object_declaration"),
				Decisions: NewKindSet(
					"if_expression",
					"when_entry",
					"for_statement",
					"while_statement",
					"do_while_statement",
					"catch_block",
					"binary_expression",
					"elvis_expression",
				),
				Nesting: NewKindSet(
					"if_expression",
					"when_expression",
					"for_statement",
					"while_statement",
					"do_while_statement",
					"try_expression",
				),
				Decorators: NewKindSet("annotation"),
				Comments:   NewKindSet("comment", "line_comment", "multiline_comment"),
			},
			booleans: NewKindSet("binary_expression"),
		},
	}
}

// ecmaKinds returns the shared node kind tables for JavaScript, TypeScript
// and TSX.
func ecmaKinds() NodeKinds {
	return NodeKinds{
		Functions: NewKindSet(
			"function_declaration",
			"function_expression",
			"arrow_function",
			"method_definition",
			"generator_function_declaration",
		),
		Classes: NewKindSet("class_declaration", "class"),
		Decisions: NewKindSet(
			"if_statement",
			"for_statement",
			"for_in_statement",
			"while_statement",
			"do_statement",
			"switch_case",
			"catch_clause",
			"ternary_expression",
			"binary_expression",
		),
		Nesting: NewKindSet(
			"if_statement",
			"for_statement",
			"for_in_statement",
			"while_statement",
			"do_statement",
			"switch_statement",
			"try_statement",
		),
		Decorators: NewKindSet("decorator"),
		Comments:   NewKindSet("comment"),
	}
}
