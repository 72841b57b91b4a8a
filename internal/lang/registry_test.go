//go:build cgo

package lang

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
)

func collectNodes(root *sitter.Node) []*sitter.Node {
	var result []*sitter.Node
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		result = append(result, n)
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	return result
}

func TestDefaultRegistryLanguages(t *testing.T) {
	r := DefaultRegistry()

	for _, tag := range []Language{
		LangGo, LangJavaScript, LangTypeScript, LangTSX,
		LangPython, LangRust, LangJava, LangKotlin,
	} {
		if _, ok := r.Lookup(tag); !ok {
			t.Errorf("expected backend for %s", tag)
		}
	}

	if _, ok := r.Lookup("cobol"); ok {
		t.Error("did not expect a backend for cobol")
	}
}

func TestLanguageFromExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want Language
		ok   bool
	}{
		{".go", LangGo, true},
		{".py", LangPython, true},
		{".tsx", LangTSX, true},
		{".jsx", LangJavaScript, true},
		{".kt", LangKotlin, true},
		{".rb", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := LanguageFromExtension(tt.ext)
		if got != tt.want || ok != tt.ok {
			t.Errorf("LanguageFromExtension(%q) = (%s, %v), want (%s, %v)", tt.ext, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSupports(t *testing.T) {
	r := DefaultRegistry()
	b, ok := r.Lookup(LangPython)
	if !ok {
		t.Fatal("python backend missing")
	}
	if !b.Supports(KindFunction) || !b.Supports(KindClass) {
		t.Error("python backend should support functions and classes")
	}
}

func TestParseGo(t *testing.T) {
	r := DefaultRegistry()
	b, _ := r.Lookup(LangGo)

	root, err := b.Parse(context.Background(), []byte("package main\n\nfunc main() {}\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.HasError() {
		t.Error("valid source should parse without error nodes")
	}

	root, err = b.Parse(context.Background(), []byte("package main\n\nfunc main( {}\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !root.HasError() {
		t.Error("broken source should produce error nodes")
	}
}

func TestIsBooleanOperator(t *testing.T) {
	r := DefaultRegistry()
	b, _ := r.Lookup(LangGo)

	source := []byte("package main\n\nfunc f(a, b bool) bool { return a && b }\n")
	root, err := b.Parse(context.Background(), source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, n := range collectNodes(root) {
		if n.Type() == "binary_expression" && b.IsBooleanOperator(n, source) {
			found = true
		}
	}
	if !found {
		t.Error("expected && to be detected as boolean operator")
	}
}

func TestGoMethodQualifier(t *testing.T) {
	r := DefaultRegistry()
	b, _ := r.Lookup(LangGo)

	source := []byte("package main\n\ntype Server struct{}\n\nfunc (s *Server) Run() {}\n")
	root, err := b.Parse(context.Background(), source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, n := range collectNodes(root) {
		if n.Type() == "method_declaration" {
			if got := b.Qualifier(n, source); got != "Server" {
				t.Errorf("expected qualifier Server, got %q", got)
			}
			if got := b.ElementName(n, source); got != "Run" {
				t.Errorf("expected name Run, got %q", got)
			}
			return
		}
	}
	t.Fatal("method_declaration not found")
}
