//go:build !cgo

package lang

import "errors"

// ErrNoCGO is returned when parsing is unavailable because the tree-sitter
// grammars require CGO.
var ErrNoCGO = errors.New("structural analysis requires CGO (tree-sitter)")

// Registry holds the resolved backends. Stub for non-CGO builds.
type Registry struct{}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry { return &Registry{} }

// DefaultRegistry returns a registry with no backends.
func DefaultRegistry() *Registry { return &Registry{} }

// Languages returns the registered language tags. Always empty without CGO.
func (r *Registry) Languages() []Language { return nil }

// Available reports whether parsing backends are compiled in.
func Available() bool { return false }
