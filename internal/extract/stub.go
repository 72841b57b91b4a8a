//go:build !cgo

package extract

import (
	"context"

	"lens/internal/errors"
	"lens/internal/lang"
)

// Extractor walks parse trees and emits normalized structural elements.
// Stub for non-CGO builds: every file is reported as unsupported.
type Extractor struct{}

// NewExtractor creates an extractor over the given backend registry.
func NewExtractor(registry *lang.Registry) *Extractor {
	return &Extractor{}
}

// Extract reports structural analysis as unavailable. Line counting still
// works; it does not need a parser.
func (x *Extractor) Extract(ctx context.Context, path string, source []byte, tag lang.Language) *FileExtract {
	return &FileExtract{
		Path:     path,
		Language: tag,
		Elements: []Element{},
		Diagnostics: []Diagnostic{{
			File:     path,
			Code:     errors.UnsupportedLanguage,
			Severity: SeverityInfo,
			Message:  lang.ErrNoCGO.Error(),
		}},
		Lines: countLines(source, nil),
	}
}
