package scan

import (
	"lens/internal/extract"
	"lens/internal/lang"
)

// Totals are repository-level sums over all scanned files. Each counter is
// the exact sum of its per-file counterparts.
type Totals struct {
	Files     int `json:"files"`
	Elements  int `json:"elements"`
	Functions int `json:"functions"`
	Methods   int `json:"methods"`
	Classes   int `json:"classes"`

	Lines extract.LineCounts `json:"lines"`
}

func sumTotals(extracts []*extract.FileExtract) Totals {
	t := Totals{Files: len(extracts)}
	for _, fe := range extracts {
		t.Elements += len(fe.Elements)
		for _, el := range fe.Elements {
			switch el.Kind {
			case lang.KindFunction:
				t.Functions++
			case lang.KindMethod:
				t.Methods++
			case lang.KindClass:
				t.Classes++
			}
		}
		t.Lines.Total += fe.Lines.Total
		t.Lines.Code += fe.Lines.Code
		t.Lines.Comment += fe.Lines.Comment
		t.Lines.Blank += fe.Lines.Blank
	}
	return t
}
