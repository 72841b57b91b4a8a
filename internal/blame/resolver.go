package blame

import (
	"sort"
	"strings"
	"time"

	"lens/internal/extract"
)

// Line is one line's authorship record for a file at a revision, as handed
// over by the repository-access collaborator. All I/O to obtain these
// happens outside this package.
type Line struct {
	Number    int       `json:"line"`
	CommitID  string    `json:"commitId"`
	Author    string    `json:"author"`
	Email     string    `json:"email"`
	Timestamp time.Time `json:"timestamp"`
}

// AuthorShare is one collapsed identity's contribution to a line range.
type AuthorShare struct {
	Author     string    `json:"author"`
	Email      string    `json:"email"`
	LineCount  int       `json:"lineCount"`
	Percentage float64   `json:"percentage"`
	LastCommit time.Time `json:"lastCommit"`
}

// Attribution is the resolved ownership for a (file, revision, optional
// element) triple. Percentages sum to 100 of the attributed range, up to
// rounding. KeyHunks is populated only for whole-file attributions.
type Attribution struct {
	File     string `json:"file"`
	Element  string `json:"element,omitempty"`
	Fallback bool   `json:"fallback,omitempty"`

	StartLine  int           `json:"startLine"`
	EndLine    int           `json:"endLine"`
	TotalLines int           `json:"totalLines"`
	Authors    []AuthorShare `json:"authors"`
	Primary    *AuthorShare  `json:"primary,omitempty"`
	KeyHunks   []Hunk        `json:"keyHunks,omitempty"`
}

// Resolve attributes lines to authors for the whole file or, when target is
// non-empty, for the element whose span covers it. Dotted targets such as
// "Server.Run" match methods by their qualified name. A missing target is
// not an error: resolution falls back to the whole file and sets Fallback.
func Resolve(file string, lines []Line, elements []extract.Element, target string, cfg Config) *Attribution {
	start, end := 0, 0
	for _, l := range lines {
		if start == 0 || l.Number < start {
			start = l.Number
		}
		if l.Number > end {
			end = l.Number
		}
	}

	attr := &Attribution{File: file, StartLine: start, EndLine: end}

	if target != "" {
		if el := findElement(elements, target); el != nil {
			attr.Element = el.Name
			attr.StartLine = el.StartLine
			attr.EndLine = el.StartLine + el.LineCount - 1
		} else {
			attr.Fallback = true
		}
	}

	ranged := lines
	if attr.Element != "" {
		ranged = ranged[:0:0]
		for _, l := range lines {
			if l.Number >= attr.StartLine && l.Number <= attr.EndLine {
				ranged = append(ranged, l)
			}
		}
	}

	bots := cfg.compileBotPatterns()
	kept := make([]Line, 0, len(ranged))
	for _, l := range ranged {
		if !isBot(l.Author, l.Email, bots) {
			kept = append(kept, l)
		}
	}

	attr.TotalLines = len(kept)
	attr.Authors = aggregate(kept, cfg)
	if len(attr.Authors) > 0 {
		attr.Primary = &attr.Authors[0]
	}
	if attr.Element == "" {
		attr.KeyHunks = KeyHunks(kept)
	}
	return attr
}

// findElement matches target against element names. Qualified method names
// like "Class.method" compare against the extractor's dotted names; a bare
// name also matches the method part of a qualified name when unambiguous.
func findElement(elements []extract.Element, target string) *extract.Element {
	for i := range elements {
		if elements[i].Name == target {
			return &elements[i]
		}
	}
	if strings.Contains(target, ".") {
		return nil
	}
	var match *extract.Element
	for i := range elements {
		name := elements[i].Name
		if idx := strings.LastIndex(name, "."); idx >= 0 && name[idx+1:] == target {
			if match != nil {
				return nil // ambiguous
			}
			match = &elements[i]
		}
	}
	return match
}

// aggregate groups lines by collapsed identity and orders shares by line
// count descending, ties broken by most recent commit. The first share is
// the primary author.
func aggregate(lines []Line, cfg Config) []AuthorShare {
	type bucket struct {
		share AuthorShare
	}
	buckets := make(map[string]*bucket)
	var order []string

	for _, l := range lines {
		key := cfg.identityKey(l.Author, l.Email)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{share: AuthorShare{Author: l.Author, Email: strings.ToLower(l.Email)}}
			buckets[key] = b
			order = append(order, key)
		}
		b.share.LineCount++
		if l.Timestamp.After(b.share.LastCommit) {
			b.share.LastCommit = l.Timestamp
		}
	}

	total := len(lines)
	shares := make([]AuthorShare, 0, len(order))
	for _, key := range order {
		s := buckets[key].share
		if total > 0 {
			s.Percentage = float64(s.LineCount) / float64(total) * 100
		}
		shares = append(shares, s)
	}

	sort.SliceStable(shares, func(i, j int) bool {
		if shares[i].LineCount != shares[j].LineCount {
			return shares[i].LineCount > shares[j].LineCount
		}
		return shares[i].LastCommit.After(shares[j].LastCommit)
	})
	return shares
}
