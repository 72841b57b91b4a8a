package blame

import "sort"

// Hunk is a maximal run of adjacent lines introduced by one commit.
type Hunk struct {
	CommitID  string `json:"commitId"`
	Author    string `json:"author"`
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
	LineCount int    `json:"lineCount"`
}

// KeyHunks merges adjacent lines sharing a commit id into maximal runs,
// ordered by start line. Used for whole-file summaries only.
func KeyHunks(lines []Line) []Hunk {
	if len(lines) == 0 {
		return nil
	}

	sorted := make([]Line, len(lines))
	copy(sorted, lines)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Number < sorted[j].Number })

	var hunks []Hunk
	cur := Hunk{
		CommitID:  sorted[0].CommitID,
		Author:    sorted[0].Author,
		StartLine: sorted[0].Number,
		EndLine:   sorted[0].Number,
		LineCount: 1,
	}
	for _, l := range sorted[1:] {
		if l.CommitID == cur.CommitID && l.Number == cur.EndLine+1 {
			cur.EndLine = l.Number
			cur.LineCount++
			continue
		}
		hunks = append(hunks, cur)
		cur = Hunk{
			CommitID:  l.CommitID,
			Author:    l.Author,
			StartLine: l.Number,
			EndLine:   l.Number,
			LineCount: 1,
		}
	}
	return append(hunks, cur)
}
