package extract

import (
	"bytes"
	"sort"
)

// byteSpan is a half-open [start, end) byte range within a source file.
type byteSpan struct {
	start uint32
	end   uint32
}

// countLines categorizes every line of source as blank, comment or code.
// A line counts as a comment line when its first non-whitespace byte falls
// inside one of the comment spans.
func countLines(source []byte, comments []byteSpan) LineCounts {
	sorted := make([]byteSpan, len(comments))
	copy(sorted, comments)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].start < sorted[j].start })

	var counts LineCounts
	offset := uint32(0)

	for _, line := range bytes.Split(source, []byte("\n")) {
		lineStart := offset
		offset += uint32(len(line)) + 1

		// A trailing newline produces one final empty slice; don't count it
		// as a line of the file.
		if lineStart >= uint32(len(source)) {
			break
		}

		counts.Total++

		trimmed := bytes.TrimSpace(line)
		if len(trimmed) == 0 {
			counts.Blank++
			continue
		}

		firstByte := lineStart + uint32(bytes.IndexByte(line, trimmed[0]))
		if inSpan(sorted, firstByte) {
			counts.Comment++
		} else {
			counts.Code++
		}
	}

	return counts
}

func inSpan(spans []byteSpan, pos uint32) bool {
	i := sort.Search(len(spans), func(i int) bool { return spans[i].end > pos })
	return i < len(spans) && spans[i].start <= pos
}
