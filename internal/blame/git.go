package blame

import (
	"bufio"
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"lens/internal/errors"
)

// CollectLines runs git blame in porcelain format and converts its output
// into per-line attribution records. revision may be empty for the working
// tree. This is the one place in the package that performs I/O.
func CollectLines(ctx context.Context, repoRoot, filePath, revision string) ([]Line, error) {
	args := []string{"blame", "--porcelain"}
	if revision != "" {
		args = append(args, revision)
	}
	args = append(args, "--", filePath)

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = repoRoot
	output, err := cmd.Output()
	if err != nil {
		return nil, errors.New(errors.InternalError, "running git blame", err)
	}
	return parsePorcelain(output)
}

type commitMeta struct {
	author    string
	email     string
	timestamp time.Time
}

// parsePorcelain reads git's porcelain blame stream. Commit metadata appears
// once per commit; later groups reference the same hash with a bare header,
// so metadata is cached by hash.
func parsePorcelain(output []byte) ([]Line, error) {
	metas := make(map[string]*commitMeta)
	var lines []Line

	var sha string
	var lineNo int

	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		text := scanner.Text()

		if strings.HasPrefix(text, "\t") {
			// Content line closes the current group entry.
			m := metas[sha]
			if m == nil {
				m = &commitMeta{}
			}
			lines = append(lines, Line{
				Number:    lineNo,
				CommitID:  sha,
				Author:    m.author,
				Email:     m.email,
				Timestamp: m.timestamp,
			})
			continue
		}

		if fields := strings.Fields(text); len(fields) >= 3 && len(fields[0]) == 40 && isHex(fields[0]) {
			sha = fields[0]
			n, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, errors.Newf(errors.InternalError, "bad blame header %q", text)
			}
			lineNo = n
			if _, ok := metas[sha]; !ok {
				metas[sha] = &commitMeta{}
			}
			continue
		}

		m := metas[sha]
		if m == nil {
			continue
		}
		switch {
		case strings.HasPrefix(text, "author "):
			m.author = strings.TrimPrefix(text, "author ")
		case strings.HasPrefix(text, "author-mail "):
			m.email = strings.Trim(strings.TrimPrefix(text, "author-mail "), "<>")
		case strings.HasPrefix(text, "author-time "):
			if ts, err := strconv.ParseInt(strings.TrimPrefix(text, "author-time "), 10, 64); err == nil {
				m.timestamp = time.Unix(ts, 0).UTC()
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.New(errors.InternalError, "reading git blame output", err)
	}
	return lines, nil
}

func isHex(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}
