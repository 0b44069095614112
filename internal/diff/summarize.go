package diff

import (
	"bufio"
	"strings"

	"github.com/Faizan711/git-gandalf/internal/model"
)

// Markers recognized by the summarizer.
const (
	fileHeaderPrefix = "diff "
	binaryPrefix     = "Binary files "
)

// Summarize scans raw unified-diff text line by line and produces the
// metadata sent to the model alongside the diff itself. It tolerates any
// input: malformed or truncated diffs simply yield smaller counts.
//
// Lines inside a binary hunk are excluded from the added/removed tallies
// so binary payload bytes are never miscounted as text changes.
func Summarize(raw string) model.DiffStats {
	stats := model.DiffStats{Files: []string{}}
	seen := make(map[string]bool)
	inBinary := false

	sc := bufio.NewScanner(strings.NewReader(raw))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		line := sc.Text()

		switch {
		case strings.HasPrefix(line, fileHeaderPrefix):
			inBinary = false
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			name := fields[len(fields)-1]
			if !seen[name] {
				seen[name] = true
				stats.Files = append(stats.Files, name)
			}

		case strings.HasPrefix(line, binaryPrefix):
			inBinary = true

		case inBinary:
			// binary payload, not countable text

		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			stats.LinesAdded++

		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			stats.LinesRemoved++
		}
	}

	stats.FilesChanged = len(stats.Files)
	return stats
}

// NormalizeLineEndings rewrites CRLF and bare CR line endings to LF so the
// scanner and the model see one canonical form.
func NormalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
