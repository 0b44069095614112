package tui

import (
	"fmt"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/charmbracelet/lipgloss"

	"github.com/Faizan711/git-gandalf/internal/diff"
)

// renderedLine is a single line of diff output ready for display.
type renderedLine struct {
	OldNum  int // 0 means not applicable (add-only)
	NewNum  int // 0 means not applicable (delete-only)
	Op      gitdiff.LineOp
	Content string
	IsHunk  bool

	// Syntax highlighting tokens (nil = no highlighting)
	Tokens []diff.Token
}

// renderFile produces renderedLines for a file's diff fragments.
func renderFile(f *diff.File) []renderedLine {
	var lines []renderedLine

	var contentLines []string
	for _, frag := range f.Fragments {
		for _, line := range frag.Lines {
			contentLines = append(contentLines, strings.TrimRight(line.Line, "\n\r"))
		}
	}

	highlighted := diff.HighlightLines(f.Name(), contentLines)
	hlIdx := 0

	for i, frag := range f.Fragments {
		lines = append(lines, renderedLine{
			IsHunk:  true,
			Content: formatHunkHeader(frag),
		})

		oldLine := int(frag.OldPosition)
		newLine := int(frag.NewPosition)

		for _, line := range frag.Lines {
			rl := renderedLine{
				Op:      line.Op,
				Content: strings.TrimRight(line.Line, "\n\r"),
			}

			if hlIdx < len(highlighted) {
				rl.Tokens = highlighted[hlIdx].Tokens
				hlIdx++
			}

			switch line.Op {
			case gitdiff.OpContext:
				rl.OldNum = oldLine
				rl.NewNum = newLine
				oldLine++
				newLine++
			case gitdiff.OpDelete:
				rl.OldNum = oldLine
				oldLine++
			case gitdiff.OpAdd:
				rl.NewNum = newLine
				newLine++
			}

			lines = append(lines, rl)
		}

		if i < len(f.Fragments)-1 {
			lines = append(lines, renderedLine{Content: ""})
		}
	}

	return lines
}

func formatHunkHeader(frag *gitdiff.TextFragment) string {
	old := fmt.Sprintf("-%d", frag.OldPosition)
	if frag.OldLines != 1 {
		old += fmt.Sprintf(",%d", frag.OldLines)
	}
	new := fmt.Sprintf("+%d", frag.NewPosition)
	if frag.NewLines != 1 {
		new += fmt.Sprintf(",%d", frag.NewLines)
	}

	header := fmt.Sprintf("@@ %s %s @@", old, new)
	if frag.Comment != "" {
		header += " " + frag.Comment
	}
	return header
}

// styleLine applies styling to a rendered line for the diff viewport.
func styleLine(rl renderedLine, width int) string {
	if rl.IsHunk {
		return hunkHeaderStyle.Width(width).Render(rl.Content)
	}

	oldNum := "    "
	newNum := "    "
	if rl.OldNum > 0 {
		oldNum = fmt.Sprintf("%4d", rl.OldNum)
	}
	if rl.NewNum > 0 {
		newNum = fmt.Sprintf("%4d", rl.NewNum)
	}
	lineNums := lineNumberStyle.Render(oldNum) + " " + lineNumberStyle.Render(newNum)

	var content string
	switch rl.Op {
	case gitdiff.OpAdd:
		content = addedLineStyle.Render(truncate("+"+rl.Content, width-12))
	case gitdiff.OpDelete:
		content = deletedLineStyle.Render(truncate("-"+rl.Content, width-12))
	default:
		content = highlightedContent(rl, " ", width-12)
	}

	return lineNums + " " + content
}

// highlightedContent renders a context line with its syntax tokens.
func highlightedContent(rl renderedLine, prefix string, max int) string {
	if len(rl.Tokens) == 0 {
		return truncate(prefix+rl.Content, max)
	}
	if max > 0 && len(rl.Content)+1 > max {
		// Too long for the viewport; drop the tokens rather than try to
		// truncate styled output.
		return truncate(prefix+rl.Content, max)
	}

	var b strings.Builder
	b.WriteString(prefix)
	for _, tok := range rl.Tokens {
		if tok.Color != "" {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(tok.Color)).Render(tok.Text))
		} else {
			b.WriteString(tok.Text)
		}
	}
	return b.String()
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) > max {
		return s[:max-1] + "…"
	}
	return s
}
