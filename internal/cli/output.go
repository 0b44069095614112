package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/Faizan711/git-gandalf/internal/guard"
	"github.com/Faizan711/git-gandalf/internal/model"
)

var (
	allowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#50fa7b")).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f1fa8c")).Bold(true)
	blockStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272a4"))
	issueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffb86c"))
)

func styledOutput() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func verdictLabel(a model.Action) string {
	if !styledOutput() {
		return a.String()
	}
	switch a {
	case model.ActionBlock:
		return blockStyle.Render(a.String())
	case model.ActionWarn:
		return warnStyle.Render(a.String())
	default:
		return allowStyle.Render(a.String())
	}
}

func dim(s string) string {
	if !styledOutput() {
		return s
	}
	return dimStyle.Render(s)
}

// printOutcome renders one terminal outcome: verdict line first, then
// detail unless quiet.
func printOutcome(out guard.Outcome, quiet bool) {
	switch {
	case out.Empty:
		fmt.Printf("%s %s\n", verdictLabel(model.ActionAllow), dim("nothing to review"))
		return
	case out.Skipped:
		fmt.Fprintf(os.Stderr, "gandalf: review skipped, model unreachable: %s\n", out.SkipReason)
		fmt.Printf("%s %s\n", verdictLabel(model.ActionAllow), dim("(review skipped)"))
		return
	}

	fmt.Printf("%s %s\n", verdictLabel(out.Action), out.Decision.Summary)

	if quiet {
		return
	}

	fmt.Println(dim(fmt.Sprintf("%d file(s), +%d -%d",
		out.Stats.FilesChanged, out.Stats.LinesAdded, out.Stats.LinesRemoved)))

	for _, issue := range out.Decision.Issues {
		line := "  • " + issue
		if styledOutput() {
			line = issueStyle.Render(line)
		}
		fmt.Println(line)
	}
}
