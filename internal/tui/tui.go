// Package tui implements the Bubble Tea review screen for a judged diff.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Faizan711/git-gandalf/internal/diff"
	"github.com/Faizan711/git-gandalf/internal/guard"
	"github.com/Faizan711/git-gandalf/internal/model"
)

// Model is the top-level Bubble Tea model for the review screen.
type Model struct {
	outcome guard.Outcome
	diffSet *diff.DiffSet

	width  int
	height int

	fileIndex    int
	scrollOffset int

	// Rendered lines for the current file
	lines []renderedLine
}

// New creates a review screen for a judged diff.
func New(out guard.Outcome, ds *diff.DiffSet) Model {
	m := Model{outcome: out, diffSet: ds}
	m.updateLines()
	return m
}

func (m *Model) updateLines() {
	if len(m.diffSet.Files) == 0 {
		m.lines = nil
		return
	}
	m.lines = renderFile(m.diffSet.Files[m.fileIndex])
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Down):
			if m.scrollOffset < len(m.lines)-1 {
				m.scrollOffset++
			}

		case key.Matches(msg, keys.Up):
			if m.scrollOffset > 0 {
				m.scrollOffset--
			}

		case key.Matches(msg, keys.NextFile):
			if m.fileIndex < len(m.diffSet.Files)-1 {
				m.fileIndex++
				m.scrollOffset = 0
				m.updateLines()
			}

		case key.Matches(msg, keys.PrevFile):
			if m.fileIndex > 0 {
				m.fileIndex--
				m.scrollOffset = 0
				m.updateLines()
			}

		case key.Matches(msg, keys.NextHunk):
			m.jumpToNextHunk()

		case key.Matches(msg, keys.PrevHunk):
			m.jumpToPrevHunk()
		}
	}

	return m, nil
}

func (m *Model) jumpToNextHunk() {
	for i := m.scrollOffset + 1; i < len(m.lines); i++ {
		if m.lines[i].IsHunk {
			m.scrollOffset = i
			return
		}
	}
}

func (m *Model) jumpToPrevHunk() {
	for i := m.scrollOffset - 1; i >= 0; i-- {
		if m.lines[i].IsHunk {
			m.scrollOffset = i
			return
		}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	banner := m.renderBanner()
	issues := m.renderIssues()

	used := lipgloss.Height(banner) + lipgloss.Height(issues) + 1 // +1 status bar
	diffView := m.renderDiffView(m.width, m.height-used)

	statusBar := m.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left, banner, issues, diffView, statusBar)
}

func (m Model) verdictStyle() lipgloss.Style {
	switch m.outcome.Action {
	case model.ActionBlock:
		return verdictBlockStyle
	case model.ActionWarn:
		return verdictWarnStyle
	default:
		return verdictAllowStyle
	}
}

func (m Model) renderBanner() string {
	verdict := m.verdictStyle().Render(m.outcome.Action.String())
	summary := ""
	if m.outcome.Decision != nil {
		summary = summaryStyle.Render(m.outcome.Decision.Summary)
	}
	return " " + verdict + "  " + summary
}

func (m Model) renderIssues() string {
	var b strings.Builder
	if m.outcome.Decision == nil || len(m.outcome.Decision.Issues) == 0 {
		b.WriteString(noIssuesStyle.Render("No issues reported."))
	} else {
		for i, issue := range m.outcome.Decision.Issues {
			b.WriteString(issueItemStyle.Render("• " + issue))
			if i < len(m.outcome.Decision.Issues)-1 {
				b.WriteByte('\n')
			}
		}
	}
	return issuesPanelStyle.Width(m.width - 2).Render(b.String())
}

func (m Model) renderDiffView(width, height int) string {
	innerHeight := height - 2 // borders
	if innerHeight < 3 {
		innerHeight = 3
	}

	f := m.diffSet.Files[m.fileIndex]
	header := fileHeaderStyle.Render(fmt.Sprintf("%s %s", f.Status(), f.Name()))

	visibleLines := innerHeight - 1
	end := m.scrollOffset + visibleLines
	if end > len(m.lines) {
		end = len(m.lines)
	}

	var b strings.Builder
	b.WriteString(header)
	for i := m.scrollOffset; i < end; i++ {
		b.WriteByte('\n')
		b.WriteString(styleLine(m.lines[i], width-4))
	}

	return diffViewStyle.Width(width - 2).Height(innerHeight).Render(b.String())
}

func (m Model) renderStatusBar() string {
	nFiles, added, deleted := m.diffSet.Stats()

	left := fmt.Sprintf(" File %d/%d", m.fileIndex+1, nFiles)
	if len(m.lines) > 0 {
		left += fmt.Sprintf("  Line %d/%d", m.scrollOffset+1, len(m.lines))
	}
	right := fmt.Sprintf("+%d -%d  n/N files  ]/[ hunks  q quit ", added, deleted)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	return statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// Run starts the review screen.
func Run(out guard.Outcome, ds *diff.DiffSet) error {
	p := tea.NewProgram(New(out, ds), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
