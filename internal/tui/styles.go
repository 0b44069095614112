package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	colorRed    = lipgloss.Color("#ff5555")
	colorGreen  = lipgloss.Color("#50fa7b")
	colorYellow = lipgloss.Color("#f1fa8c")
	colorBlue   = lipgloss.Color("#8be9fd")
	colorPurple = lipgloss.Color("#bd93f9")
	colorOrange = lipgloss.Color("#ffb86c")
	colorDim    = lipgloss.Color("#6272a4")
	colorFg     = lipgloss.Color("#f8f8f2")
	colorBg     = lipgloss.Color("#343746")
	colorBorder = lipgloss.Color("#44475a")
)

// Style definitions.
var (
	// Verdict banner
	verdictAllowStyle = lipgloss.NewStyle().
				Foreground(colorGreen).
				Bold(true)

	verdictWarnStyle = lipgloss.NewStyle().
				Foreground(colorYellow).
				Bold(true)

	verdictBlockStyle = lipgloss.NewStyle().
				Foreground(colorRed).
				Bold(true)

	summaryStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	// Issues panel
	issuesPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder).
				Padding(0, 1)

	issueItemStyle = lipgloss.NewStyle().
			Foreground(colorOrange)

	noIssuesStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	// Diff view
	diffViewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	fileHeaderStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	lineNumberStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Width(4).
			Align(lipgloss.Right)

	addedLineStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	deletedLineStyle = lipgloss.NewStyle().
				Foreground(colorRed)

	hunkHeaderStyle = lipgloss.NewStyle().
			Foreground(colorPurple).
			Bold(true)

	// Status bar
	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Background(colorBg).
			Padding(0, 1)
)
