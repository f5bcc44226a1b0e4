package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the goal browser.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Normal      lipgloss.Style
	Selected    lipgloss.Style
	Completed   lipgloss.Style
	Add         lipgloss.Style
	Withdraw    lipgloss.Style
	Empty       lipgloss.Style
	BorderedBox lipgloss.Style
	Primary     lipgloss.Color
	Secondary   lipgloss.Color
	Muted       lipgloss.Color
	Border      lipgloss.Color
	Success     lipgloss.Color
	Error       lipgloss.Color
}

// Default is the default theme.
var Default = Theme{
	// Colors
	Primary:   lipgloss.Color("#F2B134"),
	Secondary: lipgloss.Color("#fcd34d"),
	Success:   lipgloss.Color("#4ECDC4"),
	Error:     lipgloss.Color("#FF6B6B"),
	Border:    lipgloss.Color("#404040"),
	Muted:     lipgloss.Color("#737373"),

	// Text styles
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#F2B134")).
		MarginBottom(1),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fafafa")),
	Selected: lipgloss.NewStyle().
		Background(lipgloss.Color("#F2B134")).
		Foreground(lipgloss.Color("#1a1a1a")).
		Bold(true),
	Completed: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4ECDC4")).
		Bold(true),
	Add: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4ECDC4")),
	Withdraw: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF6B6B")),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")).
		Italic(true),

	// Component styles
	BorderedBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(0, 1),
}

// Plain has no colors or decoration. Tests and dumb terminals use it.
var Plain = Theme{
	Title:       lipgloss.NewStyle(),
	Subtitle:    lipgloss.NewStyle(),
	Normal:      lipgloss.NewStyle(),
	Selected:    lipgloss.NewStyle(),
	Completed:   lipgloss.NewStyle(),
	Add:         lipgloss.NewStyle(),
	Withdraw:    lipgloss.NewStyle(),
	Empty:       lipgloss.NewStyle(),
	BorderedBox: lipgloss.NewStyle(),
}
