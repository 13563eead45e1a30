// Package tuistyles holds the terminal UI palette and styles. It is separate
// from package tui so that components can share it without an import cycle.
package tuistyles

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary    = lipgloss.AdaptiveColor{Light: "#B3261E", Dark: "#E8625A"}
	ColorSecondary  = lipgloss.AdaptiveColor{Light: "#1D4E89", Dark: "#7AA7E0"}
	ColorSuccess    = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#81C784"}
	ColorDanger     = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#EF9A9A"}
	ColorWarning    = lipgloss.AdaptiveColor{Light: "#B26A00", Dark: "#FFCC80"}
	ColorForeground = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#EDEDED"}
	ColorMuted      = lipgloss.AdaptiveColor{Light: "#6B6B6B", Dark: "#9E9E9E"}
	ColorBorder     = lipgloss.AdaptiveColor{Light: "#C4C4C4", Dark: "#4A4A4A"}
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	PromptStyle = lipgloss.NewStyle().
			Foreground(ColorForeground)

	HintStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Bold(true)

	MetricValueStyle = lipgloss.NewStyle().
				Foreground(ColorForeground).
				Bold(true)
)

// VerdictStyle colors a verdict green when eligible and amber otherwise.
func VerdictStyle(eligible bool) lipgloss.Style {
	if eligible {
		return lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
}

// VerdictIndicator returns the glyph shown next to a verdict.
func VerdictIndicator(eligible bool) string {
	if eligible {
		return "✔"
	}
	return "…"
}
