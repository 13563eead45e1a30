package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/emeklilik/sgkcalc/internal/tui/tuistyles"
)

// MetricCard displays one retirement track with its verdict and figures
type MetricCard struct {
	Label   string
	Value   string
	Verdict *Verdict
	Details []string
	Width   int
}

// Verdict is the eligibility line shown under the value
type Verdict struct {
	Eligible bool
	Text     string
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
	}
}

// WithVerdict adds the eligibility line
func (m *MetricCard) WithVerdict(eligible bool, text string) *MetricCard {
	m.Verdict = &Verdict{Eligible: eligible, Text: text}
	return m
}

// WithDetails appends detail lines
func (m *MetricCard) WithDetails(lines ...string) *MetricCard {
	m.Details = append(m.Details, lines...)
	return m
}

// WithWidth sets the card width. Zero leaves lines unwrapped.
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the styled metric card
func (m *MetricCard) Render() string {
	label := tuistyles.MetricLabelStyle.Render(m.Label)
	value := tuistyles.MetricValueStyle.Render(m.Value)

	content := label + "\n" + value
	for _, line := range m.Details {
		content += "\n" + tuistyles.SubtitleStyle.Render(line)
	}

	if m.Verdict != nil {
		style := tuistyles.VerdictStyle(m.Verdict.Eligible)
		content += "\n\n" + style.Render(fmt.Sprintf("%s %s", tuistyles.VerdictIndicator(m.Verdict.Eligible), m.Verdict.Text))
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(1, 2)
	if m.Width > 0 {
		cardStyle = cardStyle.Width(m.Width)
	}

	return cardStyle.Render(content)
}

// RenderCompact returns a compact inline version without border
func (m *MetricCard) RenderCompact() string {
	line := tuistyles.MetricLabelStyle.Render(m.Label+":") + " " + tuistyles.MetricValueStyle.Render(m.Value)
	if m.Verdict != nil {
		line += " " + tuistyles.VerdictStyle(m.Verdict.Eligible).Render(tuistyles.VerdictIndicator(m.Verdict.Eligible))
	}
	return line
}

// MetricGrid renders multiple metric cards in a grid layout
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	rows := []string{}
	currentRow := []string{}

	for i, card := range cards {
		currentRow = append(currentRow, card.Render())

		// Start new row when we reach column limit or end of cards
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, currentRow...))
			currentRow = []string{}
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
