package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/emeklilik/sgkcalc/internal/domain"
	"github.com/emeklilik/sgkcalc/internal/message"
	"github.com/emeklilik/sgkcalc/internal/output"
	"github.com/emeklilik/sgkcalc/internal/tui/components"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.err != nil {
		return m.renderError()
	}

	var content string
	switch m.currentScene {
	case SceneForm:
		content = m.renderForm()
	case SceneResult:
		content = m.renderResult()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("SGKCALC - SGK Retirement Eligibility")

	breadcrumb := m.currentScene.String()
	if m.currentScene == SceneForm && m.started {
		breadcrumb = fmt.Sprintf("%s / %s", breadcrumb, m.step)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(breadcrumb))
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	var shortcuts []string
	switch m.currentScene {
	case SceneResult:
		shortcuts = []string{
			formatShortcut("enter", "new query"),
			formatShortcut("f1", "help"),
			formatShortcut("q", "quit"),
		}
	case SceneHelp:
		shortcuts = []string{formatShortcut("esc", "back")}
	default:
		shortcuts = []string{
			formatShortcut("enter", "answer"),
			formatShortcut("f1", "help"),
			formatShortcut("esc", "quit"),
		}
	}

	return StatusBarStyle.Width(m.width).Render(strings.Join(shortcuts, " • "))
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

// renderError renders an error message
func (m Model) renderError() string {
	content := ErrorStyle.Render(
		fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err.Error()),
	)
	return m.renderApp(content)
}

func (m Model) renderForm() string {
	var b strings.Builder
	prompt := m.prompt
	if prompt == "" {
		prompt = "..."
	}
	b.WriteString(PromptStyle.Render(prompt))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	if m.hint != "" {
		b.WriteString("\n\n")
		b.WriteString(HintStyle.Render(m.hint))
	}
	return BorderStyle.Width(min(m.width-2, 76)).Render(b.String())
}

func (m Model) renderResult() string {
	if m.report == nil {
		return BorderStyle.Render(m.reportText)
	}
	loc := m.localizer
	report := m.report

	header := loc.Msgf(message.ReportHeader, map[string]any{
		"Status": string(report.Profile.Status),
		"Gender": loc.GenderLabel(report.Profile.Gender),
		"Year":   report.ReferenceYear,
	})

	cards := []*components.MetricCard{outcomeCard(loc, report.Full)}
	if report.Partial.Matched() {
		cards = append(cards, outcomeCard(loc, report.Partial))
	}
	columns := 2
	if m.width < 80 {
		columns = 1
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		PromptStyle.Render(header),
		components.MetricGrid(cards, columns),
		SubtitleStyle.Render(loc.Msg(message.Disclaimer)),
	)
}

// outcomeCard renders one track as a card.
func outcomeCard(loc *message.Localizer, o domain.TrackOutcome) *components.MetricCard {
	title := loc.Msg(message.TrackFull)
	if o.Track == domain.TrackPartial {
		title = loc.Msg(message.TrackPartial)
	}
	if !o.Matched() {
		return components.NewMetricCard(title, loc.Msg(message.NoRule))
	}

	res := o.Result
	card := components.NewMetricCard(title, o.Rule.Range.String()).WithDetails(
		loc.Msgf(message.RequiredDays, map[string]any{"Days": res.RequiredDays}),
		loc.Msgf(message.RequiredAge, map[string]any{"Age": res.RequiredAge}),
	)
	if res.Age != nil {
		card.WithDetails(loc.Msgf(message.CurrentAge, map[string]any{"Age": *res.Age}))
	} else {
		card.WithDetails(loc.Msg(message.AgeUnknown))
	}
	card.WithDetails(loc.Msgf(message.MissingDays, map[string]any{
		"Days":  res.MissingDays,
		"Years": output.FormatYears(res.MissingDays),
	}))
	if res.MissingAge != nil {
		card.WithDetails(loc.Msgf(message.MissingAge, map[string]any{"Age": *res.MissingAge}))
	}

	verdict := loc.Msg(message.NotEligible)
	if res.Eligible {
		verdict = loc.Msg(message.Eligible)
	}
	return card.WithVerdict(res.Eligible, verdict)
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	helpText := m.localizer.Msg(message.Help) + `

KEYBOARD SHORTCUTS:
  enter    Submit the answer / start a new query
  f1       Show this help
  esc      Go back (quit from the form)
  q        Quit from the result screen
  ctrl+c   Quit
`
	return BorderStyle.Render(helpText)
}
