// Package tui is a terminal front end for the eligibility conversation.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/emeklilik/sgkcalc/internal/conversation"
	"github.com/emeklilik/sgkcalc/internal/domain"
	"github.com/emeklilik/sgkcalc/internal/message"
	"github.com/emeklilik/sgkcalc/internal/session"
)

// Handler answers one line of input. *conversation.Flow satisfies it.
type Handler interface {
	Handle(ctx context.Context, in conversation.Input) (conversation.Reply, error)
}

// localUser is the session key used for the single terminal user.
const localUser int64 = 1

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	handler   Handler
	localizer *message.Localizer
	language  string

	input   textinput.Model
	started bool
	step    session.Step
	prompt  string
	hint    string
	waiting bool

	report     *domain.Report
	reportText string

	// Error state
	err error
}

// NewModel creates a new application model
func NewModel(handler Handler, catalog *message.Catalog, language string) Model {
	input := textinput.New()
	input.Prompt = "› "
	input.CharLimit = 32
	input.Width = 30
	input.Focus()

	return Model{
		currentScene: SceneForm,
		handler:      handler,
		localizer:    catalog.Localizer(language),
		language:     language,
		input:        input,
		width:        80,
		height:       24,
	}
}

// Init starts a new conversation (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.submitCmd("/start"))
}

// submitCmd returns a command that sends one line to the conversation
func (m Model) submitCmd(text string) tea.Cmd {
	handler, language := m.handler, m.language
	return func() tea.Msg {
		reply, err := handler.Handle(context.Background(), conversation.Input{
			UserID:   localUser,
			Language: language,
			Text:     text,
		})
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ReplyMsg{Reply: reply}
	}
}

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneForm:
		return "Form"
	case SceneResult:
		return "Result"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
