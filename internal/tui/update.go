package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emeklilik/sgkcalc/internal/session"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case ErrorMsg:
		m.waiting = false
		m.err = msg.Err
		return m, nil

	case ReplyMsg:
		return m.applyReply(msg), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// applyReply moves to the next question, shows a hint for a rejected
// answer, or switches to the result scene.
func (m Model) applyReply(msg ReplyMsg) Model {
	reply := msg.Reply
	m.waiting = false

	if reply.Report != nil {
		m.report = reply.Report
		m.reportText = reply.Text
		m.previousScene = m.currentScene
		m.currentScene = SceneResult
		m.started = false
		m.step = session.StepDone
		return m
	}

	if m.started && reply.Step == m.step && reply.Step != session.StepDone {
		m.hint = reply.Text
		return m
	}

	m.started = reply.Step != session.StepDone
	m.step = reply.Step
	m.prompt = reply.Text
	m.hint = ""
	return m
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keyboard shortcuts
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "f1":
		if m.currentScene != SceneHelp {
			return m, func() tea.Msg { return NavigateMsg{Scene: SceneHelp} }
		}
		return m, nil

	case "esc":
		if m.currentScene == SceneHelp {
			return m, func() tea.Msg { return NavigateMsg{Scene: m.previousScene} }
		}
		return m, tea.Quit
	}

	if m.err != nil {
		m.err = nil
		return m, nil
	}

	switch m.currentScene {
	case SceneResult:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "enter", "n":
			return m.restart()
		}
		return m, nil

	case SceneHelp:
		return m, nil
	}

	if msg.Type == tea.KeyEnter {
		text := strings.TrimSpace(m.input.Value())
		if text == "" || m.waiting {
			return m, nil
		}
		m.input.SetValue("")
		m.waiting = true
		return m, m.submitCmd(text)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) restart() (tea.Model, tea.Cmd) {
	m.report = nil
	m.reportText = ""
	m.previousScene = m.currentScene
	m.currentScene = SceneForm
	m.waiting = true
	return m, m.submitCmd("/start")
}
