package tui

import (
	"github.com/emeklilik/sgkcalc/internal/conversation"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneForm Scene = iota
	SceneResult
	SceneHelp
)

// Message types for the Bubble Tea update cycle

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ReplyMsg carries the conversation's answer to a submitted line
type ReplyMsg struct {
	Reply conversation.Reply
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}
