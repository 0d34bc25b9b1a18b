// Package view holds the screens of the terminal client.
package view

import (
	tea "github.com/charmbracelet/bubbletea"
)

// View is a screen the menu can open.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel tracks the terminal size for a screen.
type CommonModel struct {
	Width  int
	Height int
}

func (c *CommonModel) SetSize(msg tea.WindowSizeMsg) {
	c.Width, c.Height = msg.Width, msg.Height
}

// BackMsg returns the user to the menu.
type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}
