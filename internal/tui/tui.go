// Package tui is the terminal front-end for a running game session. The core
// never imports this package; it only sees the input-provider interface the
// Bridge implements.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/scorekeeper/internal/game"
)

// Run drives a session under ctrl until the user quits or finishes the game.
func Run(ctrl *game.Controller, logger *log.Logger) error {
	DetectColorProfile()

	bridge := NewBridge()
	p := tea.NewProgram(NewModel(ctrl, bridge, logger), tea.WithAltScreen())
	bridge.SetProgram(p)

	_, err := p.Run()
	return err
}
