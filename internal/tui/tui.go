package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sot/chandra-time/internal/leapsec"
)

// Run starts the interactive converter, blocking until it exits.
// The program uses the alternate screen buffer for a clean TUI experience.
func Run(table *leapsec.Table, refresh func()) error {
	p := tea.NewProgram(New(table, refresh), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
