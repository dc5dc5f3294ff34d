package main

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tracktab/internal/shared"
	"github.com/desertthunder/tracktab/internal/table"
	"github.com/desertthunder/tracktab/internal/ui"
)

// runViewer opens the interactive table viewer and blocks until it quits.
func (r *Runner) runViewer(title string, t *table.Table) error {
	// Log lines would tear the alternate screen.
	previous := r.logger
	r.SetLogger(shared.NewLogger(io.Discard))
	defer r.SetLogger(previous)

	p := tea.NewProgram(ui.NewModel(title, t), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running viewer: %w", err)
	}

	return nil
}
