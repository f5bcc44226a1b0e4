package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run opens the goal browser on the terminal and blocks until the user quits
// or ctx is cancelled.
func Run(ctx context.Context, src GoalSource, cfg Config) error {
	m, err := New(src, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("goal browser failed: %w", err)
	}
	return nil
}
