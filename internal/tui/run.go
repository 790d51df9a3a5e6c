package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive client and blocks until the user quits.
func Run(ctx context.Context, opts ...Option) error {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Session == nil || cfg.Inputs == nil {
		return fmt.Errorf("analysis session is required")
	}

	// Set up terminal cleanup on any exit
	defer func() {
		// Ignore errors as this is best-effort cleanup
		_, _ = os.Stdout.Write([]byte("\033[?25h")) // Show cursor
		_, _ = os.Stdout.Write([]byte("\033[m"))    // Reset colors
	}()

	programOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	}
	if cfg.MouseSupport {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}

	program := tea.NewProgram(newModel(ctx, cfg), programOpts...)
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
