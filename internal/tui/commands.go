package tui

import (
	"context"

	"github.com/Veraticus/ats-resume-optimizer/internal/analysis"
	tea "github.com/charmbracelet/bubbletea"
)

// runAnalysis performs the transport call for an accepted attempt off the
// update loop.
func runAnalysis(ctx context.Context, session *analysis.Session, attempt *analysis.Attempt) tea.Cmd {
	return func() tea.Msg {
		result, err := session.Execute(ctx, attempt)
		return analysisCompletedMsg{
			attempt: attempt,
			result:  result,
			err:     err,
		}
	}
}
