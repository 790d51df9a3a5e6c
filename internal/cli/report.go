package cli

import (
	"fmt"
	"strings"

	"github.com/Veraticus/ats-resume-optimizer/internal/tui/themes"
	"github.com/Veraticus/ats-resume-optimizer/internal/tui/viewmodel"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultReportWidth = 80
	maxScoreBarWidth   = 40
)

// ReportFormatter renders a view model screen as styled terminal text.
// It is shared by the interactive client and the one-shot analyze command.
type ReportFormatter struct {
	theme themes.Theme
	width int
}

// NewReportFormatter creates a formatter for the given theme and width.
func NewReportFormatter(theme themes.Theme, width int) *ReportFormatter {
	if width <= 0 {
		width = defaultReportWidth
	}
	return &ReportFormatter{
		theme: theme,
		width: width,
	}
}

// WithWidth returns a copy of the formatter for another terminal width.
func (f *ReportFormatter) WithWidth(width int) *ReportFormatter {
	return NewReportFormatter(f.theme, width)
}

// Width returns the rendering width.
func (f *ReportFormatter) Width() int {
	return f.width
}

// Format renders the main panel of a screen.
func (f *ReportFormatter) Format(screen viewmodel.Screen) string {
	var parts []string

	if screen.Notice != "" {
		parts = append(parts, f.FormatNotice(screen.Notice))
	}

	switch screen.Kind {
	case viewmodel.ScreenResult:
		parts = append(parts, f.FormatResult(screen))
	case viewmodel.ScreenFailure:
		parts = append(parts, f.FormatFailure(screen.ErrorMessage))
	case viewmodel.ScreenBusy:
		parts = append(parts, f.theme.Subtle.Render(viewmodel.BusyLabel))
	default:
		parts = append(parts, f.FormatPlaceholder())
	}

	return strings.Join(parts, "\n\n")
}

// FormatPlaceholder renders the empty state.
func (f *ReportFormatter) FormatPlaceholder() string {
	title := f.theme.Title.Render(viewmodel.PlaceholderTitle)
	hint := f.theme.Subtle.Width(f.innerWidth()).Render(viewmodel.PlaceholderHint)
	return lipgloss.JoinVertical(lipgloss.Left, title, hint)
}

// FormatNotice renders a transient validation notice.
func (f *ReportFormatter) FormatNotice(notice string) string {
	return f.theme.Notice.Width(f.innerWidth()).Render(WarningIcon + " " + notice)
}

// FormatFailure renders the failure message.
func (f *ReportFormatter) FormatFailure(message string) string {
	return f.theme.ErrorBox.Width(f.innerWidth()).Render(ErrorIcon + " " + message)
}

// FormatResult renders the score, the summary and the four result sections.
func (f *ReportFormatter) FormatResult(screen viewmodel.Screen) string {
	if screen.Score == nil {
		return f.FormatPlaceholder()
	}

	blocks := []string{f.FormatScore(*screen.Score, screen.Summary)}
	for _, section := range screen.Sections {
		blocks = append(blocks, f.FormatSection(section))
	}
	return strings.Join(blocks, "\n")
}

// FormatScore renders the score ring as a horizontal bar with the rounded
// percentage and the summary underneath.
func (f *ReportFormatter) FormatScore(score viewmodel.ScoreView, summary string) string {
	bandStyle := f.theme.BandStyle(score.Band)

	title := f.theme.Title.Render(viewmodel.ScoreTitle)
	value := bandStyle.Render(fmt.Sprintf("%d%%", score.Percent)) + " " +
		f.theme.Subtle.Render(strings.ToUpper(viewmodel.ScoreCaption))

	lines := []string{title, value, f.RenderScoreBar(score)}
	if summary != "" {
		lines = append(lines, "", f.theme.Normal.Width(f.innerWidth()-2).Render(summary))
	}

	return f.theme.Panel.Width(f.innerWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// RenderScoreBar draws the filled proportion of the score ring.
func (f *ReportFormatter) RenderScoreBar(score viewmodel.ScoreView) string {
	width := min(maxScoreBarWidth, f.innerWidth()-4)
	filled := viewmodel.FilledCells(score.Proportion, width)

	return f.theme.BandStyle(score.Band).Render(strings.Repeat("█", filled)) +
		f.theme.ProgressEmpty.Render(strings.Repeat("░", max(width-filled, 0)))
}

// FormatSection renders one result list, or its fallback when empty.
func (f *ReportFormatter) FormatSection(section viewmodel.Section) string {
	heading := f.theme.ToneStyle(section.Tone).Render(section.Title)
	textWidth := f.innerWidth() - 6

	var lines []string
	if section.IsEmpty() {
		lines = append(lines, f.theme.Italic.Width(textWidth).Render(section.Fallback))
	} else {
		bullet := f.theme.BadgeStyle(section.Tone).UnsetPadding().Render(bulletFor(section.Tone))
		for _, item := range section.Items {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
				bullet+" ",
				f.theme.Normal.Width(textWidth).Render(item)))
		}
	}

	panel := f.theme.Panel
	if section.Tone == viewmodel.ToneAccent {
		panel = f.theme.AccentPanel
	}

	body := lipgloss.JoinVertical(lipgloss.Left, append([]string{heading}, lines...)...)
	return panel.Width(f.innerWidth()).Render(body)
}

func (f *ReportFormatter) innerWidth() int {
	return max(f.width-2, 20)
}

func bulletFor(tone viewmodel.Tone) string {
	switch tone {
	case viewmodel.ToneAlert:
		return ErrorIcon
	case viewmodel.ToneSuccess:
		return SuccessIcon
	case viewmodel.ToneAccent:
		return "▸"
	default:
		return "•"
	}
}
