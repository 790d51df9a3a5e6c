package tui

import (
	"fmt"

	"github.com/Veraticus/ats-resume-optimizer/internal/analysis"
	"github.com/Veraticus/ats-resume-optimizer/internal/cli"
	"github.com/Veraticus/ats-resume-optimizer/internal/tui/viewmodel"
	"github.com/charmbracelet/lipgloss"
)

const (
	appTitle    = "ATS Resume Optimizer"
	appSubtitle = "Match your resume against a job description"

	// Width at which inputs and results are shown side by side.
	wideLayoutWidth = 100
	headerHeight    = 2
	statusHeight    = 1
	jobMinHeight    = 3
	jobMaxHeight    = 12
	inputChrome     = 14
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.picking {
		return m.renderPicker()
	}

	if m.showHelp {
		return m.renderHelp()
	}

	screen := m.screen()

	var body string
	if m.wide() {
		body = lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.renderInputs(screen, m.leftWidth()),
			" ",
			m.renderResults(m.rightWidth()),
		)
	} else {
		body = lipgloss.JoinVertical(
			lipgloss.Left,
			m.renderInputs(screen, m.width),
			m.renderResults(m.width),
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderStatusBar(),
	)
}

// handleResize adjusts component sizes when the terminal resizes.
func (m *Model) handleResize() {
	jobHeight := max(jobMinHeight, min(jobMaxHeight, m.height-headerHeight-statusHeight-inputChrome))

	if m.wide() {
		m.jobDesc.SetWidth(m.leftWidth() - 4)
		m.resumePath.Width = m.leftWidth() - 8
		m.results.Width = m.rightWidth() - 4
		m.results.Height = max(m.height-headerHeight-statusHeight-2, 3)
	} else {
		m.jobDesc.SetWidth(m.width - 4)
		m.resumePath.Width = m.width - 8
		m.results.Width = m.width - 4
		m.results.Height = max(m.height-headerHeight-statusHeight-inputChrome-jobHeight-2, 3)
	}
	m.jobDesc.SetHeight(jobHeight)

	m.help.Width = m.width
	m.formatter = cli.NewReportFormatter(m.theme, m.results.Width)
}

func (m Model) wide() bool {
	return m.width >= wideLayoutWidth
}

func (m Model) leftWidth() int {
	return m.width * 45 / 100
}

func (m Model) rightWidth() int {
	return m.width - m.leftWidth() - 1
}

// renderHeader renders the title line.
func (m Model) renderHeader() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Title.Render(appTitle),
		m.theme.Subtitle.Render(appSubtitle),
	)
}

// renderInputs renders the resume and job description panels and the submit
// button.
func (m Model) renderInputs(screen viewmodel.Screen, width int) string {
	panel := screen.Input

	var doc []string
	doc = append(doc, m.theme.Bold.Render("Upload Resume"))
	if panel.HasDocument {
		doc = append(doc, m.theme.Normal.Render(fmt.Sprintf("%s %s (%s)", cli.DocumentIcon, panel.DocumentLabel, panel.DocumentSize)))
		if !panel.DocumentIsPDF {
			doc = append(doc, m.theme.Notice.Render("Not a .pdf file; it will be uploaded as is."))
		}
	} else {
		doc = append(doc,
			m.theme.Normal.Render(panel.DocumentLabel),
			m.theme.Subtle.Render(panel.DocumentHint),
		)
	}
	if m.documentErr != "" {
		doc = append(doc, m.theme.StatusError.Width(width-4).Render(m.documentErr))
	}
	doc = append(doc, m.resumePath.View())

	job := []string{
		m.theme.Bold.Render("Job Description") + " " +
			m.theme.Subtle.Render(fmt.Sprintf("(%d chars)", panel.JobDescriptionChars)),
		m.jobDesc.View(),
	}

	var button string
	if panel.SubmitEnabled {
		button = m.theme.Button.Render(panel.SubmitLabel)
	} else {
		button = m.theme.ButtonDisabled.Render(m.spinner.View() + " " + panel.SubmitLabel)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.panelStyle(focusResume).Width(width-2).Render(lipgloss.JoinVertical(lipgloss.Left, doc...)),
		m.panelStyle(focusJob).Width(width-2).Render(lipgloss.JoinVertical(lipgloss.Left, job...)),
		button,
	)
}

// renderResults renders the scrollable results pane.
func (m Model) renderResults(width int) string {
	return m.panelStyle(focusResults).
		Width(width - 2).
		Render(m.results.View())
}

// renderStatusBar renders the session state and the short help.
func (m Model) renderStatusBar() string {
	var status string
	switch m.snapshot.Status {
	case analysis.StatusValidating, analysis.StatusInFlight:
		status = m.theme.StatusInfo.Render(viewmodel.BusyLabel)
	case analysis.StatusSucceeded:
		status = m.theme.StatusSuccess.Render("Done")
	case analysis.StatusFailed:
		status = m.theme.StatusError.Render("Failed")
	default:
		status = m.theme.StatusInfo.Render("Ready")
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		status,
		"  ",
		m.help.ShortHelpView(m.keymap.ShortHelp()),
	)
}

// renderHelp renders the full key binding overlay.
func (m Model) renderHelp() string {
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Title.Render(appTitle+" - Help"),
		"",
		m.help.FullHelpView(m.keymap.FullHelp()),
		"",
		m.theme.Subtle.Render("Press any key to close help"),
	)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.theme.Panel.Render(content),
	)
}

// renderPicker renders the file picker.
func (m Model) renderPicker() string {
	var lines []string
	lines = append(lines,
		m.theme.Title.Render("Select your resume"),
		m.theme.Subtle.Render(viewmodel.DocumentHint+" · Esc to cancel"),
		"",
		m.picker.View(),
	)
	if m.documentErr != "" {
		lines = append(lines, m.theme.StatusError.Render(m.documentErr))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) panelStyle(area focusArea) lipgloss.Style {
	if m.focus == area {
		return m.theme.FocusedPanel
	}
	return m.theme.Panel
}
