package tui

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Veraticus/ats-resume-optimizer/internal/analysis"
	"github.com/Veraticus/ats-resume-optimizer/internal/cli"
	"github.com/Veraticus/ats-resume-optimizer/internal/common"
	"github.com/Veraticus/ats-resume-optimizer/internal/config"
	"github.com/Veraticus/ats-resume-optimizer/internal/input"
	"github.com/Veraticus/ats-resume-optimizer/internal/model"
	"github.com/Veraticus/ats-resume-optimizer/internal/tui/themes"
	"github.com/Veraticus/ats-resume-optimizer/internal/tui/viewmodel"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const disabledFileMessage = "Only .pdf files can be picked here."

// Model holds the main TUI state. Rendering is derived from the session
// snapshot and the input controller through the view model.
type Model struct {
	ctx         context.Context
	theme       themes.Theme
	session     *analysis.Session
	inputs      *input.Controller
	formatter   *cli.ReportFormatter
	snapshot    analysis.Snapshot
	keymap      KeyMap
	help        help.Model
	picker      filepicker.Model
	resumePath  textinput.Model
	jobDesc     textarea.Model
	spinner     spinner.Model
	results     viewport.Model
	loadedPath  string
	documentErr string
	width       int
	height      int
	focus       focusArea
	picking     bool
	showHelp    bool
	quitting    bool
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, cfg Config) Model {
	resumePath := textinput.New()
	resumePath.Placeholder = "~/path/to/resume.pdf"
	resumePath.Prompt = "› "
	resumePath.SetValue(cfg.ResumePath)

	jobDesc := textarea.New()
	jobDesc.Placeholder = "Paste the job description here..."
	jobDesc.ShowLineNumbers = false
	jobDesc.CharLimit = 0
	jobDesc.SetValue(cfg.JobDescription)

	picker := filepicker.New()
	picker.AllowedTypes = []string{".pdf"}
	picker.CurrentDirectory = cfg.PickerDir

	m := Model{
		ctx:        ctx,
		theme:      cfg.Theme,
		session:    cfg.Session,
		inputs:     cfg.Inputs,
		keymap:     DefaultKeyMap(),
		help:       help.New(),
		picker:     picker,
		resumePath: resumePath,
		jobDesc:    jobDesc,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(cfg.Theme.Primary)),
		),
		results: viewport.New(cfg.Width, cfg.Height),
		width:   cfg.Width,
		height:  cfg.Height,
	}

	m.resumePath.Focus()
	m.syncInputs()
	m.snapshot = m.session.Snapshot()
	m.handleResize()
	m.refresh()

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, textarea.Blink)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		m.refresh()
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		m.refresh()

	case analysisCompletedMsg:
		m.snapshot = m.session.Complete(msg.attempt, msg.result, msg.err)
		if m.snapshot.Status == analysis.StatusSucceeded {
			m.setFocus(focusResults)
		}
		m.refresh()
		m.results.GotoTop()
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		if !m.snapshot.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Everything else goes to the embedded components (directory listings,
	// cursor blinks).
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	cmds = append(cmds, cmd)
	m.resumePath, cmd = m.resumePath.Update(msg)
	cmds = append(cmds, cmd)
	m.jobDesc, cmd = m.jobDesc.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKey routes a key press according to the current mode and focus.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return tea.Quit
	}

	if m.picking {
		return m.handlePickerKey(msg)
	}

	if m.showHelp {
		m.showHelp = false
		return nil
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keymap.Submit):
		return m.submit()
	case key.Matches(msg, m.keymap.OpenPicker):
		m.picking = true
		return m.picker.Init()
	case key.Matches(msg, m.keymap.ClearScreen):
		return tea.ClearScreen
	case key.Matches(msg, m.keymap.NextFocus):
		return m.setFocus(m.focus.next())
	case key.Matches(msg, m.keymap.PrevFocus):
		return m.setFocus(m.focus.prev())
	case key.Matches(msg, m.keymap.PageUp, m.keymap.PageDown):
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return cmd
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusResume:
		if key.Matches(msg, m.keymap.LoadResume) {
			m.syncInputs()
			return m.setFocus(focusJob)
		}
		m.resumePath, cmd = m.resumePath.Update(msg)

	case focusJob:
		m.jobDesc, cmd = m.jobDesc.Update(msg)
		m.inputs.SetJobDescription(m.jobDesc.Value())

	case focusResults:
		switch {
		case key.Matches(msg, m.keymap.Help):
			m.showHelp = true
		case msg.String() == "q":
			m.quitting = true
			return tea.Quit
		default:
			m.results, cmd = m.results.Update(msg)
		}
	}

	return cmd
}

// handlePickerKey handles keys while the file picker is open.
func (m *Model) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keymap.Quit) {
		m.picking = false
		return nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.picking = false
		m.resumePath.SetValue(path)
		m.syncInputs()
		return tea.Batch(cmd, m.setFocus(focusJob))
	}

	if ok, _ := m.picker.DidSelectDisabledFile(msg); ok {
		m.documentErr = disabledFileMessage
	}

	return cmd
}

// submit starts an analysis. While a request is outstanding this is a no-op.
func (m *Model) submit() tea.Cmd {
	m.syncInputs()

	attempt, err := m.session.Begin()
	m.snapshot = m.session.Snapshot()

	switch {
	case errors.Is(err, analysis.ErrBusy):
		return nil
	case errors.Is(err, common.ErrValidation):
		return nil
	case err != nil:
		slog.Error("Failed to start analysis", "error", err)
		return nil
	}

	return tea.Batch(m.spinner.Tick, runAnalysis(m.ctx, m.session, attempt))
}

// syncInputs pushes the editor contents into the input controller, loading
// the resume when its path changed.
func (m *Model) syncInputs() {
	m.inputs.SetJobDescription(m.jobDesc.Value())

	path := strings.TrimSpace(m.resumePath.Value())
	if path == m.loadedPath {
		return
	}
	m.loadedPath = path
	m.documentErr = ""

	if path == "" {
		m.inputs.SetDocument(nil)
		return
	}

	doc, err := loadDocument(path)
	if err != nil {
		slog.Debug("Failed to load resume", "path", path, "error", err)
		m.documentErr = err.Error()
		m.inputs.SetDocument(nil)
		return
	}
	m.inputs.SetDocument(doc)
}

func loadDocument(path string) (*model.Document, error) {
	resolved, err := config.ResolveDocumentPath(path)
	if err != nil {
		return nil, err
	}
	return model.NewDocument(resolved)
}

// setFocus moves key input to another pane.
func (m *Model) setFocus(f focusArea) tea.Cmd {
	m.focus = f
	m.resumePath.Blur()
	m.jobDesc.Blur()

	switch f {
	case focusResume:
		return m.resumePath.Focus()
	case focusJob:
		return m.jobDesc.Focus()
	default:
		return nil
	}
}

// screen derives the current view model.
func (m Model) screen() viewmodel.Screen {
	return viewmodel.Build(m.snapshot, m.inputs.Snapshot())
}

// refresh re-renders the results pane content.
func (m *Model) refresh() {
	m.results.SetContent(m.formatter.Format(m.screen()))
}
