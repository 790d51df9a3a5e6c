package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/Veraticus/ats-resume-optimizer/internal/analysis"
	"github.com/Veraticus/ats-resume-optimizer/internal/input"
	"github.com/Veraticus/ats-resume-optimizer/internal/model"
	"github.com/Veraticus/ats-resume-optimizer/internal/service"
	tuitesting "github.com/Veraticus/ats-resume-optimizer/internal/tui/testing"
	"github.com/Veraticus/ats-resume-optimizer/internal/tui/viewmodel"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() model.AnalysisResult {
	return model.AnalysisResult{
		MatchPercentage:              85,
		Summary:                      "Good fit",
		MissingKeywords:              []string{},
		MissingSkills:                []string{"SQL"},
		RecommendedProjects:          []string{"Build a CRUD API"},
		ResumeImprovementSuggestions: []string{"Quantify achievements"},
	}
}

type fakeAnalyzer struct {
	results []error
	calls   atomic.Int32
}

func (f *fakeAnalyzer) Analyze(context.Context, service.AnalysisRequest) (model.AnalysisResult, error) {
	n := int(f.calls.Add(1))
	if n <= len(f.results) && f.results[n-1] != nil {
		return model.AnalysisResult{}, f.results[n-1]
	}
	return sampleResult(), nil
}

func writeResume(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 resume"), 0o600))
	return path
}

func newTestModel(t *testing.T, analyzer service.Analyzer, opts ...Option) (*tuitesting.Harness, *analysis.Session, *input.Controller) {
	t.Helper()

	inputs := input.NewController()
	session := analysis.NewSession(inputs, analyzer)

	cfg := defaultConfig()
	cfg.Width, cfg.Height = 140, 50
	WithSession(session, inputs)(&cfg)
	for _, opt := range opts {
		opt(&cfg)
	}

	return tuitesting.NewHarness(newModel(context.Background(), cfg)), session, inputs
}

func isCompletion(msg tea.Msg) bool {
	_, ok := msg.(analysisCompletedMsg)
	return ok
}

func ctrlS() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyCtrlS}
}

func TestModelInitialView(t *testing.T) {
	h, _, _ := newTestModel(t, &fakeAnalyzer{})
	view := tuitesting.PlainView(h.Output)

	assert.Contains(t, view, appTitle)
	assert.Contains(t, view, viewmodel.PlaceholderTitle)
	assert.Contains(t, view, viewmodel.DocumentPrompt)
	assert.Contains(t, view, viewmodel.DocumentHint)
	assert.Contains(t, view, viewmodel.SubmitLabel)
	assert.Contains(t, view, "Ready")
}

func TestModelSubmitWithoutInputs(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	h, session, _ := newTestModel(t, analyzer)

	cmd := h.Send(ctrlS())
	assert.Nil(t, cmd)

	assert.Equal(t, analysis.StatusIdle, session.Snapshot().Status)
	assert.Contains(t, tuitesting.PlainView(h.Output), input.ValidationMessage)
	assert.Zero(t, analyzer.calls.Load())
}

func TestModelSubmitFlow(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	h, session, inputs := newTestModel(t, analyzer,
		WithResumePath(writeResume(t, "resume.pdf")),
		WithJobDescription("Backend engineer with Go and SQL"),
	)

	require.True(t, inputs.Snapshot().HasDocument())

	cmd := h.Send(ctrlS())
	require.NotNil(t, cmd)
	assert.Equal(t, analysis.StatusInFlight, session.Snapshot().Status)
	assert.Contains(t, tuitesting.PlainView(h.Output), viewmodel.BusyLabel)

	assert.Nil(t, h.Send(ctrlS()), "submit while in flight must be a no-op")

	msgs := tuitesting.Collect(cmd, isCompletion)
	require.Len(t, msgs, 1)
	assert.Equal(t, int32(1), analyzer.calls.Load())

	h.Send(msgs[0])

	assert.Equal(t, analysis.StatusSucceeded, session.Snapshot().Status)
	view := tuitesting.PlainView(h.Output)
	assert.True(t, tuitesting.ContainsInOrder(view,
		viewmodel.ScoreTitle,
		"85%",
		"Good fit",
		viewmodel.MissingKeywordsFallback,
		"SQL",
		"Build a CRUD API",
		"Quantify achievements",
	), view)
	assert.Contains(t, view, "Done")
	assert.NotContains(t, view, viewmodel.PlaceholderTitle)
}

func TestModelFailureThenRetry(t *testing.T) {
	analyzer := &fakeAnalyzer{results: []error{errors.New("connection refused")}}
	h, session, _ := newTestModel(t, analyzer,
		WithResumePath(writeResume(t, "resume.pdf")),
		WithJobDescription("Backend engineer"),
	)

	msgs := tuitesting.Collect(h.Send(ctrlS()), isCompletion)
	require.Len(t, msgs, 1)
	h.Send(msgs[0])

	assert.Equal(t, analysis.StatusFailed, session.Snapshot().Status)
	assert.Contains(t, tuitesting.PlainView(h.Output), analysis.FailureMessage)

	msgs = tuitesting.Collect(h.Send(ctrlS()), isCompletion)
	require.Len(t, msgs, 1)
	h.Send(msgs[0])

	view := tuitesting.PlainView(h.Output)
	assert.Equal(t, analysis.StatusSucceeded, session.Snapshot().Status)
	assert.NotContains(t, view, analysis.FailureMessage)
	assert.Contains(t, view, "85%")
}

func TestModelTypingInputs(t *testing.T) {
	resume := writeResume(t, "resume.pdf")
	h, _, inputs := newTestModel(t, &fakeAnalyzer{})

	h.Type(resume)
	h.Press(tea.KeyEnter)

	snap := inputs.Snapshot()
	require.True(t, snap.HasDocument())
	assert.Equal(t, "resume.pdf", snap.Document.Name)

	h.Type("Go")
	assert.Equal(t, "Go", inputs.Snapshot().JobDescription)
	assert.Contains(t, tuitesting.PlainView(h.Output), "(2 chars)")
}

func TestModelBadResumePath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.pdf")
	h, _, inputs := newTestModel(t, &fakeAnalyzer{}, WithResumePath(missing))

	assert.False(t, inputs.Snapshot().HasDocument())
	assert.Contains(t, tuitesting.PlainView(h.Output), "failed to stat document")

	h.Send(ctrlS())
	assert.Contains(t, tuitesting.PlainView(h.Output), input.ValidationMessage)
}

func TestModelNonPDFWarning(t *testing.T) {
	h, _, inputs := newTestModel(t, &fakeAnalyzer{}, WithResumePath(writeResume(t, "resume.docx")))

	assert.True(t, inputs.Snapshot().HasDocument())
	assert.Contains(t, tuitesting.PlainView(h.Output), "Not a .pdf file")
}

func TestModelQuit(t *testing.T) {
	h, _, _ := newTestModel(t, &fakeAnalyzer{})

	cmd := h.Press(tea.KeyEsc)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, h.Output)
}

func TestModelQuitKeyOnlyInResults(t *testing.T) {
	h, _, inputs := newTestModel(t, &fakeAnalyzer{})

	h.Press(tea.KeyTab)
	h.Type("q")
	assert.Equal(t, "q", inputs.Snapshot().JobDescription)

	h.Press(tea.KeyTab)
	cmd := h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModelHelpOverlay(t *testing.T) {
	h, _, _ := newTestModel(t, &fakeAnalyzer{})

	h.Press(tea.KeyShiftTab)
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	assert.Contains(t, tuitesting.PlainView(h.Output), "Press any key to close help")

	h.Press(tea.KeySpace)
	assert.NotContains(t, tuitesting.PlainView(h.Output), "Press any key to close help")
}

func TestModelPicker(t *testing.T) {
	h, _, _ := newTestModel(t, &fakeAnalyzer{}, WithPickerDir(t.TempDir()))

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.Contains(t, tuitesting.PlainView(h.Output), "Select your resume")

	h.Press(tea.KeyEsc)
	view := tuitesting.PlainView(h.Output)
	assert.NotContains(t, view, "Select your resume")
	assert.Contains(t, view, viewmodel.PlaceholderTitle)
}

func TestModelLayouts(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
	}{
		{name: "wide", width: 160, height: 50},
		{name: "narrow", width: 80, height: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, _ := newTestModel(t, &fakeAnalyzer{})
			h.Resize(tt.width, tt.height)

			view := tuitesting.PlainView(h.Output)
			assert.Contains(t, view, viewmodel.SubmitLabel)
			assert.Contains(t, view, viewmodel.PlaceholderTitle)
		})
	}
}

func TestRunRequiresSession(t *testing.T) {
	err := Run(context.Background())
	assert.Error(t, err)
}
