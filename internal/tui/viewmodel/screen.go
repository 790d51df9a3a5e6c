package viewmodel

import (
	"strings"
	"unicode/utf8"

	"github.com/Veraticus/ats-resume-optimizer/internal/analysis"
	"github.com/Veraticus/ats-resume-optimizer/internal/input"
	"github.com/Veraticus/ats-resume-optimizer/internal/model"
	"github.com/dustin/go-humanize"
)

// Tone selects the accent used for a result section.
type Tone int

const (
	// ToneAlert is used for missing keywords.
	ToneAlert Tone = iota
	// ToneWarning is used for missing skills.
	ToneWarning
	// ToneAccent is used for project recommendations.
	ToneAccent
	// ToneSuccess is used for improvement suggestions.
	ToneSuccess
)

// Section titles and the phrases shown when a section is empty.
const (
	MissingKeywordsTitle = "Missing Keywords"
	MissingSkillsTitle   = "Missing Skills"
	ProjectsTitle        = "Project Recommendations"
	ImprovementsTitle    = "Improvement Guide"

	MissingKeywordsFallback = "No critical keywords missing!"
	MissingSkillsFallback   = "Skills look good!"
	ProjectsFallback        = "No project recommendations."
	ImprovementsFallback    = "No improvement suggestions."
)

// Section is one list of the analysis result.
type Section struct {
	Title    string
	Fallback string
	Items    []string
	Tone     Tone
}

// IsEmpty reports whether the section renders its fallback.
func (s Section) IsEmpty() bool {
	return len(s.Items) == 0
}

// Lines returns the entries to render, or the fallback phrase.
func (s Section) Lines() []string {
	if s.IsEmpty() {
		return []string{s.Fallback}
	}
	return s.Items
}

// InputPanel describes the two inputs and the submit control.
type InputPanel struct {
	DocumentLabel       string
	DocumentHint        string
	DocumentSize        string
	SubmitLabel         string
	JobDescription      string
	JobDescriptionChars int
	HasDocument         bool
	DocumentIsPDF       bool
	HasJob              bool
	SubmitEnabled       bool
}

// Screen is everything a renderer needs for one frame.
type Screen struct {
	Score        *ScoreView
	Notice       string
	ErrorMessage string
	Summary      string
	Sections     []Section
	Input        InputPanel
	Kind         ScreenKind
	Attempts     int
}

// Build derives the screen from the session snapshot and the inputs.
func Build(snap analysis.Snapshot, in input.Inputs) Screen {
	screen := Screen{
		Kind:     ScreenPlaceholder,
		Notice:   snap.Notice,
		Attempts: snap.Attempts,
		Input:    buildInputPanel(in, snap.Busy()),
	}

	switch snap.Status {
	case analysis.StatusValidating, analysis.StatusInFlight:
		screen.Kind = ScreenBusy
	case analysis.StatusSucceeded:
		if snap.Result == nil {
			break
		}
		score := NewScoreView(snap.Result.MatchPercentage)
		screen.Kind = ScreenResult
		screen.Score = &score
		screen.Summary = snap.Result.Summary
		screen.Sections = BuildSections(*snap.Result)
	case analysis.StatusFailed:
		screen.Kind = ScreenFailure
		screen.ErrorMessage = snap.ErrorMessage
	}

	return screen
}

// BuildSections returns the four result lists in display order.
func BuildSections(result model.AnalysisResult) []Section {
	return []Section{
		{Title: MissingKeywordsTitle, Items: result.MissingKeywords, Fallback: MissingKeywordsFallback, Tone: ToneAlert},
		{Title: MissingSkillsTitle, Items: result.MissingSkills, Fallback: MissingSkillsFallback, Tone: ToneWarning},
		{Title: ProjectsTitle, Items: result.RecommendedProjects, Fallback: ProjectsFallback, Tone: ToneAccent},
		{Title: ImprovementsTitle, Items: result.ResumeImprovementSuggestions, Fallback: ImprovementsFallback, Tone: ToneSuccess},
	}
}

func buildInputPanel(in input.Inputs, busy bool) InputPanel {
	panel := InputPanel{
		DocumentLabel:       DocumentPrompt,
		DocumentHint:        DocumentHint,
		JobDescription:      in.JobDescription,
		HasJob:              strings.TrimSpace(in.JobDescription) != "",
		JobDescriptionChars: utf8.RuneCountInString(in.JobDescription),
		SubmitLabel:         SubmitLabel,
		SubmitEnabled:       !busy,
	}

	if in.Document != nil {
		panel.HasDocument = true
		panel.DocumentLabel = in.Document.Name
		panel.DocumentIsPDF = in.Document.LooksLikePDF()
		panel.DocumentSize = humanize.Bytes(uint64(max(in.Document.Size, 0)))
	}

	if busy {
		panel.SubmitLabel = BusyLabel
	}

	return panel
}
