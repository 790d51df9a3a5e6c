package tui

import (
	"github.com/Veraticus/ats-resume-optimizer/internal/analysis"
	"github.com/Veraticus/ats-resume-optimizer/internal/model"
)

// analysisCompletedMsg carries the outcome of the transport call for an attempt.
type analysisCompletedMsg struct {
	err     error
	attempt *analysis.Attempt
	result  model.AnalysisResult
}

// focusArea identifies which pane receives key input.
type focusArea int

const (
	focusResume focusArea = iota
	focusJob
	focusResults
)

func (f focusArea) next() focusArea {
	return (f + 1) % 3
}

func (f focusArea) prev() focusArea {
	return (f + 2) % 3
}
