package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Veraticus/ats-resume-optimizer/internal/model"
	"github.com/Veraticus/ats-resume-optimizer/internal/tui/viewmodel"
)

// JSONReport is the machine-readable output of a successful analysis: the
// result as received plus the derived score presentation.
type JSONReport struct {
	model.AnalysisResult
	Band              viewmodel.Band `json:"band"`
	Proportion        float64        `json:"proportion"`
	DisplayPercentage int            `json:"display_percentage"`
}

// NewJSONReport derives the JSON report for a result.
func NewJSONReport(result model.AnalysisResult) JSONReport {
	score := viewmodel.NewScoreView(result.MatchPercentage)
	return JSONReport{
		AnalysisResult:    result,
		Band:              score.Band,
		Proportion:        score.Proportion,
		DisplayPercentage: score.Percent,
	}
}

// WriteJSON writes the indented JSON report for a result.
func WriteJSON(w io.Writer, result model.AnalysisResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewJSONReport(result)); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
