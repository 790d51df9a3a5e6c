// Package model defines the data exchanged with the analysis service.
package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedResult indicates a payload that does not match the AnalysisResult shape.
var ErrMalformedResult = errors.New("malformed analysis result")

// AnalysisResult is the compatibility analysis returned by the service.
// It is consumed verbatim: MatchPercentage is not clamped here.
type AnalysisResult struct {
	Summary                      string   `json:"summary"`
	MissingKeywords              []string `json:"missing_keywords"`
	MissingSkills                []string `json:"missing_skills"`
	RecommendedProjects          []string `json:"recommended_projects"`
	ResumeImprovementSuggestions []string `json:"resume_improvement_suggestions"`
	MatchPercentage              float64  `json:"match_percentage"`
}

// Wire field names.
const (
	FieldMatchPercentage              = "match_percentage"
	FieldSummary                      = "summary"
	FieldMissingKeywords              = "missing_keywords"
	FieldMissingSkills                = "missing_skills"
	FieldRecommendedProjects          = "recommended_projects"
	FieldResumeImprovementSuggestions = "resume_improvement_suggestions"
)

// DecodeAnalysisResult parses a service payload.
// Every field must be present with the right JSON type; a null list counts as
// empty. Unknown fields are ignored.
func DecodeAnalysisResult(data []byte) (AnalysisResult, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return AnalysisResult{}, fmt.Errorf("%w: %v", ErrMalformedResult, err)
	}
	if fields == nil {
		return AnalysisResult{}, fmt.Errorf("%w: payload is not an object", ErrMalformedResult)
	}

	var result AnalysisResult

	if err := decodeScalar(fields, FieldMatchPercentage, &result.MatchPercentage); err != nil {
		return AnalysisResult{}, err
	}
	if err := decodeScalar(fields, FieldSummary, &result.Summary); err != nil {
		return AnalysisResult{}, err
	}

	lists := []struct {
		dest *[]string
		name string
	}{
		{name: FieldMissingKeywords, dest: &result.MissingKeywords},
		{name: FieldMissingSkills, dest: &result.MissingSkills},
		{name: FieldRecommendedProjects, dest: &result.RecommendedProjects},
		{name: FieldResumeImprovementSuggestions, dest: &result.ResumeImprovementSuggestions},
	}
	for _, list := range lists {
		if err := decodeList(fields, list.name, list.dest); err != nil {
			return AnalysisResult{}, err
		}
	}

	return result, nil
}

func decodeScalar(fields map[string]json.RawMessage, name string, dest any) error {
	raw, ok := fields[name]
	if !ok {
		return fmt.Errorf("%w: missing field %q", ErrMalformedResult, name)
	}
	if isNull(raw) {
		return fmt.Errorf("%w: field %q is null", ErrMalformedResult, name)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("%w: field %q: %v", ErrMalformedResult, name, err)
	}
	return nil
}

func decodeList(fields map[string]json.RawMessage, name string, dest *[]string) error {
	raw, ok := fields[name]
	if !ok {
		return fmt.Errorf("%w: missing field %q", ErrMalformedResult, name)
	}
	var items []string
	if !isNull(raw) {
		if err := json.Unmarshal(raw, &items); err != nil {
			return fmt.Errorf("%w: field %q: %v", ErrMalformedResult, name, err)
		}
	}
	if items == nil {
		items = []string{}
	}
	*dest = items
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// Clone returns a deep copy so callers cannot mutate session-owned data.
func (r AnalysisResult) Clone() AnalysisResult {
	clone := r
	clone.MissingKeywords = cloneStrings(r.MissingKeywords)
	clone.MissingSkills = cloneStrings(r.MissingSkills)
	clone.RecommendedProjects = cloneStrings(r.RecommendedProjects)
	clone.ResumeImprovementSuggestions = cloneStrings(r.ResumeImprovementSuggestions)
	return clone
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
