// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/ats-resume-optimizer/internal/model"
)

// AnalysisRequest carries the inputs of one submission to the analysis service.
type AnalysisRequest struct {
	Document       *model.Document
	RequestID      string
	JobDescription string
}

// Analyzer is the contract of the external analysis service.
// Any failure, including a payload that does not match the result shape,
// is reported as an error wrapping common.ErrAnalysis.
type Analyzer interface {
	Analyze(ctx context.Context, req AnalysisRequest) (model.AnalysisResult, error)
}

// HealthChecker reports whether the analysis service is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) (string, error)
}

// AnalyzerFunc adapts a function to the Analyzer interface.
type AnalyzerFunc func(ctx context.Context, req AnalysisRequest) (model.AnalysisResult, error)

// Analyze implements Analyzer.
func (f AnalyzerFunc) Analyze(ctx context.Context, req AnalysisRequest) (model.AnalysisResult, error) {
	return f(ctx, req)
}
