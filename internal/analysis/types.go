// Package analysis tracks the lifecycle of a resume analysis request.
package analysis

import (
	"errors"
	"time"

	"github.com/Veraticus/ats-resume-optimizer/internal/model"
	"github.com/Veraticus/ats-resume-optimizer/internal/service"
)

// Status represents the current state of an analysis session.
type Status string

const (
	// StatusIdle indicates no request has been issued since the last reset.
	StatusIdle Status = "idle"
	// StatusValidating indicates the inputs are being checked before submission.
	StatusValidating Status = "validating"
	// StatusInFlight indicates a request to the analysis service is outstanding.
	StatusInFlight Status = "in_flight"
	// StatusSucceeded indicates the last request returned a well-formed result.
	StatusSucceeded Status = "succeeded"
	// StatusFailed indicates the last request failed.
	StatusFailed Status = "failed"
)

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// AcceptsSubmit reports whether a new submission may start from this status.
func (s Status) AcceptsSubmit() bool {
	return s != StatusInFlight && s != StatusValidating
}

// IsTerminal reports whether the status holds the outcome of a request.
func (s Status) IsTerminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// FailureMessage is the only failure text shown to the user.
const FailureMessage = "An error occurred during analysis. Please try again."

// ErrBusy is returned when a submission is attempted while one is in flight.
var ErrBusy = errors.New("analysis already in flight")

// Snapshot is an immutable copy of the session state.
// Result is non-nil only when Status is StatusSucceeded and ErrorMessage is
// non-empty only when Status is StatusFailed.
type Snapshot struct {
	StartedAt    time.Time
	Result       *model.AnalysisResult
	Status       Status
	ErrorMessage string
	Notice       string
	AttemptID    string
	Attempts     int
}

// HasResult reports whether the snapshot carries an analysis result.
func (s Snapshot) HasResult() bool {
	return s.Result != nil
}

// HasError reports whether the snapshot carries a failure message.
func (s Snapshot) HasError() bool {
	return s.ErrorMessage != ""
}

// Busy reports whether submission is currently disabled.
func (s Snapshot) Busy() bool {
	return !s.Status.AcceptsSubmit()
}

// Attempt is one accepted submission.
type Attempt struct {
	StartedAt time.Time
	ID        string
	Request   service.AnalysisRequest
}

// Listener is called after every state transition.
type Listener func(Snapshot)
