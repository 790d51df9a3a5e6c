package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Veraticus/ats-resume-optimizer/internal/common"
	"github.com/Veraticus/ats-resume-optimizer/internal/input"
	"github.com/Veraticus/ats-resume-optimizer/internal/model"
	"github.com/Veraticus/ats-resume-optimizer/internal/service"
	"github.com/google/uuid"
)

// Inputs is the part of the input controller the session depends on.
type Inputs interface {
	ValidatedSnapshot() (input.Inputs, error)
}

// Option configures a Session.
type Option func(*Session)

// WithTimeout bounds each request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) {
		s.timeout = d
	}
}

// WithClock overrides the time source used for attempt timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// Session is the state machine for a single user's analysis requests.
// At most one request is outstanding at a time and all transitions are
// serialized.
type Session struct {
	inputs         Inputs
	analyzer       service.Analyzer
	now            func() time.Time
	listeners      map[int]Listener
	current        *Attempt
	result         *model.AnalysisResult
	status         Status
	errorMessage   string
	notice         string
	lastAttemptID  string
	lastStartedAt  time.Time
	attempts       int
	nextListenerID int
	timeout        time.Duration
	mu             sync.Mutex
}

// NewSession creates a session in the Idle state.
func NewSession(inputs Inputs, analyzer service.Analyzer, opts ...Option) *Session {
	s := &Session{
		inputs:    inputs,
		analyzer:  analyzer,
		now:       time.Now,
		listeners: make(map[int]Listener),
		status:    StatusIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers a listener for state transitions and returns a function
// that removes it. Listeners run outside the session lock.
func (s *Session) Subscribe(l Listener) func() {
	s.mu.Lock()
	id := s.nextListenerID
	s.nextListenerID++
	s.listeners[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Submit runs a whole submission cycle synchronously: validation, the
// transport call and the completion transition. It returns ErrBusy when a
// request is already in flight, the validation error when inputs are missing,
// and an error wrapping common.ErrAnalysis when the request failed.
func (s *Session) Submit(ctx context.Context) error {
	attempt, err := s.Begin()
	if err != nil {
		return err
	}

	result, err := s.Execute(ctx, attempt)
	s.Complete(attempt, result, err)
	if err != nil {
		return fmt.Errorf("analysis %s: %w", attempt.ID, err)
	}
	return nil
}

// Begin validates the inputs and, on success, moves the session to InFlight.
// The caller must pass the returned attempt to Execute and then Complete.
func (s *Session) Begin() (*Attempt, error) {
	s.mu.Lock()

	if !s.status.AcceptsSubmit() {
		status := s.status
		s.mu.Unlock()
		slog.Debug("Ignoring submit while busy", "status", status)
		return nil, ErrBusy
	}

	s.result = nil
	s.errorMessage = ""
	s.notice = ""
	s.transitionLocked(StatusValidating)
	transitions := []Snapshot{s.snapshotLocked()}

	in, err := s.inputs.ValidatedSnapshot()
	if err != nil {
		s.notice = err.Error()
		s.transitionLocked(StatusIdle)
		transitions = append(transitions, s.snapshotLocked())
		s.mu.Unlock()

		s.notify(transitions)
		return nil, err
	}

	attempt := &Attempt{
		ID:        uuid.NewString(),
		StartedAt: s.now(),
		Request: service.AnalysisRequest{
			Document:       in.Document,
			JobDescription: in.JobDescription,
		},
	}
	attempt.Request.RequestID = attempt.ID

	s.current = attempt
	s.attempts++
	s.lastAttemptID = attempt.ID
	s.lastStartedAt = attempt.StartedAt
	s.transitionLocked(StatusInFlight)
	transitions = append(transitions, s.snapshotLocked())
	s.mu.Unlock()

	s.notify(transitions)
	return attempt, nil
}

// Execute performs the transport call for an attempt. It does not change the
// session state.
func (s *Session) Execute(ctx context.Context, attempt *Attempt) (model.AnalysisResult, error) {
	if attempt == nil {
		return model.AnalysisResult{}, fmt.Errorf("%w: no attempt to execute", common.ErrAnalysis)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	result, err := s.analyzer.Analyze(ctx, attempt.Request)
	if err != nil {
		if !errors.Is(err, common.ErrAnalysis) {
			err = fmt.Errorf("%w: %w", common.ErrAnalysis, err)
		}
		return model.AnalysisResult{}, err
	}
	return result, nil
}

// Complete records the outcome of an attempt. Completions for anything other
// than the outstanding attempt are ignored.
func (s *Session) Complete(attempt *Attempt, result model.AnalysisResult, err error) Snapshot {
	s.mu.Lock()

	if attempt == nil || s.current == nil || s.current.ID != attempt.ID || s.status != StatusInFlight {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		slog.Warn("Ignoring completion for an attempt that is not outstanding", "status", snap.Status)
		return snap
	}

	s.current = nil
	if err != nil {
		common.LogError(err, "Analysis request failed", common.Fields{
			"attempt_id": attempt.ID,
			"elapsed":    s.now().Sub(attempt.StartedAt),
		})
		s.errorMessage = FailureMessage
		s.transitionLocked(StatusFailed)
	} else {
		stored := result.Clone()
		s.result = &stored
		s.transitionLocked(StatusSucceeded)
	}

	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify([]Snapshot{snap})
	return snap
}

func (s *Session) transitionLocked(to Status) {
	slog.Debug("Analysis session transition",
		"from", s.status,
		"to", to,
		"attempt_id", s.lastAttemptID)
	s.status = to
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		Status:       s.status,
		ErrorMessage: s.errorMessage,
		Notice:       s.notice,
		AttemptID:    s.lastAttemptID,
		Attempts:     s.attempts,
		StartedAt:    s.lastStartedAt,
	}
	if s.result != nil {
		clone := s.result.Clone()
		snap.Result = &clone
	}
	return snap
}

func (s *Session) notify(transitions []Snapshot) {
	s.mu.Lock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	listeners := make([]Listener, 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, s.listeners[id])
	}
	s.mu.Unlock()

	for _, snap := range transitions {
		for _, l := range listeners {
			l(snap)
		}
	}
}
