// Package input owns the two values a user must provide before an analysis
// can be submitted: the resume document and the job description.
package input

import (
	"strings"
	"sync"

	"github.com/Veraticus/ats-resume-optimizer/internal/common"
	"github.com/Veraticus/ats-resume-optimizer/internal/model"
)

// ValidationMessage is shown when a submission is attempted with missing inputs.
const ValidationMessage = "Please upload a resume and provide a job description."

// ValidationError reports which inputs were missing at submission time.
type ValidationError struct {
	MissingDocument       bool
	MissingJobDescription bool
}

func (e *ValidationError) Error() string {
	return ValidationMessage
}

// Is makes errors.Is(err, common.ErrValidation) hold.
func (e *ValidationError) Is(target error) bool {
	return target == common.ErrValidation
}

// Missing lists the missing inputs by name.
func (e *ValidationError) Missing() []string {
	var missing []string
	if e.MissingDocument {
		missing = append(missing, "resume")
	}
	if e.MissingJobDescription {
		missing = append(missing, "job_description")
	}
	return missing
}

// Inputs is a point-in-time copy of the controller state.
type Inputs struct {
	Document       *model.Document
	JobDescription string
}

// HasDocument reports whether a document has been chosen.
func (i Inputs) HasDocument() bool {
	return i.Document != nil
}

// IsEmpty reports whether neither input has been provided.
func (i Inputs) IsEmpty() bool {
	return i.Document == nil && strings.TrimSpace(i.JobDescription) == ""
}

// Controller holds the document reference and job description text.
type Controller struct {
	document       *model.Document
	jobDescription string
	mu             sync.RWMutex
}

// NewController creates a controller with empty inputs.
func NewController() *Controller {
	return &Controller{}
}

// SetDocument replaces the current document. No format check happens here.
// A nil document clears the selection.
func (c *Controller) SetDocument(doc *model.Document) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.document = doc
}

// SetJobDescription replaces the current job description text.
func (c *Controller) SetJobDescription(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jobDescription = text
}

// Validate checks that both inputs are present. It has no side effects.
func (c *Controller) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.validateLocked()
}

// ValidatedSnapshot validates and copies the inputs under a single lock, so
// the returned inputs are exactly the ones that passed validation.
func (c *Controller) ValidatedSnapshot() (Inputs, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := c.validateLocked(); err != nil {
		return Inputs{}, err
	}
	return c.snapshotLocked(), nil
}

func (c *Controller) validateLocked() error {
	verr := &ValidationError{
		MissingDocument:       c.document == nil,
		MissingJobDescription: strings.TrimSpace(c.jobDescription) == "",
	}
	if verr.MissingDocument || verr.MissingJobDescription {
		return verr
	}
	return nil
}

// Snapshot returns the current inputs.
func (c *Controller) Snapshot() Inputs {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Inputs {
	return Inputs{
		Document:       c.document,
		JobDescription: c.jobDescription,
	}
}
