// Package viewmodel derives everything the renderers display from the
// analysis session state and the current inputs. Nothing here performs I/O.
package viewmodel

// ScreenKind identifies which main panel is displayed.
type ScreenKind int

const (
	// ScreenPlaceholder is shown before any result exists.
	ScreenPlaceholder ScreenKind = iota
	// ScreenBusy is shown while a request is being validated or is in flight.
	ScreenBusy
	// ScreenResult is shown after a successful analysis.
	ScreenResult
	// ScreenFailure is shown after a failed analysis.
	ScreenFailure
)

// Fixed user-facing text.
const (
	PlaceholderTitle = "Ready to Analyze"
	PlaceholderHint  = "Upload your resume and the job description to get a detailed match analysis and improvement plan."

	SubmitLabel = "Analyze Match"
	BusyLabel   = "Analyzing..."

	DocumentPrompt = "Drop your resume here"
	DocumentHint   = "PDF files only"

	ScoreTitle   = "Match Score"
	ScoreCaption = "Match"
)
