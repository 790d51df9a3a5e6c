package viewmodel

import "fmt"

// String returns a string representation of the screen kind.
func (k ScreenKind) String() string {
	switch k {
	case ScreenPlaceholder:
		return "Placeholder"
	case ScreenBusy:
		return "Busy"
	case ScreenResult:
		return "Result"
	case ScreenFailure:
		return "Failure"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// String returns the lower-case band name used in JSON output.
func (b Band) String() string {
	switch b {
	case BandPositive:
		return "positive"
	case BandCaution:
		return "caution"
	case BandNegative:
		return "negative"
	default:
		return fmt.Sprintf("unknown(%d)", int(b))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (b Band) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// IsReady reports whether the submit control accepts input.
func (s Screen) IsReady() bool {
	return s.Input.SubmitEnabled
}

// HasResult reports whether the screen shows an analysis result.
func (s Screen) HasResult() bool {
	return s.Kind == ScreenResult && s.Score != nil
}

// SectionByTitle returns the named section.
func (s Screen) SectionByTitle(title string) (Section, bool) {
	for _, section := range s.Sections {
		if section.Title == title {
			return section, true
		}
	}
	return Section{}, false
}
