package tui

import (
	"github.com/Veraticus/ats-resume-optimizer/internal/analysis"
	"github.com/Veraticus/ats-resume-optimizer/internal/input"
	"github.com/Veraticus/ats-resume-optimizer/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme          themes.Theme
	Session        *analysis.Session
	Inputs         *input.Controller
	ResumePath     string
	JobDescription string
	PickerDir      string
	Width          int
	Height         int
	MouseSupport   bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:        themes.Default,
		Width:        80,
		Height:       24,
		PickerDir:    ".",
		MouseSupport: true,
	}
}

// WithSession sets the analysis session and the input controller it validates.
func WithSession(session *analysis.Session, inputs *input.Controller) Option {
	return func(c *Config) {
		c.Session = session
		c.Inputs = inputs
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithResumePath pre-fills the resume path.
func WithResumePath(path string) Option {
	return func(c *Config) {
		c.ResumePath = path
	}
}

// WithJobDescription pre-fills the job description.
func WithJobDescription(text string) Option {
	return func(c *Config) {
		c.JobDescription = text
	}
}

// WithPickerDir sets the directory the file picker opens in.
func WithPickerDir(dir string) Option {
	return func(c *Config) {
		c.PickerDir = dir
	}
}

// WithMouse enables or disables mouse support.
func WithMouse(enabled bool) Option {
	return func(c *Config) {
		c.MouseSupport = enabled
	}
}
