package themes

import (
	"github.com/Veraticus/ats-resume-optimizer/internal/tui/viewmodel"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI and the one-shot report.
type Theme struct {
	Title          lipgloss.Style
	Subtitle       lipgloss.Style
	Normal         lipgloss.Style
	Bold           lipgloss.Style
	Italic         lipgloss.Style
	Subtle         lipgloss.Style
	Panel          lipgloss.Style
	FocusedPanel   lipgloss.Style
	AccentPanel    lipgloss.Style
	Button         lipgloss.Style
	ButtonDisabled lipgloss.Style
	Badge          lipgloss.Style
	Notice         lipgloss.Style
	ErrorBox       lipgloss.Style
	StatusSuccess  lipgloss.Style
	StatusWarning  lipgloss.Style
	StatusError    lipgloss.Style
	StatusInfo     lipgloss.Style
	ProgressEmpty  lipgloss.Style
	Primary        lipgloss.Color
	Secondary      lipgloss.Color
	Success        lipgloss.Color
	Warning        lipgloss.Color
	Error          lipgloss.Color
	Info           lipgloss.Color
	Background     lipgloss.Color
	Foreground     lipgloss.Color
	Border         lipgloss.Color
	Muted          lipgloss.Color
	Name           string
}

// Palette is the set of colours a theme is built from.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Info       lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
	Border     lipgloss.Color
	Muted      lipgloss.Color
	Dim        lipgloss.Color
}

// New builds a theme from a palette.
func New(name string, p Palette) Theme {
	return Theme{
		Name:       name,
		Primary:    p.Primary,
		Secondary:  p.Secondary,
		Success:    p.Success,
		Warning:    p.Warning,
		Error:      p.Error,
		Info:       p.Info,
		Background: p.Background,
		Foreground: p.Foreground,
		Border:     p.Border,
		Muted:      p.Muted,

		// Text styles
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.Dim),
		Normal: lipgloss.NewStyle().
			Foreground(p.Foreground),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Foreground),
		Italic: lipgloss.NewStyle().
			Italic(true).
			Foreground(p.Muted),
		Subtle: lipgloss.NewStyle().
			Foreground(p.Muted),

		// Component styles
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		FocusedPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary).
			Padding(0, 1),
		AccentPanel: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(p.Secondary).
			Padding(0, 1),
		Button: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Background).
			Background(p.Primary).
			Padding(0, 2),
		ButtonDisabled: lipgloss.NewStyle().
			Foreground(p.Foreground).
			Background(p.Muted).
			Padding(0, 2),
		Badge: lipgloss.NewStyle().
			Padding(0, 1),
		Notice: lipgloss.NewStyle().
			Foreground(p.Warning),
		ErrorBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Error).
			Foreground(p.Error).
			Padding(0, 1),
		ProgressEmpty: lipgloss.NewStyle().
			Foreground(p.Border),

		// Status styles
		StatusSuccess: lipgloss.NewStyle().
			Foreground(p.Success).
			Bold(true),
		StatusWarning: lipgloss.NewStyle().
			Foreground(p.Warning).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(p.Error).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(p.Info).
			Bold(true),
	}
}

// Default is the default theme.
var Default = New("default", Palette{
	Primary:    lipgloss.Color("#6366f1"),
	Secondary:  lipgloss.Color("#a855f7"),
	Success:    lipgloss.Color("#10b981"),
	Warning:    lipgloss.Color("#f59e0b"),
	Error:      lipgloss.Color("#ef4444"),
	Info:       lipgloss.Color("#3b82f6"),
	Background: lipgloss.Color("#1a1a1a"),
	Foreground: lipgloss.Color("#fafafa"),
	Border:     lipgloss.Color("#404040"),
	Muted:      lipgloss.Color("#737373"),
	Dim:        lipgloss.Color("#a3a3a3"),
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = New("catppuccin-mocha", Palette{
	Primary:    lipgloss.Color("#cba6f7"),
	Secondary:  lipgloss.Color("#f5c2e7"),
	Success:    lipgloss.Color("#a6e3a1"),
	Warning:    lipgloss.Color("#f9e2af"),
	Error:      lipgloss.Color("#f38ba8"),
	Info:       lipgloss.Color("#89dceb"),
	Background: lipgloss.Color("#1e1e2e"),
	Foreground: lipgloss.Color("#cdd6f4"),
	Border:     lipgloss.Color("#45475a"),
	Muted:      lipgloss.Color("#6c7086"),
	Dim:        lipgloss.Color("#a6adc8"),
})

// Names lists the selectable themes.
func Names() []string {
	return []string{Default.Name, CatppuccinMocha.Name}
}

// IsValid reports whether name selects a theme.
func IsValid(name string) bool {
	for _, n := range Names() {
		if n == name {
			return true
		}
	}
	return false
}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

// BandStyle returns the style for a score band. Band colours are the same in
// every theme.
func (t Theme) BandStyle(b viewmodel.Band) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(b.Color()))
}

// ToneColor returns the accent colour of a result section.
func (t Theme) ToneColor(tone viewmodel.Tone) lipgloss.Color {
	switch tone {
	case viewmodel.ToneAlert:
		return t.Error
	case viewmodel.ToneWarning:
		return t.Warning
	case viewmodel.ToneSuccess:
		return t.Success
	default:
		return t.Secondary
	}
}

// ToneStyle returns the heading style of a result section.
func (t Theme) ToneStyle(tone viewmodel.Tone) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(t.ToneColor(tone))
}

// BadgeStyle returns the style for a single list entry rendered as a badge.
func (t Theme) BadgeStyle(tone viewmodel.Tone) lipgloss.Style {
	return t.Badge.Foreground(t.ToneColor(tone))
}
