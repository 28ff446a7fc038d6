package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/pthm/dilint/internal/diag"
)

// Styles contains all lipgloss styles for terminal output
type Styles struct {
	enabled bool

	// Severity styles
	Error      lipgloss.Style
	Warning    lipgloss.Style
	Suggestion lipgloss.Style
	Info       lipgloss.Style
	Success    lipgloss.Style

	// Structural styles
	Header    lipgloss.Style
	Path      lipgloss.Style
	Code      lipgloss.Style
	Context   lipgloss.Style
	Key       lipgloss.Style
	Separator lipgloss.Style

	// Icons (degraded to ASCII when not interactive)
	IconError      string
	IconWarning    string
	IconSuggestion string
	IconInfo       string
	IconSuccess    string
}

// NewStyles creates a new Styles instance.
// When enabled is false, styles return text unchanged (for non-TTY output)
func NewStyles(enabled bool) *Styles {
	s := &Styles{enabled: enabled}

	if !enabled {
		plain := lipgloss.NewStyle()
		s.Error, s.Warning, s.Suggestion, s.Info, s.Success = plain, plain, plain, plain, plain
		s.Header, s.Path, s.Code, s.Context, s.Key, s.Separator = plain, plain, plain, plain, plain, plain

		s.IconError = "ERROR:"
		s.IconWarning = "WARN:"
		s.IconSuggestion = "HINT:"
		s.IconInfo = "INFO:"
		s.IconSuccess = "OK:"
		return s
	}

	gray := lipgloss.Color("8")

	s.Error = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	s.Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	s.Suggestion = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	s.Info = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	s.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	s.Header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	s.Path = lipgloss.NewStyle().Foreground(gray)
	s.Code = lipgloss.NewStyle().Foreground(gray)
	s.Context = lipgloss.NewStyle().Foreground(gray).Italic(true)
	s.Key = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	s.Separator = lipgloss.NewStyle().Foreground(gray)

	s.IconError = "✗"
	s.IconWarning = "⚠"
	s.IconSuggestion = "\U0001f4a1"
	s.IconInfo = "ℹ"
	s.IconSuccess = "✓"

	return s
}

// Enabled returns whether styling is enabled
func (s *Styles) Enabled() bool {
	return s.enabled
}

// Severity returns the style and icon for a diagnostic severity.
func (s *Styles) Severity(sev diag.Severity) (lipgloss.Style, string) {
	switch sev {
	case diag.Error:
		return s.Error, s.IconError
	case diag.Warning:
		return s.Warning, s.IconWarning
	case diag.Suggestion:
		return s.Suggestion, s.IconSuggestion
	default:
		return s.Info, s.IconInfo
	}
}
