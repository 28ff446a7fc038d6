// Package diag defines the diagnostic records the rules produce and the
// channel they are reported through.
package diag

import (
	"fmt"
	"strings"
)

// Severity represents the severity level of a diagnostic
type Severity int

const (
	Info Severity = iota
	Suggestion
	Warning
	Error

	// None disables the rule that would have produced the diagnostic.
	None
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Suggestion:
		return "suggestion"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case None:
		return "none"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a case-insensitive severity name.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return Info, true
	case "suggestion":
		return Suggestion, true
	case "warning":
		return Warning, true
	case "error":
		return Error, true
	case "none":
		return None, true
	default:
		return 0, false
	}
}

// Span locates a diagnostic in source. Lines and columns are 1-based;
// zero means the position is unknown.
type Span struct {
	File        string
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

func (s Span) String() string {
	if s.StartLine == 0 {
		return s.File
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.StartLine, s.StartColumn)
}

// Diagnostic is a single finding.
type Diagnostic struct {
	Code     string
	Severity Severity
	Message  string
	Span     Span

	// Context carries optional detail, such as the offending signature.
	Context string
}

// Descriptor describes one kind of diagnostic.
type Descriptor struct {
	Code            string
	Title           string
	Format          string
	Category        string
	DefaultSeverity Severity
}

// New formats a diagnostic from the descriptor's message template.
func (d Descriptor) New(severity Severity, span Span, args ...any) Diagnostic {
	return Diagnostic{
		Code:     d.Code,
		Severity: severity,
		Message:  fmt.Sprintf(d.Format, args...),
		Span:     span,
	}
}

// Sink is the reporting channel diagnostics are handed to.
type Sink interface {
	Report(d Diagnostic)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Diagnostic)

// Report calls f(d).
func (f SinkFunc) Report(d Diagnostic) { f(d) }

// Collector is a Sink that keeps diagnostics in reporting order.
type Collector struct {
	Diagnostics []Diagnostic
}

// Report appends d.
func (c *Collector) Report(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}
