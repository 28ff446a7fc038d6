package reporter

import (
	"encoding/json"
	"io"

	"github.com/pthm/dilint/internal/diag"
)

// JSONReporter outputs results as JSON
type JSONReporter struct {
	w io.Writer
}

// NewJSONReporter creates a new JSON reporter
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{w: w}
}

// JSONOutput represents the JSON output format
type JSONOutput struct {
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Summary     Summary          `json:"summary"`
}

// JSONDiagnostic represents a diagnostic in JSON format
type JSONDiagnostic struct {
	Code      string `json:"code"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	File      string `json:"file"`
	Line      int    `json:"line,omitempty"`
	Column    int    `json:"column,omitempty"`
	EndLine   int    `json:"endLine,omitempty"`
	EndColumn int    `json:"endColumn,omitempty"`
	Context   string `json:"context,omitempty"`
}

// Report outputs diagnostics as JSON. The document is always written; the
// error reports whether any diagnostic has error severity.
func (r *JSONReporter) Report(diags []diag.Diagnostic) error {
	output := JSONOutput{
		Diagnostics: make([]JSONDiagnostic, 0, len(diags)),
		Summary:     ComputeSummary(diags),
	}

	for _, d := range sorted(diags) {
		output.Diagnostics = append(output.Diagnostics, JSONDiagnostic{
			Code:      d.Code,
			Severity:  d.Severity.String(),
			Message:   d.Message,
			File:      d.Span.File,
			Line:      d.Span.StartLine,
			Column:    d.Span.StartColumn,
			EndLine:   d.Span.EndLine,
			EndColumn: d.Span.EndColumn,
			Context:   d.Context,
		})
	}

	encoder := json.NewEncoder(r.w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return err
	}
	return output.Summary.check()
}
