package reporter

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pthm/dilint/internal/diag"
	"github.com/pthm/dilint/internal/ui"
)

// TerminalReporter outputs results to the terminal with colors
type TerminalReporter struct {
	w      io.Writer
	styles *ui.Styles
}

// NewTerminalReporter creates a new terminal reporter
func NewTerminalReporter(w io.Writer, u *ui.UI) *TerminalReporter {
	styles := ui.NewStyles(false)
	if u != nil {
		styles = u.Styles
	}
	return &TerminalReporter{w: w, styles: styles}
}

// Report outputs diagnostics to the terminal
func (r *TerminalReporter) Report(diags []diag.Diagnostic) error {
	s := r.styles
	if len(diags) == 0 {
		fmt.Fprintln(r.w, s.Success.Render(s.IconSuccess+" No issues found"))
		return nil
	}

	// Group by file
	byFile := make(map[string][]diag.Diagnostic)
	for _, d := range sorted(diags) {
		byFile[d.Span.File] = append(byFile[d.Span.File], d)
	}

	var files []string
	for f := range byFile {
		files = append(files, f)
	}
	sort.Strings(files)

	for _, file := range files {
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, s.Header.Render(filepath.Base(file)))
		fmt.Fprintln(r.w, "  "+s.Path.Render(file))

		for _, d := range byFile[file] {
			r.printDiagnostic(d)
		}
	}

	summary := ComputeSummary(diags)
	r.printSummary(summary)

	return summary.check()
}

func (r *TerminalReporter) printDiagnostic(d diag.Diagnostic) {
	s := r.styles
	style, icon := s.Severity(d.Severity)

	lineInfo := ""
	if d.Span.StartLine > 0 {
		lineInfo = fmt.Sprintf(":%d", d.Span.StartLine)
		if d.Span.StartColumn > 0 {
			lineInfo = fmt.Sprintf(":%d:%d", d.Span.StartLine, d.Span.StartColumn)
		}
	}

	fmt.Fprintf(r.w, "  %s %s%s %s\n",
		style.Render(icon),
		filepath.Base(d.Span.File), lineInfo,
		s.Code.Render("["+d.Code+"]"),
	)
	fmt.Fprintf(r.w, "    %s\n", d.Message)

	if d.Context != "" && len(d.Context) < 200 {
		fmt.Fprintf(r.w, "    %s\n", s.Context.Render("> "+d.Context))
	}
}

func (r *TerminalReporter) printSummary(summary Summary) {
	s := r.styles

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, s.Separator.Render(strings.Repeat("─", 37)))

	var parts []string
	if summary.Errors > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d errors", summary.Errors)))
	}
	if summary.Warnings > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d warnings", summary.Warnings)))
	}
	if summary.Suggestions > 0 {
		parts = append(parts, s.Suggestion.Render(fmt.Sprintf("%d suggestions", summary.Suggestions)))
	}
	if summary.Info > 0 {
		parts = append(parts, s.Info.Render(fmt.Sprintf("%d info", summary.Info)))
	}

	fmt.Fprintf(r.w, "Found %d issues in %d files: %s\n", summary.Total, summary.Files, strings.Join(parts, ", "))
}

// sorted returns diags ordered by file, then position, then code.
func sorted(diags []diag.Diagnostic) []diag.Diagnostic {
	out := make([]diag.Diagnostic, len(diags))
	copy(out, diags)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Span, out[j].Span
		if a.File != b.File {
			return a.File < b.File
		}
		if a.StartLine != b.StartLine {
			return a.StartLine < b.StartLine
		}
		if a.StartColumn != b.StartColumn {
			return a.StartColumn < b.StartColumn
		}
		return out[i].Code < out[j].Code
	})
	return out
}
