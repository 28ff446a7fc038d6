package reporter

import (
	"errors"

	"github.com/pthm/dilint/internal/diag"
)

// ErrLintErrors is returned by reporters when any diagnostic has error severity.
var ErrLintErrors = errors.New("lint errors found")

// Reporter defines the interface for outputting lint results
type Reporter interface {
	// Report outputs the diagnostics
	Report(diags []diag.Diagnostic) error
}

// Summary holds summary statistics for a lint run
type Summary struct {
	Total       int `json:"total"`
	Errors      int `json:"errors"`
	Warnings    int `json:"warnings"`
	Suggestions int `json:"suggestions"`
	Info        int `json:"info"`
	Files       int `json:"files"`
}

// ComputeSummary computes summary statistics from diagnostics
func ComputeSummary(diags []diag.Diagnostic) Summary {
	s := Summary{
		Total: len(diags),
	}

	files := make(map[string]bool)
	for _, d := range diags {
		files[d.Span.File] = true
		switch d.Severity {
		case diag.Error:
			s.Errors++
		case diag.Warning:
			s.Warnings++
		case diag.Suggestion:
			s.Suggestions++
		case diag.Info:
			s.Info++
		}
	}
	s.Files = len(files)

	return s
}

// check returns ErrLintErrors when the summary counts any errors.
func (s Summary) check() error {
	if s.Errors > 0 {
		return ErrLintErrors
	}
	return nil
}
