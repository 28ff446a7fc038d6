package analyzer

import (
	"testing"

	"github.com/pthm/dilint/internal/config"
	"github.com/pthm/dilint/internal/diag"
	"github.com/pthm/dilint/internal/logging"
	"github.com/pthm/dilint/internal/policy"
	"golang.org/x/tools/go/analysis/analysistest"
)

func testOptions(options config.Static) Options {
	return Options{Provider: options, Logger: logging.Discard()}
}

func TestAnalyzer(t *testing.T) {
	tests := []struct {
		pkg     string
		options config.Static
	}{
		{
			pkg:     "construct",
			options: config.Static{},
		},
		{
			pkg: "scoped",
			options: config.Static{
				policy.KeyIncludedNamespaces: "scoped",
				policy.KeyExcludedTypes:      "scoped.Allowed",
			},
		},
		{
			pkg:     "excluded",
			options: config.Static{policy.KeyExcludedNamespaces: "bytes,strings"},
		},
		{
			pkg:     "private",
			options: config.Static{policy.KeyExcludePrivateTypes: "true"},
		},
		{
			pkg:     "nested",
			options: config.Static{policy.KeyExcludeNestedTypes: "true"},
		},
		{
			pkg: "conflict",
			options: config.Static{
				policy.KeyIncludedNamespaces: "conflict",
				policy.KeyExcludedNamespaces: "other",
			},
		},
		{
			pkg: "deps",
			options: config.Static{
				policy.KeyAllowedDependencies: "1",
				"DI0002.severity":             "none",
			},
		},
		{
			pkg:     "files",
			options: config.Static{policy.KeyExcludedFiles: "/files/skip.go"},
		},
		{
			pkg:     "assembly",
			options: config.Static{policy.KeyExcludedAssemblies: "assembly"},
		},
	}

	testdata := analysistest.TestData()
	for _, tt := range tests {
		t.Run(tt.pkg, func(t *testing.T) {
			a := New(testOptions(tt.options))
			analysistest.Run(t, testdata, a, tt.pkg)
		})
	}
}

func TestAnalyzerResult(t *testing.T) {
	a := New(testOptions(config.Static{
		policy.KeyAllowedDependencies: "1",
		"DI0002.severity":             "none",
		"DI0003.severity":             "error",
	}))

	results := analysistest.Run(t, analysistest.TestData(), a, "deps")
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}

	res, ok := results[0].Result.(*Result)
	if !ok {
		t.Fatalf("result has type %T, want *Result", results[0].Result)
	}
	if len(res.Diagnostics) != 4 {
		t.Fatalf("got %d diagnostics, want 4", len(res.Diagnostics))
	}

	first := res.Diagnostics[0]
	if first.Code != "DI0003" {
		t.Errorf("Code = %q, want DI0003", first.Code)
	}
	if first.Severity != diag.Error {
		t.Errorf("Severity = %v, want %v", first.Severity, diag.Error)
	}
	if first.Context != "(a, b int)" {
		t.Errorf("Context = %q, want %q", first.Context, "(a, b int)")
	}
	if first.Span.StartLine != 15 || first.Span.StartColumn != 20 {
		t.Errorf("Span = %+v, want start 15:20", first.Span)
	}
	if first.Span.EndColumn != 30 {
		t.Errorf("Span.EndColumn = %d, want 30", first.Span.EndColumn)
	}
}

func TestAnalyzerFlags(t *testing.T) {
	if Analyzer.Flags.Lookup("config") == nil {
		t.Error("Analyzer should define a -config flag")
	}
	if Analyzer.Name != Name {
		t.Errorf("Name = %q, want %q", Analyzer.Name, Name)
	}
}

func TestAnalyzerMetrics(t *testing.T) {
	a := New(testOptions(config.Static{policy.KeyExcludePrivateTypes: "true"}))
	results := analysistest.Run(t, analysistest.TestData(), a, "private")
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}

	m := results[0].Result.(*Result).Metrics
	if m.Files != 1 || m.Sites != 3 || m.Reported != 1 {
		t.Errorf("Metrics = %+v, want 1 file, 3 sites, 1 reported", m)
	}
	if got := m.ExemptByReason[policy.ExemptPrivate.String()]; got != 2 {
		t.Errorf("private exemptions = %d, want 2", got)
	}
}
