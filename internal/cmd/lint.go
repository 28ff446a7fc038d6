package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/pthm/dilint/internal/analyzer"
	"github.com/pthm/dilint/internal/diag"
	"github.com/pthm/dilint/internal/reporter"
	"github.com/pthm/dilint/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/checker"
	"golang.org/x/tools/go/packages"
)

var lintTests bool

var lintCmd = &cobra.Command{
	Use:   "lint [packages]",
	Short: "Lint Go packages",
	Long: `Analyze Go packages for direct construction of concrete types and
constructors with too many dependencies.

Examples:
  dilint lint
  dilint lint ./internal/...
  dilint lint --format json ./... > report.json`,
	RunE: runLint,
}

func init() {
	lintCmd.Flags().BoolVar(&lintTests, "tests", true, "Include test files")
	RootCmd.AddCommand(lintCmd)
}

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedImports |
	packages.NeedDeps |
	packages.NeedTypes |
	packages.NeedTypesSizes |
	packages.NeedSyntax |
	packages.NeedTypesInfo |
	packages.NeedModule

func runLint(cmd *cobra.Command, args []string) error {
	patterns := args
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	u := GetUI()
	progress := u.StartProgress()
	defer progress.Done(nil)

	progress.SetStage(ui.StageLoadConfig)
	a := analyzer.New(analyzer.Options{
		Provider: optionsProvider(),
		Logger:   logger,
	})

	progress.SetStage(ui.StageLoadPackages)
	progress.SetOperation(strings.Join(patterns, " "))
	pkgs, err := loadPackages(cmd.Context(), patterns)
	if err != nil {
		return err
	}
	logger.Debug("loaded packages", "count", len(pkgs))

	progress.SetStage(ui.StageAnalyze)
	progress.SetPackageCount(len(pkgs))
	diags, err := analyze(a, pkgs, progress)
	if err != nil {
		return err
	}

	// Stop progress before reporting
	progress.Done(nil)

	return newReporter(u).Report(diags)
}

func newReporter(u *ui.UI) reporter.Reporter {
	if u.IsJSON() {
		return reporter.NewJSONReporter(u.Writer)
	}
	return reporter.NewTerminalReporter(u.Writer, u)
}

// loadPackages loads the packages matching patterns from source. Synthesized
// test mains are dropped.
func loadPackages(ctx context.Context, patterns []string) ([]*packages.Package, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    loadMode,
		Tests:   lintTests,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}

	out := pkgs[:0]
	for _, pkg := range pkgs {
		if isTestMain(pkg) {
			continue
		}
		for _, e := range pkg.Errors {
			logger.Warn("package has errors", "package", pkg.ID, "error", e.Msg)
		}
		out = append(out, pkg)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no packages matched %s", strings.Join(patterns, " "))
	}
	return out, nil
}

func isTestMain(pkg *packages.Package) bool {
	return pkg.Name == "main" && strings.HasSuffix(pkg.PkgPath, ".test")
}

type seenKey struct {
	code string
	span diag.Span
}

// analyze runs a over each package in turn and collects the diagnostics.
// A package and its test variant share files, so repeats are dropped.
func analyze(a *analysis.Analyzer, pkgs []*packages.Package, progress *ui.ProgressController) ([]diag.Diagnostic, error) {
	var (
		out     []diag.Diagnostic
		metrics analyzer.Metrics
		seen    = make(map[seenKey]bool)
	)

	for _, pkg := range pkgs {
		graph, err := checker.Analyze([]*analysis.Analyzer{a}, []*packages.Package{pkg}, &checker.Options{})
		if err != nil {
			return nil, fmt.Errorf("analyzing %s: %w", pkg.ID, err)
		}

		for _, act := range graph.Roots {
			if act.Analyzer != a {
				continue
			}
			if act.Err != nil {
				logger.Warn("analysis failed", "package", pkg.ID, "error", act.Err)
				continue
			}
			res, ok := act.Result.(*analyzer.Result)
			if !ok {
				continue
			}
			metrics.Add(res.Metrics)
			for _, d := range res.Diagnostics {
				key := seenKey{code: d.Code, span: d.Span}
				if seen[key] {
					continue
				}
				seen[key] = true
				out = append(out, d)
			}
		}

		progress.PackageDone(pkg.PkgPath)
	}

	logger.Debug("analysis complete",
		"packages", len(pkgs),
		"files", metrics.Files,
		"sites", metrics.Sites,
		"exempt", metrics.Exempted(),
		"constructors", metrics.Constructors,
		"reported", metrics.Reported,
	)
	return out, nil
}
