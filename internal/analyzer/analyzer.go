// Package analyzer runs the dilint rules as a go/analysis analyzer. It
// projects Go syntax and type information into the facts the rules consume
// and reports their diagnostics through the analysis pass.
package analyzer

import (
	"go/ast"
	"go/token"
	"go/types"
	"log/slog"
	"os"
	"reflect"
	"sync"

	"github.com/pthm/dilint/internal/config"
	"github.com/pthm/dilint/internal/diag"
	"github.com/pthm/dilint/internal/policy"
	"github.com/pthm/dilint/internal/rules"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Name is the analyzer name used in flags and output.
const Name = "dilint"

const doc = `report construction of concrete types and constructors with too many dependencies

dilint flags composite literals and new(T) calls that build named struct
types directly (DI0002) and New* constructors whose parameter count exceeds
DI0003.allowed_number_of_dependencies (DI0003). Options are read from the
nearest .dilint.yaml above each source file.`

// Options configures an analyzer built by New.
type Options struct {
	// Provider delivers the options for each file. When nil, options files
	// are discovered next to the analyzed sources.
	Provider config.Provider

	// Logger receives debug records for every exempted site. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Result is the per-package result of the analyzer. Diagnostics are kept in
// reporting order.
type Result struct {
	diag.Collector
	Metrics Metrics
}

// Analyzer reads options from the file named by -config, or $DILINT_CONFIG,
// or the nearest .dilint.yaml above each source file.
var Analyzer = newFlagAnalyzer()

func newFlagAnalyzer() *analysis.Analyzer {
	p := &flagProvider{}
	a := New(Options{Provider: p})
	a.Flags.StringVar(&p.path, "config", "", "path to a dilint options file (default: nearest .dilint.yaml)")
	return a
}

// New returns an analyzer configured by opts.
func New(opts Options) *analysis.Analyzer {
	r := &runner{
		provider: opts.Provider,
		logger:   opts.Logger,
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.provider == nil {
		r.provider = config.NewCache(r.logger)
	}

	return &analysis.Analyzer{
		Name:             Name,
		Doc:              doc,
		Requires:         []*analysis.Analyzer{inspect.Analyzer},
		Run:              r.run,
		RunDespiteErrors: true,
		ResultType:       reflect.TypeOf((*Result)(nil)),
	}
}

type runner struct {
	provider config.Provider
	logger   *slog.Logger

	configuration rules.ConfigurationRule
	construction  rules.ConstructionRule
	dependency    rules.DependencyRule
}

// unit is one source file with the policy built for it.
type unit struct {
	name   string
	policy *policy.Policy
}

// pass wraps an analysis pass with the units built for it.
type pass struct {
	*analysis.Pass
	units  map[*token.File]*unit
	result *Result
}

func (r *runner) run(ap *analysis.Pass) (any, error) {
	p := &pass{
		Pass:   ap,
		units:  make(map[*token.File]*unit, len(ap.Files)),
		result: &Result{Metrics: newMetrics()},
	}

	// Every policy is built before the first site is visited.
	for _, f := range ap.Files {
		tf := ap.Fset.File(f.Pos())
		if tf == nil {
			continue
		}
		u := &unit{
			name:   tf.Name(),
			policy: policy.Build(r.provider.OptionsFor(tf.Name())),
		}
		p.units[tf] = u
		p.result.Metrics.Files++

		if d, ok := r.configuration.Evaluate(p.span(f.Package, f.Name.End()), u.policy); ok {
			p.emit(f.Package, f.Name.End(), d)
		}
	}

	insp := ap.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	nodeFilter := []ast.Node{
		(*ast.CompositeLit)(nil),
		(*ast.CallExpr)(nil),
		(*ast.FuncDecl)(nil),
	}
	insp.Preorder(nodeFilter, func(n ast.Node) {
		u := p.unitOf(n.Pos())
		if u == nil {
			return
		}

		switch n := n.(type) {
		case *ast.CompositeLit:
			r.checkSite(p, u, n, compositeType(p.TypesInfo, n))
		case *ast.CallExpr:
			if t, ok := newType(p.TypesInfo, n); ok {
				r.checkSite(p, u, n, t)
			}
		case *ast.FuncDecl:
			r.checkConstructor(p, u, n)
		}
	})

	return p.result, nil
}

func (r *runner) checkSite(p *pass, u *unit, n ast.Node, t types.Type) {
	obj := constructedType(t)
	if obj == nil {
		return
	}

	p.result.Metrics.Sites++
	facts := typeFacts(p.Files, obj)
	site := rules.Site{
		File:     u.name,
		Assembly: p.Pkg.Path(),
		Span:     p.span(n.Pos(), n.End()),
	}

	d, ex, ok := r.construction.Evaluate(site, facts, u.policy)
	if !ok {
		if ex != policy.NotExempt {
			p.result.Metrics.exempt(ex)
			r.logger.Debug("construction exempt",
				"type", obj.Name(),
				"reason", ex.String(),
				"pos", site.Span.String(),
			)
		}
		return
	}
	p.emit(n.Pos(), n.End(), d)
}

func (r *runner) checkConstructor(p *pass, u *unit, fd *ast.FuncDecl) {
	ctor, ok := constructorFacts(p.Pass, fd)
	if !ok {
		return
	}
	p.result.Metrics.Constructors++
	ctor.Span = p.span(fd.Type.Params.Pos(), fd.Type.Params.End())

	for _, d := range r.dependency.Evaluate([]rules.ConstructorFacts{ctor}, u.policy) {
		p.emit(fd.Type.Params.Pos(), fd.Type.Params.End(), d)
	}
}

func (p *pass) unitOf(pos token.Pos) *unit {
	return p.units[p.Fset.File(pos)]
}

func (p *pass) span(pos, end token.Pos) diag.Span {
	start := p.Fset.Position(pos)
	stop := p.Fset.Position(end)
	return diag.Span{
		File:        start.Filename,
		StartLine:   start.Line,
		StartColumn: start.Column,
		EndLine:     stop.Line,
		EndColumn:   stop.Column,
	}
}

// emit hands d to the pass and records it in the result.
func (p *pass) emit(pos, end token.Pos, d diag.Diagnostic) {
	p.result.Report(d)
	p.result.Metrics.Reported++
	p.Report(analysis.Diagnostic{
		Pos:      pos,
		End:      end,
		Category: d.Code,
		Message:  d.Message,
	})
}

// flagProvider resolves the -config flag on first use, after flags are parsed.
type flagProvider struct {
	path string

	once     sync.Once
	provider config.Provider
}

func (f *flagProvider) OptionsFor(filename string) map[string]string {
	f.once.Do(func() {
		path := f.path
		if path == "" {
			path = os.Getenv(config.EnvConfig)
		}
		if path == "" {
			f.provider = config.NewCache(slog.Default())
			return
		}

		cfg, err := config.Load(path)
		if err != nil {
			slog.Warn("ignoring options file", "path", path, "error", err)
			cfg = config.Default()
		}
		f.provider = cfg
	})
	return f.provider.OptionsFor(filename)
}
