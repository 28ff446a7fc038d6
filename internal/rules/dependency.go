package rules

import (
	"github.com/pthm/dilint/internal/diag"
	"github.com/pthm/dilint/internal/policy"
)

// DependencyRule flags constructors taking more parameters than allowed
type DependencyRule struct{}

func (r *DependencyRule) Name() string {
	return "too-many-dependencies"
}

func (r *DependencyRule) Description() string {
	return "Flags constructors whose parameter count exceeds allowed_number_of_dependencies"
}

func (r *DependencyRule) Descriptor() diag.Descriptor {
	return TooManyDependenciesDescriptor
}

func (r *DependencyRule) Options() []string {
	return []string{policy.KeyAllowedDependencies}
}

// Evaluate returns one diagnostic per constructor with strictly more
// parameters than the policy allows. It returns nil when no limit is set.
func (r *DependencyRule) Evaluate(ctors []ConstructorFacts, p *policy.Policy) []diag.Diagnostic {
	if !p.HasDependencyLimit() {
		return nil
	}

	sev := p.Severity(CodeTooManyDependencies, TooManyDependenciesDescriptor.DefaultSeverity)
	if sev == diag.None {
		return nil
	}

	limit := p.AllowedDependencies()

	var out []diag.Diagnostic
	for _, c := range ctors {
		if c.Params <= limit {
			continue
		}
		d := TooManyDependenciesDescriptor.New(sev, c.Span, c.TypeName, c.Params, limit)
		d.Context = c.Signature
		out = append(out, d)
	}
	return out
}
