package rules

import (
	"github.com/pthm/dilint/internal/diag"
	"github.com/pthm/dilint/internal/policy"
	"github.com/pthm/dilint/internal/symbol"
)

// ConstructionRule flags direct construction of concrete types
type ConstructionRule struct{}

func (r *ConstructionRule) Name() string {
	return "new-operator"
}

func (r *ConstructionRule) Description() string {
	return "Flags direct construction of types that should be injected instead"
}

func (r *ConstructionRule) Descriptor() diag.Descriptor {
	return NewOperatorDescriptor
}

func (r *ConstructionRule) Options() []string {
	return []string{
		policy.KeyIncludedNamespaces,
		policy.KeyExcludedNamespaces,
		policy.KeyExcludedTypes,
		policy.KeyExcludedAssemblies,
		policy.KeyExcludedFiles,
		policy.KeyExcludePrivateTypes,
		policy.KeyExcludeNestedTypes,
	}
}

// Evaluate checks a single construction site. It returns the exemption that
// applied, and a diagnostic when the site is not exempt and the rule is
// enabled.
func (r *ConstructionRule) Evaluate(site Site, t symbol.TypeFacts, p *policy.Policy) (diag.Diagnostic, policy.Exemption, bool) {
	if ex := p.Exemption(t, site.File, site.Assembly); ex != policy.NotExempt {
		return diag.Diagnostic{}, ex, false
	}

	sev := p.Severity(CodeNewOperator, NewOperatorDescriptor.DefaultSeverity)
	if sev == diag.None {
		return diag.Diagnostic{}, policy.NotExempt, false
	}

	d := NewOperatorDescriptor.New(sev, site.Span, symbol.QualifiedNamespace(t), t.Name)
	return d, policy.NotExempt, true
}
