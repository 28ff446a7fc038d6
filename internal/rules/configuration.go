package rules

import (
	"github.com/pthm/dilint/internal/diag"
	"github.com/pthm/dilint/internal/policy"
)

// ConfigurationRule reports units configured with both namespace lists
type ConfigurationRule struct{}

func (r *ConfigurationRule) Name() string {
	return "configuration-error"
}

func (r *ConfigurationRule) Description() string {
	return "Reports options that set both included_namespaces and excluded_namespaces"
}

func (r *ConfigurationRule) Descriptor() diag.Descriptor {
	return ConfigurationDescriptor
}

func (r *ConfigurationRule) Options() []string {
	return []string{policy.KeyIncludedNamespaces, policy.KeyExcludedNamespaces}
}

// Evaluate returns the diagnostic for a unit whose policy conflicts. The
// host calls it once per unit, right after building the policy.
func (r *ConfigurationRule) Evaluate(at diag.Span, p *policy.Policy) (diag.Diagnostic, bool) {
	if !p.Conflict() {
		return diag.Diagnostic{}, false
	}

	sev := p.Severity(CodeConfiguration, ConfigurationDescriptor.DefaultSeverity)
	if sev == diag.None {
		return diag.Diagnostic{}, false
	}

	return ConfigurationDescriptor.New(sev, at), true
}
