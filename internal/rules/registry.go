package rules

import (
	"embed"
	"strings"
)

//go:embed docs/*.md
var docsFS embed.FS

// Registry holds all registered rules
type Registry struct {
	rules []Rule
}

// NewRegistry creates a new rule registry
func NewRegistry() *Registry {
	return &Registry{
		rules: make([]Rule, 0),
	}
}

// Register adds a rule to the registry
func (r *Registry) Register(rule Rule) {
	r.rules = append(r.rules, rule)
}

// Rules returns all registered rules in registration order
func (r *Registry) Rules() []Rule {
	return r.rules
}

// Get returns a rule by name or code, case-insensitively
func (r *Registry) Get(nameOrCode string) Rule {
	for _, rule := range r.rules {
		if strings.EqualFold(rule.Name(), nameOrCode) || strings.EqualFold(rule.Descriptor().Code, nameOrCode) {
			return rule
		}
	}
	return nil
}

// DefaultRegistry returns a registry with all default rules
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(&ConfigurationRule{})
	r.Register(&ConstructionRule{})
	r.Register(&DependencyRule{})

	return r
}

// Doc returns the markdown documentation for a rule.
func Doc(rule Rule) (string, bool) {
	data, err := docsFS.ReadFile("docs/" + rule.Descriptor().Code + ".md")
	if err != nil {
		return "", false
	}
	return string(data), true
}
