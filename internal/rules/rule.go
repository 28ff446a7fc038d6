package rules

import (
	"github.com/pthm/dilint/internal/diag"
)

// Rule codes
const (
	CodeConfiguration       = "DI0001"
	CodeNewOperator         = "DI0002"
	CodeTooManyDependencies = "DI0003"
)

// Category groups the descriptors in output
const Category = "Design"

var (
	// ConfigurationDescriptor reports a unit whose options enable both namespace lists.
	ConfigurationDescriptor = diag.Descriptor{
		Code:            CodeConfiguration,
		Title:           "Configuration error",
		Format:          "You should either use included_namespaces or excluded_namespaces",
		Category:        "Configuration",
		DefaultSeverity: diag.Error,
	}

	// NewOperatorDescriptor reports a direct construction of a concrete type.
	NewOperatorDescriptor = diag.Descriptor{
		Code:            CodeNewOperator,
		Title:           "New operator",
		Format:          "Prefer using dependency inversion to new operator for the type %s.%s",
		Category:        Category,
		DefaultSeverity: diag.Warning,
	}

	// TooManyDependenciesDescriptor reports a constructor with too many parameters.
	TooManyDependenciesDescriptor = diag.Descriptor{
		Code:            CodeTooManyDependencies,
		Title:           "Too many dependencies",
		Format:          "The constructor of the type %s has %d dependencies which is more than allowed (%d)",
		Category:        Category,
		DefaultSeverity: diag.Warning,
	}
)

// Site is a point in source where a value of a type is constructed.
type Site struct {
	// File is the path of the file containing the construction.
	File string

	// Assembly names the compilation unit being analyzed.
	Assembly string

	Span diag.Span
}

// ConstructorFacts describes one constructor of a type.
type ConstructorFacts struct {
	// TypeName is the name of the type the constructor builds.
	TypeName string

	// Signature is the parameter list as written in source.
	Signature string

	// Params is the number of parameters.
	Params int

	// Span covers the parameter list.
	Span diag.Span
}

// Rule defines the interface for lint rules
type Rule interface {
	// Name returns the unique identifier for this rule
	Name() string

	// Description returns a human-readable description
	Description() string

	// Descriptor returns the diagnostic the rule produces
	Descriptor() diag.Descriptor

	// Options returns the option keys the rule reads
	Options() []string
}
