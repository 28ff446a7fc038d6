// Package policy turns the flat option map delivered for a unit into the
// immutable exemption policy the rules consult.
package policy

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pthm/dilint/internal/diag"
	"github.com/pthm/dilint/internal/symbol"
	"golang.org/x/text/cases"
)

// NoDependencyLimit disables the dependency-count rule. It is the threshold
// used when DI0003.allowed_number_of_dependencies is absent or malformed.
const NoDependencyLimit = -1

// Option keys, prefixed with the code of the rule that owns them.
const (
	KeyIncludedNamespaces  = "DI0002.included_namespaces"
	KeyExcludedNamespaces  = "DI0002.excluded_namespaces"
	KeyExcludedTypes       = "DI0002.excluded_types"
	KeyExcludedAssemblies  = "DI0002.excluded_assemblies"
	KeyExcludedFiles       = "DI0002.excluded_files"
	KeyExcludePrivateTypes = "DI0002.exclude_private_types"
	KeyExcludeNestedTypes  = "DI0002.exclude_nested_types"
	KeyAllowedDependencies = "DI0003.allowed_number_of_dependencies"

	// KeyIgnorePrivateTypes is the older spelling of KeyExcludePrivateTypes.
	KeyIgnorePrivateTypes = "DI0002.ignore_private_types"

	// SeveritySuffix is appended to a rule code to override its severity,
	// e.g. "DI0002.severity".
	SeveritySuffix = ".severity"
)

// Keys lists every recognised option key except the per-rule severities.
var Keys = []string{
	KeyIncludedNamespaces,
	KeyExcludedNamespaces,
	KeyExcludedTypes,
	KeyExcludedAssemblies,
	KeyExcludedFiles,
	KeyExcludePrivateTypes,
	KeyExcludeNestedTypes,
	KeyAllowedDependencies,
}

// Policy is the resolved configuration for one analyzed unit. It is never
// mutated after Build returns and is safe for concurrent use.
type Policy struct {
	includedNamespaces *list
	excludedNamespaces *list
	excludedTypes      *list
	excludedAssemblies *list
	excludedFiles      *list

	excludePrivate bool
	excludeNested  bool

	allowedDependencies int

	severities map[string]diag.Severity
}

// Build parses options into a Policy. It never fails: malformed booleans
// read as false and a malformed threshold reads as NoDependencyLimit.
// Keys are matched case-insensitively.
func Build(options map[string]string) *Policy {
	opts := normalizeKeys(options)

	p := &Policy{
		allowedDependencies: NoDependencyLimit,
		severities:          make(map[string]diag.Severity),
	}

	if v, ok := opts.get(KeyIncludedNamespaces); ok {
		p.includedNamespaces = newList(v, fold)
	}
	if v, ok := opts.get(KeyExcludedNamespaces); ok {
		p.excludedNamespaces = newList(v, fold)
	}
	if v, ok := opts.get(KeyExcludedTypes); ok {
		p.excludedTypes = newList(v, fold)
	}
	if v, ok := opts.get(KeyExcludedAssemblies); ok {
		p.excludedAssemblies = newList(v, nil)
	}
	if v, ok := opts.get(KeyExcludedFiles); ok {
		p.excludedFiles = newList(normalizePath(v), fold)
	}

	if v, ok := opts.get(KeyIgnorePrivateTypes); ok {
		p.excludePrivate = parseBool(v)
	}
	if v, ok := opts.get(KeyExcludePrivateTypes); ok {
		p.excludePrivate = parseBool(v)
	}
	if v, ok := opts.get(KeyExcludeNestedTypes); ok {
		p.excludeNested = parseBool(v)
	}

	if v, ok := opts.get(KeyAllowedDependencies); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n >= 0 {
			p.allowedDependencies = n
		}
	}

	for _, k := range opts.keys {
		code, found := strings.CutSuffix(k, strings.ToLower(SeveritySuffix))
		if !found || code == "" {
			continue
		}
		if sev, ok := diag.ParseSeverity(opts.values[k]); ok {
			p.severities[strings.ToUpper(code)] = sev
		}
	}

	return p
}

// Conflict reports whether both namespace lists were supplied.
func (p *Policy) Conflict() bool {
	return p.includedNamespaces != nil && p.excludedNamespaces != nil
}

// Severity returns the configured severity for a rule code, or def.
func (p *Policy) Severity(code string, def diag.Severity) diag.Severity {
	if sev, ok := p.severities[strings.ToUpper(code)]; ok {
		return sev
	}
	return def
}

// AllowedDependencies returns the constructor parameter threshold, or
// NoDependencyLimit.
func (p *Policy) AllowedDependencies() int {
	return p.allowedDependencies
}

// HasDependencyLimit reports whether a threshold was configured.
func (p *Policy) HasDependencyLimit() bool {
	return p.allowedDependencies != NoDependencyLimit
}

// ExcludePrivateTypes reports whether private types are exempt.
func (p *Policy) ExcludePrivateTypes() bool { return p.excludePrivate }

// ExcludeNestedTypes reports whether nested types are exempt.
func (p *Policy) ExcludeNestedTypes() bool { return p.excludeNested }

// IncludedNamespaces returns the configured prefixes, or nil when unset.
func (p *Policy) IncludedNamespaces() []string { return p.includedNamespaces.values() }

// ExcludedNamespaces returns the configured prefixes, or nil when unset.
func (p *Policy) ExcludedNamespaces() []string { return p.excludedNamespaces.values() }

// ExcludedTypes returns the configured type names, or nil when unset.
func (p *Policy) ExcludedTypes() []string { return p.excludedTypes.values() }

// ExcludedAssemblies returns the configured assembly names, or nil when unset.
func (p *Policy) ExcludedAssemblies() []string { return p.excludedAssemblies.values() }

// ExcludedFiles returns the configured path suffixes with separators
// normalized, or nil when unset.
func (p *Policy) ExcludedFiles() []string { return p.excludedFiles.values() }

// options is a key-lowered view of the raw option map with a stable key order.
type options struct {
	keys   []string
	values map[string]string
}

func normalizeKeys(raw map[string]string) options {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	o := options{values: make(map[string]string, len(raw))}
	for _, k := range keys {
		lk := strings.ToLower(k)
		if _, seen := o.values[lk]; !seen {
			o.keys = append(o.keys, lk)
		}
		o.values[lk] = raw[k]
	}
	return o
}

func (o options) get(key string) (string, bool) {
	v, ok := o.values[strings.ToLower(key)]
	return v, ok
}

// list keeps the entries as configured alongside their comparison form.
type list struct {
	raw     []string
	compare []string
}

// newList splits v on commas without trimming or dropping empty entries.
func newList(v string, normalize func(string) string) *list {
	raw := strings.Split(v, ",")
	l := &list{raw: raw, compare: make([]string, len(raw))}
	for i, s := range raw {
		if normalize != nil {
			s = normalize(s)
		}
		l.compare[i] = s
	}
	return l
}

func (l *list) values() []string {
	if l == nil {
		return nil
	}
	out := make([]string, len(l.raw))
	copy(out, l.raw)
	return out
}

func (l *list) contains(s string) bool {
	for _, e := range l.compare {
		if e == s {
			return true
		}
	}
	return false
}

func (l *list) prefixOf(s string) bool {
	for _, e := range l.compare {
		if strings.HasPrefix(s, e) {
			return true
		}
	}
	return false
}

func (l *list) suffixOf(s string) bool {
	for _, e := range l.compare {
		if strings.HasSuffix(s, e) {
			return true
		}
	}
	return false
}

// fold applies invariant Unicode case folding so comparisons do not depend
// on the environment's locale.
func fold(s string) string {
	return cases.Fold().String(s)
}

func normalizePath(s string) string {
	return strings.ReplaceAll(s, `\`, "/")
}

func parseBool(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), "true")
}

// Exemption is the outcome of checking a construction site against the policy.
type Exemption int

const (
	NotExempt Exemption = iota
	ExemptFile
	ExemptAssembly
	ExemptOutOfScope
	ExemptNamespace
	ExemptNested
	ExemptPrivate
	ExemptType
)

func (e Exemption) String() string {
	switch e {
	case NotExempt:
		return "not exempt"
	case ExemptFile:
		return "excluded file"
	case ExemptAssembly:
		return "excluded assembly"
	case ExemptOutOfScope:
		return "outside included namespaces"
	case ExemptNamespace:
		return "excluded namespace"
	case ExemptNested:
		return "nested type"
	case ExemptPrivate:
		return "private type"
	case ExemptType:
		return "excluded type"
	default:
		return "unknown"
	}
}

// Exemption decides whether constructing t from file, inside assembly, is
// exempt. Checks run in a fixed order and the first match wins: file,
// assembly, namespace lists, nesting, accessibility, explicit type.
//
// When included namespaces are set they form an allow-list and excluded
// namespaces are ignored.
func (p *Policy) Exemption(t symbol.TypeFacts, file, assembly string) Exemption {
	if p.excludedFiles != nil && p.excludedFiles.suffixOf(fold(normalizePath(file))) {
		return ExemptFile
	}

	if p.excludedAssemblies != nil && p.excludedAssemblies.contains(assembly) {
		return ExemptAssembly
	}

	ns := symbol.QualifiedNamespace(t)
	switch {
	case p.includedNamespaces != nil:
		if !p.includedNamespaces.prefixOf(fold(ns)) {
			return ExemptOutOfScope
		}
	case p.excludedNamespaces != nil:
		if p.excludedNamespaces.prefixOf(fold(ns)) {
			return ExemptNamespace
		}
	}

	if p.excludeNested && t.Nested() {
		return ExemptNested
	}

	if p.excludePrivate && t.Access == symbol.Private {
		return ExemptPrivate
	}

	if p.excludedTypes != nil && p.excludedTypes.contains(fold(ns+"."+t.Name)) {
		return ExemptType
	}

	return NotExempt
}
