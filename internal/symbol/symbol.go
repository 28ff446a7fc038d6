// Package symbol holds the read-only type facts the rules inspect and
// reconstructs dotted qualified names from them.
package symbol

import "strings"

// Kind distinguishes the containers a type can be declared in.
type Kind int

const (
	KindNamespace Kind = iota
	KindType
)

func (k Kind) String() string {
	switch k {
	case KindNamespace:
		return "namespace"
	case KindType:
		return "type"
	default:
		return "unknown"
	}
}

// Access is the declared accessibility of a type.
type Access int

const (
	Public Access = iota
	Private
)

func (a Access) String() string {
	if a == Private {
		return "private"
	}
	return "public"
}

// Container is one link of a containing chain.
type Container struct {
	Name string
	Kind Kind
}

// Namespace returns a namespace container.
func Namespace(name string) Container {
	return Container{Name: name, Kind: KindNamespace}
}

// Type returns an enclosing-type container.
func Type(name string) Container {
	return Container{Name: name, Kind: KindType}
}

// TypeFacts is the projection of a resolved type symbol the rules need.
type TypeFacts struct {
	// Name is the simple (unqualified) name of the type.
	Name string

	// Containers lists the enclosing types and namespaces, innermost first.
	// An empty-named namespace marks the root and ends the chain.
	Containers []Container

	Access Access
}

// Nested reports whether the type is declared inside another type.
func (t TypeFacts) Nested() bool {
	return len(t.Containers) > 0 && t.Containers[0].Kind == KindType
}

// QualifiedNamespace walks the containing chain of t and joins the names of
// every enclosing type and non-root namespace, root-most first.
// It returns "" for a type declared directly in the root namespace.
func QualifiedNamespace(t TypeFacts) string {
	var parts []string
	for _, c := range t.Containers {
		if c.Kind != KindType && c.Name == "" {
			break
		}
		parts = append(parts, c.Name)
	}

	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// FullName returns "{namespace}.{name}", the form excluded types are matched against.
func FullName(t TypeFacts) string {
	return QualifiedNamespace(t) + "." + t.Name
}
