package depgraph

import (
	"maps"
	"slices"

	"github.com/Masterminds/semver/v3"

	"github.com/matzehuels/cargo-dep/pkg/errors"
)

// DependencyKind classifies a dependency relation.
type DependencyKind int

const (
	KindNormal DependencyKind = iota
	KindDevelopment
	KindBuild
)

// String returns the cargo spelling of the kind ("normal", "dev", "build").
func (k DependencyKind) String() string {
	switch k {
	case KindDevelopment:
		return "dev"
	case KindBuild:
		return "build"
	default:
		return "normal"
	}
}

// ParseDependencyKind parses the kind field of a cargo dependency record.
// Cargo reports normal dependencies as null, which decodes to "".
func ParseDependencyKind(s string) (DependencyKind, error) {
	switch s {
	case "", "normal":
		return KindNormal, nil
	case "dev":
		return KindDevelopment, nil
	case "build":
		return KindBuild, nil
	}
	return KindNormal, errors.New(errors.ErrCodeInvalidMetadata, "unknown dependency kind `%s`", s)
}

// Package is one distinct (name, version, source) of the workspace graph.
type Package struct {
	Name     string
	Version  *semver.Version
	Source   string
	ID       string
	IsMember bool
	// Include is set by Mark once the package is proven reachable.
	Include      bool
	Dependencies []Dependency
}

// Label returns the display label "<name> <version>".
func (p *Package) Label() string {
	return p.Name + " " + p.Version.String()
}

// Dependency is one declared dependency edge of a package.
type Dependency struct {
	// Index is the resolved target in Graph.Packages, nil if the dependency
	// is not part of this resolution (optional or platform-gated).
	Index    *int
	Name     string
	Source   string
	Req      string
	Kind     DependencyKind
	Optional bool
}

// Resolved reports whether the dependency points at a package.
func (d *Dependency) Resolved() bool { return d.Index != nil }

// Graph owns the packages of one run.
type Graph struct {
	Packages []Package
}

// Len returns the number of packages.
func (g *Graph) Len() int { return len(g.Packages) }

// EdgeCount returns the number of resolved dependency edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for i := range g.Packages {
		for j := range g.Packages[i].Dependencies {
			if g.Packages[i].Dependencies[j].Resolved() {
				n++
			}
		}
	}
	return n
}

// IndexSet is an unordered set of package indices.
type IndexSet map[int]struct{}

// NewIndexSet returns a set holding the given indices.
func NewIndexSet(indices ...int) IndexSet {
	s := make(IndexSet, len(indices))
	for _, i := range indices {
		s.Add(i)
	}
	return s
}

// Add inserts i.
func (s IndexSet) Add(i int) { s[i] = struct{}{} }

// Has reports whether i is in the set. A nil set is empty.
func (s IndexSet) Has(i int) bool {
	_, ok := s[i]
	return ok
}

// Len returns the number of indices.
func (s IndexSet) Len() int { return len(s) }

// Sorted returns the indices in ascending order.
func (s IndexSet) Sorted() []int {
	return slices.Sorted(maps.Keys(s))
}
