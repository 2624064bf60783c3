package depgraph

import (
	"github.com/matzehuels/cargo-dep/pkg/errors"
)

// Filter holds the user's package-name filters.
type Filter struct {
	Packages []string // roots; empty means all workspace members
	Excludes []string // pruned packages; each must match something
}

// Selection is the outcome of applying a Filter to a graph.
type Selection struct {
	Roots   IndexSet
	Ignored IndexSet
}

// Select computes the root and ignore sets for f.
func Select(g *Graph, f Filter) (Selection, error) {
	ignored, err := g.Ignored(f.Excludes)
	if err != nil {
		return Selection{}, err
	}
	return Selection{Roots: g.Roots(f.Packages), Ignored: ignored}, nil
}

// Roots returns every package named in names, or every workspace member
// when names is empty. Names matching nothing are skipped silently.
func (g *Graph) Roots(names []string) IndexSet {
	roots := IndexSet{}
	if len(names) == 0 {
		for i := range g.Packages {
			if g.Packages[i].IsMember {
				roots.Add(i)
			}
		}
		return roots
	}
	for _, name := range names {
		g.matchName(name, roots)
	}
	return roots
}

// Ignored returns every package named in names. Each name must match at
// least one package.
func (g *Graph) Ignored(names []string) (IndexSet, error) {
	ignored := IndexSet{}
	for _, name := range names {
		if !g.matchName(name, ignored) {
			return nil, errors.New(errors.ErrCodeExcludeNotFound, "could not find exclude spec `%s`", name)
		}
	}
	return ignored, nil
}

func (g *Graph) matchName(name string, into IndexSet) bool {
	found := false
	for i := range g.Packages {
		if g.Packages[i].Name == name {
			into.Add(i)
			found = true
		}
	}
	return found
}
