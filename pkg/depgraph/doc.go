// Package depgraph builds the package graph of a cargo workspace and computes
// which packages are reachable from a set of roots.
//
// # Overview
//
// The graph is an arena: [Graph.Packages] owns every package, and each
// [Dependency] points at its target by index into that slice. Nothing in the
// graph holds a pointer to another package, so the only mutable state after
// construction is the [Package.Include] flag.
//
// A run goes through four steps, each of which fails the whole run on error:
//
//	g, err := depgraph.Build(md.Packages, members)   // packages, is-member flags
//	err = g.Resolve(md.Resolve.Nodes)                // dependency target indices
//	sel, err := depgraph.Select(g, filter)           // roots and pruned packages
//	included := g.Mark(sel.Roots, sel.Ignored)       // reachability
//
// # Selection
//
// Packages are matched by name only. A name shared by several versions selects
// all of them. Excluded names must match at least one package; root names may
// match none.
//
// # Determinism
//
// [IndexSet] is unordered. Anything that affects output iterates it through
// [IndexSet.Sorted].
package depgraph
