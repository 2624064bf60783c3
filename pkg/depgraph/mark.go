package depgraph

// Mark computes the packages reachable from roots without passing through
// an ignored package, and sets Include on each of them.
//
// An ignored package is never included, even when it is a root. Include is
// only ever set, so marking again with the same sets is a no-op.
func (g *Graph) Mark(roots, ignore IndexSet) IndexSet {
	included := IndexSet{}
	var stack []int
	for _, root := range roots.Sorted() {
		stack = append(stack[:0], root)
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if ignore.Has(i) || included.Has(i) {
				continue
			}
			included.Add(i)

			deps := g.Packages[i].Dependencies
			for d := len(deps) - 1; d >= 0; d-- {
				if deps[d].Index != nil {
					stack = append(stack, *deps[d].Index)
				}
			}
		}
	}

	for i := range included {
		g.Packages[i].Include = true
	}
	return included
}
