package depgraph

import (
	"github.com/matzehuels/cargo-dep/pkg/errors"
	"github.com/matzehuels/cargo-dep/pkg/metadata"
)

// IDIndex maps every package id to its index. Ids must be unique.
func (g *Graph) IDIndex() (map[string]int, error) {
	idx := make(map[string]int, len(g.Packages))
	for i := range g.Packages {
		id := g.Packages[i].ID
		if _, dup := idx[id]; dup {
			return nil, errors.New(errors.ErrCodeDuplicateID, "duplicate key `%s`", id)
		}
		idx[id] = i
	}
	return idx, nil
}

// Resolve sets the target index of every dependency that appears in the
// resolved graph.
//
// Each node's dependency ids are matched to the owning package's declared
// dependencies by package name. A declared dependency with no matching id
// stays unresolved. A name matching a second id is an internal error, as is
// resolving the same graph twice.
func (g *Graph) Resolve(nodes []metadata.Node) error {
	idx, err := g.IDIndex()
	if err != nil {
		return err
	}

	for _, node := range nodes {
		owner, ok := idx[node.ID]
		if !ok {
			return errors.New(errors.ErrCodeResolveIDNotFound, "could not find resolve id `%s`", node.ID)
		}
		pkg := &g.Packages[owner]

		for d := range pkg.Dependencies {
			dep := &pkg.Dependencies[d]
			if dep.Index != nil {
				return errors.New(errors.ErrCodeInternal, "dependency `%s` of `%s` resolved twice", dep.Name, pkg.ID)
			}
			for _, desc := range node.Dependencies {
				if metadata.DescriptorName(desc) != dep.Name {
					continue
				}
				if dep.Index != nil {
					return errors.New(errors.ErrCodeInternal, "dependency `%s` of `%s` matches more than one resolved id", dep.Name, pkg.ID)
				}
				target, ok := idx[desc]
				if !ok {
					return errors.New(errors.ErrCodeDepIDNotFound, "could not find dep id `%s`", desc)
				}
				dep.Index = &target
			}
		}
	}
	return nil
}
