package depgraph

import (
	"github.com/Masterminds/semver/v3"

	"github.com/matzehuels/cargo-dep/pkg/errors"
	"github.com/matzehuels/cargo-dep/pkg/metadata"
)

// Build converts raw package records into a graph with unresolved
// dependencies. Package order, and therefore every index, follows pkgs.
//
// A package is a member iff some member matches its name and version. The
// member source is not compared.
func Build(pkgs []metadata.Package, members []metadata.Member) (*Graph, error) {
	g := &Graph{Packages: make([]Package, 0, len(pkgs))}
	for _, raw := range pkgs {
		p, err := newPackage(raw, members)
		if err != nil {
			return nil, err
		}
		g.Packages = append(g.Packages, p)
	}
	return g, nil
}

func newPackage(raw metadata.Package, members []metadata.Member) (Package, error) {
	version, err := semver.StrictNewVersion(raw.Version)
	if err != nil {
		return Package{}, errors.Wrap(errors.ErrCodeInvalidVersion, err, "package `%s` has invalid version `%s`", raw.ID, raw.Version)
	}

	isMember := false
	for _, m := range members {
		if m.Name == raw.Name && m.Version != nil && m.Version.Equal(version) {
			isMember = true
			break
		}
	}

	deps := make([]Dependency, 0, len(raw.Dependencies))
	for _, d := range raw.Dependencies {
		kind, err := ParseDependencyKind(d.Kind)
		if err != nil {
			return Package{}, errors.Wrap(errors.ErrCodeInvalidMetadata, err, "dependency `%s` of `%s`", d.Name, raw.ID)
		}
		deps = append(deps, Dependency{
			Name:     d.Name,
			Source:   d.Source,
			Req:      d.Req,
			Kind:     kind,
			Optional: d.Optional,
		})
	}

	return Package{
		Name:         raw.Name,
		Version:      version,
		Source:       raw.Source,
		ID:           raw.ID,
		IsMember:     isMember,
		Dependencies: deps,
	}, nil
}
