package depgraph

import (
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/cargo-dep/pkg/metadata"
)

func member(name, version string) metadata.Member {
	return metadata.Member{Name: name, Version: semver.MustParse(version)}
}

func pkg(name, version, id string, deps ...string) metadata.Package {
	p := metadata.Package{Name: name, Version: version, ID: id}
	for _, d := range deps {
		p.Dependencies = append(p.Dependencies, metadata.Dependency{Name: d, Req: "*"})
	}
	return p
}

// abcGraph is A(member), B(member, depends on C), C(third-party).
func abcGraph(t *testing.T) *Graph {
	t.Helper()
	g, err := Build(
		[]metadata.Package{
			pkg("a", "1.0.0", "a"),
			pkg("b", "1.0.0", "b", "c"),
			pkg("c", "1.0.0", "c 1.0.0 registry"),
		},
		[]metadata.Member{member("a", "1.0.0"), member("b", "1.0.0")},
	)
	require.NoError(t, err)
	require.NoError(t, g.Resolve([]metadata.Node{
		{ID: "b", Dependencies: []string{"c 1.0.0 registry"}},
	}))
	return g
}

func index(i int) *int { return &i }
