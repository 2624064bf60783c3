package depgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/cargo-dep/pkg/errors"
	"github.com/matzehuels/cargo-dep/pkg/metadata"
)

func TestRootsDefaultToMembers(t *testing.T) {
	g := abcGraph(t)
	assert.Equal(t, []int{0, 1}, g.Roots(nil).Sorted())
}

func TestRootsByName(t *testing.T) {
	g, err := Build([]metadata.Package{
		pkg("a", "1.0.0", "a"),
		pkg("rand", "0.7.3", "rand 0.7.3"),
		pkg("rand", "0.8.5", "rand 0.8.5"),
	}, []metadata.Member{member("a", "1.0.0")})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, g.Roots([]string{"rand"}).Sorted(), "every version becomes a root")
	assert.Equal(t, []int{0, 1, 2}, g.Roots([]string{"a", "rand"}).Sorted())
	assert.Empty(t, g.Roots([]string{"nope"}).Sorted(), "unknown root names are not an error")
}

func TestIgnored(t *testing.T) {
	g := abcGraph(t)

	ignored, err := g.Ignored([]string{"c"})
	require.NoError(t, err)
	assert.Equal(t, []int{2}, ignored.Sorted())

	ignored, err = g.Ignored(nil)
	require.NoError(t, err)
	assert.Zero(t, ignored.Len())

	_, err = g.Ignored([]string{"c", "nonexistent-name"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeExcludeNotFound))
	assert.Contains(t, errors.UserMessage(err), "nonexistent-name")
}

func TestSelect(t *testing.T) {
	g := abcGraph(t)

	sel, err := Select(g, Filter{Packages: []string{"b"}, Excludes: []string{"a"}})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, sel.Roots.Sorted())
	assert.Equal(t, []int{0}, sel.Ignored.Sorted())

	_, err = Select(g, Filter{Excludes: []string{"zzz"}})
	assert.True(t, errors.Is(err, errors.ErrCodeExcludeNotFound))
}
