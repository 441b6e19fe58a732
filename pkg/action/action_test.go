package action

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func def(name string) *Definition {
	return &Definition{
		Name: name,
		Handler: func(ctx context.Context, params map[string]any) (any, error) {
			return nil, nil
		},
	}
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	r.Register(def("weather"))

	got, ok := r.Lookup([]string{"weather"})
	require.True(t, ok)
	assert.Equal(t, "weather", got.Name)

	_, ok = r.Lookup([]string{"missing"})
	assert.False(t, ok)

	// Flat registries never resolve dot-paths or empty paths.
	_, ok = r.Lookup([]string{"calculator", "add"})
	assert.False(t, ok)
	_, ok = r.Lookup(nil)
	assert.False(t, ok)
}

func TestRegistryRegisterReplaces(t *testing.T) {
	r := NewRegistry()
	first := def("weather")
	second := def("weather")
	second.Description = "replacement"

	r.Register(first)
	r.Register(second)

	got, ok := r.Get("weather")
	require.True(t, ok)
	assert.Equal(t, "replacement", got.Description)
}

func TestRegistryAllSorted(t *testing.T) {
	r := NewRegistry()
	r.Register(def("weather"))
	r.Register(def("add"))
	r.Register(def("subtract"))

	all := r.All()
	require.Len(t, all, 3)
	assert.Equal(t, "add", all[0].Name)
	assert.Equal(t, "subtract", all[1].Name)
	assert.Equal(t, "weather", all[2].Name)
}

func demoTree() *Tree {
	return Branch(map[string]*Tree{
		"calculator": Branch(map[string]*Tree{
			"add":      Leaf(def("add")),
			"subtract": Leaf(def("subtract")),
		}),
		"weather": Leaf(def("weather")),
	})
}

func TestTreeLookupFullPath(t *testing.T) {
	tree := demoTree()

	got, ok := tree.Lookup([]string{"calculator", "add"})
	require.True(t, ok)
	assert.Equal(t, "add", got.Name)

	_, ok = tree.Lookup([]string{"calculator", "multiply"})
	assert.False(t, ok)
}

func TestTreeLookupSingleSegmentDeepSearch(t *testing.T) {
	tree := demoTree()

	// "add" lives under "calculator" but resolves by bare name.
	got, ok := tree.Lookup([]string{"add"})
	require.True(t, ok)
	assert.Equal(t, "add", got.Name)

	got, ok = tree.Lookup([]string{"weather"})
	require.True(t, ok)
	assert.Equal(t, "weather", got.Name)
}

func TestTreeLookupDuplicateNamesDeterministic(t *testing.T) {
	tree := Branch(map[string]*Tree{
		"beta": Branch(map[string]*Tree{
			"status": Leaf(def("status-beta")),
		}),
		"alpha": Branch(map[string]*Tree{
			"status": Leaf(def("status-alpha")),
		}),
	})

	// Branch keys are walked in sorted order, so "alpha" wins every time.
	for i := 0; i < 10; i++ {
		got, ok := tree.Lookup([]string{"status"})
		require.True(t, ok)
		assert.Equal(t, "status-alpha", got.Name)
	}
}

func TestTreeLookupRejectsBadPaths(t *testing.T) {
	tree := demoTree()

	// Empty path.
	_, ok := tree.Lookup(nil)
	assert.False(t, ok)

	// Path descends past a leaf.
	_, ok = tree.Lookup([]string{"calculator", "add", "extra"})
	assert.False(t, ok)

	// Path ends on a branch.
	_, ok = tree.Lookup([]string{"calculator"})
	assert.False(t, ok)
	_, ok = tree.Lookup([]string{"calculator", "calculator"})
	assert.False(t, ok)
}

func TestTreeAll(t *testing.T) {
	all := demoTree().All()
	require.Len(t, all, 3)

	names := []string{all[0].Name, all[1].Name, all[2].Name}
	assert.Equal(t, []string{"add", "subtract", "weather"}, names)
}
