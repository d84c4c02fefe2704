package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureNode(t *testing.T) {
	t.Parallel()
	g := New()

	assert.Equal(t, 0, g.EnsureNode("a"))
	assert.Equal(t, 1, g.EnsureNode("b"))
	assert.Equal(t, 0, g.EnsureNode("a")) // idempotent
	assert.Equal(t, 2, g.Len())

	id, err := g.IDOf("b")
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	assert.Equal(t, "b", g.NameOf(1))
}

func TestIDOf_Unknown(t *testing.T) {
	t.Parallel()
	g := New()
	g.EnsureNode("a")

	_, err := g.IDOf("nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownTask)
	assert.ErrorContains(t, err, "nope")
}

func TestAddDependency(t *testing.T) {
	t.Parallel()

	t.Run("records both directions", func(t *testing.T) {
		g := New()
		g.AddDependency("b", "a") // b depends on a

		bID, err := g.IDOf("b")
		require.NoError(t, err)
		aID, err := g.IDOf("a")
		require.NoError(t, err)

		assert.Equal(t, []int{aID}, g.Dependencies(bID))
		assert.Equal(t, []int{bID}, g.Dependents(aID))
		assert.Equal(t, []string{"a"}, g.DependencyNames(bID))
	})

	t.Run("repeated declaration is a no-op", func(t *testing.T) {
		g := New()
		g.AddDependency("b", "a")
		g.AddDependency("b", "a")

		bID, _ := g.IDOf("b")
		aID, _ := g.IDOf("a")
		assert.Len(t, g.Dependencies(bID), 1)
		assert.Len(t, g.Dependents(aID), 1)
	})

	t.Run("self-dependency is permitted", func(t *testing.T) {
		g := New()
		g.AddDependency("x", "x")

		xID, _ := g.IDOf("x")
		assert.Equal(t, []int{xID}, g.Dependencies(xID))
		assert.Equal(t, []int{xID}, g.Dependents(xID))
	})

	t.Run("insertion order is preserved", func(t *testing.T) {
		g := New()
		g.AddDependency("d", "b")
		g.AddDependency("d", "c")
		g.AddDependency("d", "a")

		dID, _ := g.IDOf("d")
		assert.Equal(t, []string{"b", "c", "a"}, g.DependencyNames(dID))
	})
}

func TestSetProgram(t *testing.T) {
	t.Parallel()

	t.Run("last declaration wins", func(t *testing.T) {
		g := New()
		g.SetProgram("a", []string{"echo", "one"})
		g.SetProgram("a", []string{"echo", "two"})

		id, _ := g.IDOf("a")
		program, ok := g.Program(id)
		require.True(t, ok)
		assert.Equal(t, []string{"echo", "two"}, program)

		cmd, ok := g.Command(id)
		require.True(t, ok)
		assert.Equal(t, "echo two", cmd)
	})

	t.Run("empty sequence clears", func(t *testing.T) {
		g := New()
		g.SetProgram("a", []string{"echo", "hi"})
		g.SetProgram("a", nil)

		id, _ := g.IDOf("a")
		_, ok := g.Program(id)
		assert.False(t, ok)
		_, ok = g.Command(id)
		assert.False(t, ok)
	})

	t.Run("single-token script body is preserved verbatim", func(t *testing.T) {
		g := New()
		script := "echo one\necho two\n"
		g.SetProgram("a", []string{script})

		id, _ := g.IDOf("a")
		cmd, ok := g.Command(id)
		require.True(t, ok)
		assert.Equal(t, script, cmd)
	})
}

func TestRoots(t *testing.T) {
	t.Parallel()

	t.Run("no names returns dependency-free nodes in creation order", func(t *testing.T) {
		g := New()
		g.EnsureNode("z")          // root, ID 0
		g.AddDependency("b", "a")  // a is a root, ID 2
		g.AddDependency("c", "b")  // c depends on b
		g.EnsureNode("y")          // root, ID 4

		roots, err := g.Roots(nil)
		require.NoError(t, err)

		names := make([]string, len(roots))
		for i, id := range roots {
			names[i] = g.NameOf(id)
		}
		assert.Equal(t, []string{"z", "a", "y"}, names)
	})

	t.Run("unknown name fails", func(t *testing.T) {
		g := New()
		g.EnsureNode("a")

		_, err := g.Roots([]string{"a", "missing"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownTask)
	})

	t.Run("names with dependencies are filtered out", func(t *testing.T) {
		g := New()
		g.AddDependency("b", "a")

		roots, err := g.Roots([]string{"a", "b"})
		require.NoError(t, err)

		aID, _ := g.IDOf("a")
		assert.Equal(t, []int{aID}, roots)
	})
}
