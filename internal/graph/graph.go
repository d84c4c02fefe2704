// Package graph implements the task store: a registry of named nodes with
// dense integer IDs, adjacency recorded in both directions, and an optional
// program attribute per node.
//
// A Graph is constructed empty, populated through the declaration API
// (AddDependency, SetProgram) before any walk begins, and is read-only for
// the rest of the process lifetime. Nodes are never deleted. The store
// enforces no acyclicity; cycle safety is the walker's concern.
package graph

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTask is returned when a requested task name was never declared.
var ErrUnknownTask = errors.New("no such task")

// Node is a single named unit of work.
type Node struct {
	id   int
	name string

	// deps holds the IDs of the tasks this node depends on, in declaration
	// order. dependents holds the IDs of the tasks that depend on this node.
	// The double booking keeps both walk directions O(local degree).
	deps       []int
	dependents []int

	// program holds the node's command tokens. A single token may be a full
	// multi-line script body. Empty means the node has no program.
	program []string
}

// Graph is the task store.
type Graph struct {
	nodes []*Node
	index map[string]int

	// edges deduplicates declared (task, dependency) pairs so a repeated
	// declaration never appends a second adjacency entry.
	edges map[[2]string]struct{}
}

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		index: make(map[string]int),
		edges: make(map[[2]string]struct{}),
	}
}

// EnsureNode returns the ID of the named node, registering it first if it is
// unknown. IDs are dense, zero-based and assigned in first-seen order; repeat
// calls are side-effect free.
func (g *Graph) EnsureNode(name string) int {
	if id, ok := g.index[name]; ok {
		return id
	}
	id := len(g.nodes)
	g.nodes = append(g.nodes, &Node{id: id, name: name})
	g.index[name] = id
	return id
}

// AddDependency records that task `name` must run after task `dep`, ensuring
// both nodes exist. Re-declaring an existing pair is a no-op. Self-loops are
// permitted; their consequences are bounded by the walker's visited flags.
func (g *Graph) AddDependency(name, dep string) {
	nameID := g.EnsureNode(name)
	depID := g.EnsureNode(dep)

	pair := [2]string{name, dep}
	if _, seen := g.edges[pair]; seen {
		return
	}
	g.edges[pair] = struct{}{}

	g.nodes[nameID].deps = append(g.nodes[nameID].deps, depID)
	g.nodes[depID].dependents = append(g.nodes[depID].dependents, nameID)
}

// SetProgram replaces the named task's program with the given token
// sequence, ensuring the node exists. The last declaration wins; an empty
// sequence clears the program.
func (g *Graph) SetProgram(name string, tokens []string) {
	id := g.EnsureNode(name)
	g.nodes[id].program = append([]string(nil), tokens...)
}

// Len returns the number of registered nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// IDOf resolves a task name to its node ID.
func (g *Graph) IDOf(name string) (int, error) {
	id, ok := g.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTask, name)
	}
	return id, nil
}

// NameOf returns the name of the node with the given ID.
func (g *Graph) NameOf(id int) string {
	return g.nodes[id].name
}

// Dependencies returns the IDs of the tasks the given node depends on, in
// declaration order.
func (g *Graph) Dependencies(id int) []int {
	return append([]int(nil), g.nodes[id].deps...)
}

// Dependents returns the IDs of the tasks that depend on the given node, in
// declaration order.
func (g *Graph) Dependents(id int) []int {
	return append([]int(nil), g.nodes[id].dependents...)
}

// DependencyNames returns the names of the given node's dependencies, in
// declaration order.
func (g *Graph) DependencyNames(id int) []string {
	deps := g.nodes[id].deps
	names := make([]string, len(deps))
	for i, depID := range deps {
		names[i] = g.nodes[depID].name
	}
	return names
}

// Program returns the node's raw program tokens and whether a program is set.
func (g *Graph) Program(id int) ([]string, bool) {
	p := g.nodes[id].program
	if len(p) == 0 {
		return nil, false
	}
	return append([]string(nil), p...), true
}

// Command returns the node's program as a single command string, joining
// tokens with spaces. A single-token program (a script body) comes back
// verbatim, multi-line content preserved.
func (g *Graph) Command(id int) (string, bool) {
	p := g.nodes[id].program
	if len(p) == 0 {
		return "", false
	}
	return strings.Join(p, " "), true
}

// Roots resolves the default walk entry points. With no names it returns
// every node whose dependency list is empty, in ascending ID order so runs
// are reproducible. With names, an unknown name is an error; known names
// that have dependencies are silently excluded.
func (g *Graph) Roots(names []string) ([]int, error) {
	if len(names) == 0 {
		var roots []int
		for _, n := range g.nodes {
			if len(n.deps) == 0 {
				roots = append(roots, n.id)
			}
		}
		return roots, nil
	}

	var roots []int
	for _, name := range names {
		id, err := g.IDOf(name)
		if err != nil {
			return nil, err
		}
		if len(g.nodes[id].deps) == 0 {
			roots = append(roots, id)
		}
	}
	return roots, nil
}
