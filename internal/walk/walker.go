// Package walk implements the dual-direction traversal and finalization
// engine. A Walker descends the graph depth-first in the dependency
// (forward) and dependent (inverse) directions, finalizing each node at
// most once per run: rendering it in show mode, executing its program in
// run mode, or both.
//
// Per-direction visited flags are the engine's only cycle-safety mechanism:
// cyclic input does not raise an error, propagation simply stops once every
// node on the cycle has been entered once. The same flags make repeated
// walks within one process correctness-preserving no-ops.
package walk

import (
	"context"
	"fmt"

	"github.com/peterwwillis/bashdag/internal/ctxlog"
	"github.com/peterwwillis/bashdag/internal/graph"
	"github.com/peterwwillis/bashdag/internal/localexec"
	"github.com/peterwwillis/bashdag/internal/render"
)

// Direction selects which adjacency a walk descends.
type Direction int

const (
	// Forward follows a task's dependencies (what it needs).
	Forward Direction = iota
	// Inverse follows a task's dependents (what needs it).
	Inverse
)

// Options select what a walk does. Show and Run are independent; Forward
// and Inverse gate whether each direction is descended at all.
type Options struct {
	Show    bool
	Run     bool
	Forward bool
	Inverse bool
}

// Walker walks a populated graph. It never mutates adjacency, only its own
// run-state flags, so a single Walker is safe to reuse for repeated
// (idempotent) walks within one process.
type Walker struct {
	graph  *graph.Graph
	opts   Options
	r      render.Renderer
	runner localexec.Runner

	visited  [2][]bool
	shown    []bool
	executed []bool
}

// New creates a Walker over g. The renderer may be nil unless Show is set;
// the runner may be nil unless Run is set.
func New(g *graph.Graph, opts Options, r render.Renderer, runner localexec.Runner) *Walker {
	n := g.Len()
	return &Walker{
		graph:    g,
		opts:     opts,
		r:        r,
		runner:   runner,
		visited:  [2][]bool{make([]bool, n), make([]bool, n)},
		shown:    make([]bool, n),
		executed: make([]bool, n),
	}
}

// Walk traverses the graph from the given targets, or from the root set
// (tasks with no dependencies, in creation order) when targets is empty.
// Explicit targets resolve by direct name lookup; an unknown name aborts
// before any traversal or output. The first execution failure aborts the
// walk immediately; nodes already finalized stay finalized.
func (w *Walker) Walk(ctx context.Context, targets []string) error {
	logger := ctxlog.From(ctx)

	starts, err := w.startNodes(targets)
	if err != nil {
		return err
	}
	logger.Debug("walk starting", "start_count", len(starts), "explicit_targets", len(targets) > 0)

	if w.opts.Show {
		if err := w.r.Open(); err != nil {
			return err
		}
	}
	for _, id := range starts {
		if w.opts.Show {
			if err := w.r.Begin(w.graph.NameOf(id)); err != nil {
				return err
			}
		}
		if w.opts.Inverse {
			if err := w.walk(ctx, Inverse, []int{id}); err != nil {
				return err
			}
		}
		if w.opts.Forward {
			if err := w.walk(ctx, Forward, []int{id}); err != nil {
				return err
			}
		}
		if !w.opts.Forward && !w.opts.Inverse {
			// Degenerate but legal: both directions disabled finalizes the
			// start node alone.
			if err := w.finalize(ctx, id); err != nil {
				return err
			}
		}
		if w.opts.Show {
			if err := w.r.End(); err != nil {
				return err
			}
		}
	}
	if w.opts.Show {
		if err := w.r.Close(); err != nil {
			return err
		}
	}
	logger.Debug("walk finished")
	return nil
}

// startNodes resolves the walk entry points. Explicit targets use direct
// name lookup, not the root filter, so a mid-graph task can be walked.
func (w *Walker) startNodes(targets []string) ([]int, error) {
	if len(targets) == 0 {
		return w.graph.Roots(nil)
	}
	starts := make([]int, 0, len(targets))
	for _, name := range targets {
		id, err := w.graph.IDOf(name)
		if err != nil {
			return nil, err
		}
		starts = append(starts, id)
	}
	return starts, nil
}

func (w *Walker) adjacency(dir Direction, id int) []int {
	if dir == Forward {
		return w.graph.Dependencies(id)
	}
	return w.graph.Dependents(id)
}

// walk is the core recursion. Each node's full adjacency in the given
// direction is descended before the node itself is acted on (post-order).
// Every node in ids is finalized individually once its own descent
// completes, never once per sibling batch.
func (w *Walker) walk(ctx context.Context, dir Direction, ids []int) error {
	for _, id := range ids {
		adj := w.adjacency(dir, id)
		if len(adj) > 0 && !w.visited[dir][id] {
			w.visited[dir][id] = true
			if err := w.walk(ctx, dir, adj); err != nil {
				return err
			}
		}

		if dir == Forward {
			if err := w.finalize(ctx, id); err != nil {
				return err
			}
			continue
		}

		// Each dependent surfaced by the inverse direction gets its own
		// forward walk, so its dependency chain finalizes in order before
		// it does. With the forward direction disabled, only the surfaced
		// dependent itself is finalized.
		if w.opts.Forward {
			if err := w.walk(ctx, Forward, []int{id}); err != nil {
				return err
			}
		} else if err := w.finalize(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// finalize renders and/or executes the node, each at most once per run.
// A node without a program is still marked executed so a later walk
// treats it as complete.
func (w *Walker) finalize(ctx context.Context, id int) error {
	if w.opts.Show && !w.shown[id] {
		command, hasProgram := w.graph.Command(id)
		err := w.r.Node(w.graph.NameOf(id), id, w.graph.DependencyNames(id), command, hasProgram)
		if err != nil {
			return err
		}
		w.shown[id] = true
	}

	if w.opts.Run && !w.executed[id] {
		if command, ok := w.graph.Command(id); ok {
			name := w.graph.NameOf(id)
			ctxlog.From(ctx).Debug("executing task", "task", name, "id", id)
			if err := w.runner.Run(ctx, command); err != nil {
				return fmt.Errorf("task %q: %w", name, err)
			}
		}
		w.executed[id] = true
	}
	return nil
}
