// Package app wires the manifest loader, task graph, renderer and walker
// into a runnable application.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/peterwwillis/bashdag/internal/config"
	"github.com/peterwwillis/bashdag/internal/ctxlog"
	"github.com/peterwwillis/bashdag/internal/graph"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle. Logs go to the error writer so show-mode output on outW stays
// machine-parseable.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	graph  *graph.Graph
}

// NewApp constructs the application: it configures an isolated logger,
// loads the manifest through the injected loader, and populates the task
// graph from it.
func NewApp(outW, errW io.Writer, cfg *Config, loader config.Loader) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("logger configured")

	manifest, err := loader.Load(ctx, cfg.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}

	g := buildGraph(ctx, manifest)

	return &App{
		outW:   outW,
		logger: logger,
		graph:  g,
	}, nil
}

// Graph returns the populated task graph. This is primarily for testing.
func (a *App) Graph() *graph.Graph {
	return a.graph
}

// buildGraph replays a manifest's declarations into a fresh graph through
// the declaration API, in manifest order.
func buildGraph(ctx context.Context, manifest *config.Manifest) *graph.Graph {
	logger := ctxlog.From(ctx)

	g := graph.New()
	for _, t := range manifest.Tasks {
		g.EnsureNode(t.Name)
		for _, dep := range t.DependsOn {
			g.AddDependency(t.Name, dep)
		}
		switch {
		case t.Script != "":
			// A script body is a single program token, preserved verbatim.
			g.SetProgram(t.Name, []string{t.Script})
		case t.Command != nil:
			g.SetProgram(t.Name, t.Command)
		}
	}

	logger.Debug("task graph populated", "tasks", g.Len())
	return g
}
