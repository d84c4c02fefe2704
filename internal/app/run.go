package app

import (
	"context"
	"fmt"

	"github.com/peterwwillis/bashdag/internal/ctxlog"
	"github.com/peterwwillis/bashdag/internal/localexec"
	"github.com/peterwwillis/bashdag/internal/render"
	"github.com/peterwwillis/bashdag/internal/walk"
)

// Run executes the walk described by cfg against the loaded graph.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("run starting", "show", cfg.Show, "run", cfg.Run, "targets", cfg.Targets)

	var r render.Renderer
	if cfg.Show {
		var err error
		if r, err = render.New(cfg.Format, a.outW); err != nil {
			return err
		}
	}

	var runner localexec.Runner
	if cfg.Run {
		runner = localexec.NewShell()
	}

	walker := walk.New(a.graph, walk.Options{
		Show:    cfg.Show,
		Run:     cfg.Run,
		Forward: cfg.Forward,
		Inverse: cfg.Inverse,
	}, r, runner)

	if err := walker.Walk(ctx, cfg.Targets); err != nil {
		return fmt.Errorf("walk failed: %w", err)
	}
	a.logger.Debug("run finished")
	return nil
}
