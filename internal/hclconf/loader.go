// Package hclconf is the HCL implementation of the config.Loader interface.
// It discovers .hcl manifest files, decodes their `task` and `locals`
// blocks, and evaluates command expressions against the collected locals.
package hclconf

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/peterwwillis/bashdag/internal/config"
	"github.com/peterwwillis/bashdag/internal/ctxlog"
	"github.com/peterwwillis/bashdag/internal/fsutil"
)

// Loader loads task manifests written in HCL.
type Loader struct{}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot is the decode target for the top-level blocks of one file.
type fileRoot struct {
	Locals []*localsBlock `hcl:"locals,block"`
	Tasks  []*taskBlock   `hcl:"task,block"`
}

// localsBlock defers its attributes so they can be evaluated after all
// files are parsed.
type localsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// taskBlock is one `task "name" { ... }` block. Command and script stay as
// raw expressions so they can reference `local.*` values.
type taskBlock struct {
	Name      string         `hcl:"name,label"`
	DependsOn []string       `hcl:"depends_on,optional"`
	Command   hcl.Expression `hcl:"command,optional"`
	Script    hcl.Expression `hcl:"script,optional"`
}

// Load parses the manifest at path (a single .hcl file, or a directory
// searched recursively for .hcl files) into the format-agnostic model.
// Tasks keep file-walk then in-file declaration order, so node IDs are
// reproducible.
func (l *Loader) Load(ctx context.Context, path string) (*config.Manifest, error) {
	logger := ctxlog.From(ctx)

	files, err := fsutil.CollectFiles(path, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("discovered manifest files", "count", len(files))

	parser := hclparse.NewParser()
	var roots []*fileRoot
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse %s: %w", file, diags)
		}
		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode %s: %w", file, diags)
		}
		roots = append(roots, &root)
	}

	// All locals across all files are collected before any task is
	// translated, so a task may reference locals declared in another file.
	evalCtx, err := buildEvalContext(roots)
	if err != nil {
		return nil, err
	}

	manifest := &config.Manifest{}
	for _, root := range roots {
		for _, tb := range root.Tasks {
			task, err := translateTask(tb, evalCtx)
			if err != nil {
				return nil, err
			}
			manifest.Tasks = append(manifest.Tasks, task)
		}
	}
	logger.Debug("manifest loaded", "tasks", len(manifest.Tasks))
	return manifest, nil
}

// buildEvalContext evaluates every locals attribute to a literal value and
// exposes the result as the `local` object.
func buildEvalContext(roots []*fileRoot) (*hcl.EvalContext, error) {
	locals := make(map[string]cty.Value)
	for _, root := range roots {
		for _, block := range root.Locals {
			attrs, diags := block.Body.JustAttributes()
			if diags.HasErrors() {
				return nil, fmt.Errorf("invalid locals block: %w", diags)
			}
			for name, attr := range attrs {
				val, diags := attr.Expr.Value(nil)
				if diags.HasErrors() {
					return nil, fmt.Errorf("local %q must be a literal value: %w", name, diags)
				}
				locals[name] = val
			}
		}
	}

	vars := map[string]cty.Value{}
	if len(locals) > 0 {
		vars["local"] = cty.ObjectVal(locals)
	}
	return &hcl.EvalContext{Variables: vars}, nil
}

// translateTask resolves one task block into the model, evaluating its
// command or script expression.
func translateTask(tb *taskBlock, evalCtx *hcl.EvalContext) (*config.Task, error) {
	task := &config.Task{
		Name:      tb.Name,
		DependsOn: tb.DependsOn,
	}

	command, err := evalStringList(tb.Command, evalCtx)
	if err != nil {
		return nil, fmt.Errorf("task %q: invalid command: %w", tb.Name, err)
	}
	script, err := evalString(tb.Script, evalCtx)
	if err != nil {
		return nil, fmt.Errorf("task %q: invalid script: %w", tb.Name, err)
	}

	if command != nil && script != "" {
		return nil, fmt.Errorf("task %q: command and script are mutually exclusive", tb.Name)
	}
	task.Command = command
	task.Script = script
	return task, nil
}
