// Package config defines the format-agnostic manifest model and the Loader
// interface implemented by the HCL and TOML loaders. The engine core never
// sees manifest files; it is populated from this model through the graph
// declaration API alone.
package config

import "context"

// Task is one declared task: a name, the names of the tasks it must run
// after, and at most one of Command (argv tokens) or Script (a literal
// multi-line body).
type Task struct {
	Name      string
	DependsOn []string
	Command   []string
	Script    string
}

// Manifest is the unified view of all task declarations, in declaration
// order. Order matters: node IDs are assigned first-seen.
type Manifest struct {
	Tasks []*Task
}

// Loader is the interface for a format-specific manifest loader.
type Loader interface {
	// Load reads the manifest at path (a file, or a directory for formats
	// that support discovery) into the format-agnostic model.
	Load(ctx context.Context, path string) (*Manifest, error)
}
