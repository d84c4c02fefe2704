// Package tomlconf is the TOML implementation of the config.Loader
// interface. Tasks are declared as an array of tables so declaration order
// — and therefore node ID assignment — stays deterministic:
//
//	[[task]]
//	name = "build"
//	depends_on = ["generate"]
//	command = ["go", "build", "./..."]
package tomlconf

import (
	"context"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/peterwwillis/bashdag/internal/config"
	"github.com/peterwwillis/bashdag/internal/ctxlog"
	"github.com/peterwwillis/bashdag/internal/fsutil"
)

// Loader loads task manifests written in TOML.
type Loader struct{}

// NewLoader creates a new TOML manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

type manifestFile struct {
	Tasks []taskEntry `toml:"task"`
}

type taskEntry struct {
	Name      string   `toml:"name"`
	DependsOn []string `toml:"depends_on"`
	Command   []string `toml:"command"`
	Script    string   `toml:"script"`
}

// Load parses the manifest at path (a single .toml file, or a directory
// searched recursively for .toml files) into the format-agnostic model.
func (l *Loader) Load(ctx context.Context, path string) (*config.Manifest, error) {
	logger := ctxlog.From(ctx)

	files, err := fsutil.CollectFiles(path, ".toml")
	if err != nil {
		return nil, err
	}
	logger.Debug("discovered manifest files", "count", len(files))

	manifest := &config.Manifest{}
	for _, file := range files {
		var mf manifestFile
		if _, err := toml.DecodeFile(file, &mf); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", file, err)
		}
		for _, entry := range mf.Tasks {
			if entry.Name == "" {
				return nil, fmt.Errorf("%s: task is missing a name", file)
			}
			if entry.Command != nil && entry.Script != "" {
				return nil, fmt.Errorf("task %q: command and script are mutually exclusive", entry.Name)
			}
			manifest.Tasks = append(manifest.Tasks, &config.Task{
				Name:      entry.Name,
				DependsOn: entry.DependsOn,
				Command:   entry.Command,
				Script:    entry.Script,
			})
		}
	}
	logger.Debug("manifest loaded", "tasks", len(manifest.Tasks))
	return manifest, nil
}
