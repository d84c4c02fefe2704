package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterwwillis/bashdag/internal/app"
	"github.com/peterwwillis/bashdag/internal/cli"
	"github.com/peterwwillis/bashdag/internal/config"
	"github.com/peterwwillis/bashdag/internal/hclconf"
	"github.com/peterwwillis/bashdag/internal/tomlconf"
)

// main is the entrypoint for the bashdag binary.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. Rendered output goes to outW, logs and usage to errW.
func run(outW, errW io.Writer, args []string) error {
	cfg, shouldExit, err := cli.Parse(args, errW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	a, err := app.NewApp(outW, errW, cfg, loaderForPath(cfg.ManifestPath))
	if err != nil {
		return err
	}
	return a.Run(context.Background(), cfg)
}

// loaderForPath picks the manifest loader by file extension; directories
// and .hcl files use the HCL loader.
func loaderForPath(path string) config.Loader {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return tomlconf.NewLoader()
	}
	return hclconf.NewLoader()
}
