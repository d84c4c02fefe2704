// Package localexec runs task programs as local shell commands.
package localexec

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Runner executes a task's program and reports its outcome. A non-nil error
// covers both spawn failures and non-zero exits.
type Runner interface {
	Run(ctx context.Context, command string) error
}

// Shell runs commands through `sh -c`, inheriting the parent process
// environment. Commands run synchronously; control returns only after the
// child has exited.
type Shell struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewShell returns a Shell wired to the process standard streams.
func NewShell() *Shell {
	return &Shell{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run executes command and returns an error naming it on failure.
func (s *Shell) Run(ctx context.Context, command string) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Stdin = s.Stdin
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command %q failed: %w", command, err)
	}
	return nil
}
