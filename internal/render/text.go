package render

import (
	"fmt"
	"io"
	"strings"
)

// textRenderer emits a comment-prefixed human-readable block per node.
type textRenderer struct {
	w io.Writer
}

func (r *textRenderer) Open() error          { return nil }
func (r *textRenderer) Begin(_ string) error { return nil }
func (r *textRenderer) End() error           { return nil }
func (r *textRenderer) Close() error         { return nil }

func (r *textRenderer) Node(name string, id int, deps []string, program string, hasProgram bool) error {
	if _, err := fmt.Fprintf(r.w, "# %s (%d)\n", name, id); err != nil {
		return err
	}
	if len(deps) > 0 {
		if _, err := fmt.Fprintf(r.w, "# dependencies: %s\n", strings.Join(deps, ", ")); err != nil {
			return err
		}
	}
	if hasProgram {
		if _, err := fmt.Fprintln(r.w, "# program:"); err != nil {
			return err
		}
		for _, line := range splitLines(program) {
			if _, err := fmt.Fprintf(r.w, "#         %s\n", line); err != nil {
				return err
			}
		}
	}
	return nil
}

// splitLines splits s on newlines, dropping a single trailing newline so
// heredoc-style script bodies do not render a spurious empty line.
func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
