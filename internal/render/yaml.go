package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// yamlRenderer emits one YAML document per run: a `--- # dag` separator,
// a top-level key per start node, and a sequence of per-node mappings.
type yamlRenderer struct {
	w io.Writer
}

func (r *yamlRenderer) Open() error {
	_, err := fmt.Fprintln(r.w, "--- # dag")
	return err
}

func (r *yamlRenderer) Begin(start string) error {
	_, err := fmt.Fprintf(r.w, "%s:\n", strconv.Quote(start))
	return err
}

func (r *yamlRenderer) End() error   { return nil }
func (r *yamlRenderer) Close() error { return nil }

func (r *yamlRenderer) Node(name string, id int, deps []string, program string, hasProgram bool) error {
	if _, err := fmt.Fprintf(r.w, "  - %s:\n      index: %d\n", strconv.Quote(name), id); err != nil {
		return err
	}
	if len(deps) > 0 {
		quoted := make([]string, len(deps))
		for i, d := range deps {
			quoted[i] = strconv.Quote(d)
		}
		if _, err := fmt.Fprintf(r.w, "      dependencies: [%s]\n", strings.Join(quoted, ", ")); err != nil {
			return err
		}
	}
	if hasProgram {
		if _, err := fmt.Fprintln(r.w, "      program: |-"); err != nil {
			return err
		}
		for _, line := range splitLines(program) {
			if line == "" {
				// Blank script lines need no indentation to stay valid.
				if _, err := fmt.Fprintln(r.w); err != nil {
					return err
				}
				continue
			}
			if _, err := fmt.Fprintf(r.w, "        %s\n", line); err != nil {
				return err
			}
		}
	}
	return nil
}
