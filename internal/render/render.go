// Package render implements the streaming output emitters used by show-mode
// walks. A renderer is selected once per run by format name and receives one
// Node call per finalized task, bracketed by per-start-node Begin/End frames
// and document-level Open/Close markers.
package render

import (
	"errors"
	"fmt"
	"io"
)

// ErrUnknownFormat is returned when an output format name is not recognized.
var ErrUnknownFormat = errors.New("unknown output format")

// Renderer emits a structured description of walked nodes.
//
// Call order is: Open, then for each start node Begin, zero or more Node
// calls, End; finally Close. Node receives the task's forward dependency
// names in declaration order; program is only meaningful when hasProgram
// is true.
type Renderer interface {
	Open() error
	Begin(start string) error
	Node(name string, id int, deps []string, program string, hasProgram bool) error
	End() error
	Close() error
}

// New returns the renderer for the named format writing to w. Valid formats
// are "text", "yaml" and "json".
func New(format string, w io.Writer) (Renderer, error) {
	switch format {
	case "text":
		return &textRenderer{w: w}, nil
	case "yaml":
		return &yamlRenderer{w: w}, nil
	case "json":
		return &jsonRenderer{w: w}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
