package render

import (
	"fmt"
	"io"
	"strings"
)

// jsonRenderer emits a single JSON object for the whole run, keyed by start
// node name, each value an array of node records. Comma placement is driven
// by the firstStart/firstNode flags; End resets firstNode so every start
// node's array is independently well formed.
type jsonRenderer struct {
	w          io.Writer
	firstStart bool
	firstNode  bool
}

func (r *jsonRenderer) Open() error {
	r.firstStart = true
	_, err := io.WriteString(r.w, "{")
	return err
}

func (r *jsonRenderer) Begin(start string) error {
	sep := ","
	if r.firstStart {
		sep = ""
		r.firstStart = false
	}
	r.firstNode = true
	_, err := fmt.Fprintf(r.w, "%s\"%s\":[", sep, escape(start))
	return err
}

func (r *jsonRenderer) Node(name string, id int, deps []string, program string, hasProgram bool) error {
	sep := ","
	if r.firstNode {
		sep = ""
		r.firstNode = false
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s{\"%s\":{\"index\":%d,\"dependencies\":[", sep, escape(name), id)
	for i, d := range deps {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, "\"%s\"", escape(d))
	}
	b.WriteString("]")
	if hasProgram {
		fmt.Fprintf(&b, ",\"program\":\"%s\"", escape(program))
	}
	b.WriteString("}}")

	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *jsonRenderer) End() error {
	r.firstNode = true
	_, err := io.WriteString(r.w, "]")
	return err
}

func (r *jsonRenderer) Close() error {
	_, err := io.WriteString(r.w, "}\n")
	return err
}

// escape rewrites s for embedding in a JSON string literal. The replacer
// works in a single pass, so the backslash pair listed first never
// double-escapes the output of the later pairs.
func escape(s string) string {
	return jsonEscaper.Replace(s)
}

var jsonEscaper = strings.NewReplacer(
	`\`, `\\`,
	`/`, `\/`,
	`"`, `\"`,
	"\t", `\t`,
	"\n", `\n`,
	"\r", `\r`,
	"\f", `\f`,
	"\b", `\b`,
)
