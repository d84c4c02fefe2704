package localexec

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShell_Run(t *testing.T) {
	t.Parallel()

	t.Run("zero exit succeeds", func(t *testing.T) {
		var out bytes.Buffer
		s := &Shell{Stdout: &out, Stderr: &out, Stdin: strings.NewReader("")}

		require.NoError(t, s.Run(context.Background(), "echo hello"))
		assert.Equal(t, "hello\n", out.String())
	})

	t.Run("non-zero exit fails and names the command", func(t *testing.T) {
		var out bytes.Buffer
		s := &Shell{Stdout: &out, Stderr: &out, Stdin: strings.NewReader("")}

		err := s.Run(context.Background(), "exit 3")
		require.Error(t, err)
		assert.ErrorContains(t, err, `"exit 3"`)
	})

	t.Run("multi-line script body runs as one invocation", func(t *testing.T) {
		var out bytes.Buffer
		s := &Shell{Stdout: &out, Stderr: &out, Stdin: strings.NewReader("")}

		require.NoError(t, s.Run(context.Background(), "echo one\necho two\n"))
		assert.Equal(t, "one\ntwo\n", out.String())
	})
}
