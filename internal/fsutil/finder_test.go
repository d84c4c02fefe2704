package fsutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterwwillis/bashdag/internal/testutil"
)

func TestCollectFiles(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteFiles(t, map[string]string{
		"a.hcl":        "",
		"nested/b.hcl": "",
		"ignored.toml": "",
	})

	t.Run("directory collects matching files recursively", func(t *testing.T) {
		files, err := CollectFiles(dir, ".hcl")
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "a.hcl"),
			filepath.Join(dir, "nested", "b.hcl"),
		}, files)
	})

	t.Run("file path is returned as-is", func(t *testing.T) {
		path := filepath.Join(dir, "ignored.toml")
		files, err := CollectFiles(path, ".hcl")
		require.NoError(t, err)
		assert.Equal(t, []string{path}, files)
	})

	t.Run("missing path errors", func(t *testing.T) {
		_, err := CollectFiles(filepath.Join(dir, "absent"), ".hcl")
		require.Error(t, err)
	})
}
