package app

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterwwillis/bashdag/internal/config"
	"github.com/peterwwillis/bashdag/internal/testutil"
)

// stubLoader returns a fixed manifest or error without touching the
// filesystem.
type stubLoader struct {
	manifest *config.Manifest
	err      error
}

func (l *stubLoader) Load(_ context.Context, _ string) (*config.Manifest, error) {
	return l.manifest, l.err
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	t.Run("manifest path is required", func(t *testing.T) {
		_, err := NewConfig(Config{})
		require.Error(t, err)
	})

	t.Run("show defaults on when neither mode is set", func(t *testing.T) {
		cfg, err := NewConfig(Config{ManifestPath: "/p"})
		require.NoError(t, err)
		assert.True(t, cfg.Show)
		assert.False(t, cfg.Run)
	})

	t.Run("explicit run does not force show", func(t *testing.T) {
		cfg, err := NewConfig(Config{ManifestPath: "/p", Run: true})
		require.NoError(t, err)
		assert.False(t, cfg.Show)
		assert.True(t, cfg.Run)
	})
}

func TestBuildGraph(t *testing.T) {
	t.Parallel()

	manifest := &config.Manifest{
		Tasks: []*config.Task{
			{Name: "build", DependsOn: []string{"generate"}, Command: []string{"go", "build"}},
			{Name: "clean", Script: "rm -rf bin\n"},
			{Name: "build", Command: []string{"go", "build", "-v"}}, // re-declaration
		},
	}

	g := buildGraph(context.Background(), manifest)
	require.Equal(t, 3, g.Len())

	buildID, err := g.IDOf("build")
	require.NoError(t, err)
	genID, err := g.IDOf("generate")
	require.NoError(t, err)
	assert.Equal(t, 0, buildID, "IDs assigned in first-seen order")
	assert.Equal(t, 1, genID)

	assert.Equal(t, []string{"generate"}, g.DependencyNames(buildID))

	cmd, ok := g.Command(buildID)
	require.True(t, ok)
	assert.Equal(t, "go build -v", cmd, "last program declaration wins")

	cleanID, err := g.IDOf("clean")
	require.NoError(t, err)
	cmd, ok = g.Command(cleanID)
	require.True(t, ok)
	assert.Equal(t, "rm -rf bin\n", cmd, "script body preserved verbatim")

	_, ok = g.Command(genID)
	assert.False(t, ok, "implicitly created dependency has no program")
}

func TestNewApp(t *testing.T) {
	t.Parallel()

	t.Run("logs graph population at debug level", func(t *testing.T) {
		t.Parallel()

		cfg, err := NewConfig(Config{ManifestPath: "/p", LogLevel: "debug"})
		require.NoError(t, err)

		logBuffer := &testutil.SafeBuffer{}
		loader := &stubLoader{manifest: &config.Manifest{
			Tasks: []*config.Task{{Name: "only", Command: []string{"true"}}},
		}}

		a, err := NewApp(&bytes.Buffer{}, logBuffer, cfg, loader)
		require.NoError(t, err)
		assert.Equal(t, 1, a.Graph().Len())
		assert.Contains(t, logBuffer.String(), "task graph populated")
	})

	t.Run("loader failure is wrapped", func(t *testing.T) {
		t.Parallel()

		cfg, err := NewConfig(Config{ManifestPath: "/p"})
		require.NoError(t, err)

		loader := &stubLoader{err: errors.New("manifest exploded")}
		_, err = NewApp(&bytes.Buffer{}, &testutil.SafeBuffer{}, cfg, loader)
		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to load manifest")
		assert.ErrorContains(t, err, "manifest exploded")
	})
}
