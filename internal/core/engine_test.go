package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkvale/quickfind/internal/config"
	"github.com/nkvale/quickfind/pkg/types"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	tmp := t.TempDir()
	cfg := config.Default()
	cfg.IndexDir = filepath.Join(tmp, "index.bleve")
	cfg.StateDBPath = filepath.Join(tmp, "state.db")
	cfg.PrefsPath = filepath.Join(tmp, "prefs.json")

	e, err := Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func TestEngine_AddCommitSearchRoundTrip(t *testing.T) {
	e := newTestEngine(t)

	m := types.Meta{Path: "/a/budget.txt", Name: "budget.txt", MTime: 1, Size: 10}
	needs, err := e.ShouldReindex(context.Background(), m)
	require.NoError(t, err)
	assert.True(t, needs)

	require.NoError(t, e.AddOrUpdate(m, "quarterly budget numbers"))
	require.NoError(t, e.CommitAndRefresh())

	hits, err := e.Search(types.Query{Text: "budget", Scope: types.ScopeBoth, Limit: 10})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "budget.txt", hits[0].Name)
}

func TestEngine_StatusReflectsCrawl(t *testing.T) {
	e := newTestEngine(t)
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello"), 0o644))

	require.NoError(t, e.StartCrawl(context.Background(), []string{root}, types.ModeFull, types.PhaseInitial, false))
	st := e.Status()
	assert.Equal(t, types.StatusCompleted, st.Status)
}

func TestEngine_FreeResultsIsNoop(t *testing.T) {
	e := newTestEngine(t)
	e.FreeResults([]types.Hit{{Path: "/a"}})
}
