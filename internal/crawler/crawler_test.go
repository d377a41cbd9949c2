package crawler

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkvale/quickfind/internal/indexstore"
	"github.com/nkvale/quickfind/internal/observe"
	"github.com/nkvale/quickfind/internal/statedb"
	"github.com/nkvale/quickfind/pkg/types"
)

func newTestCrawler(t *testing.T) (*Crawler, *indexstore.Store, *statedb.DB) {
	t.Helper()
	tmp := t.TempDir()

	store, err := indexstore.Init(filepath.Join(tmp, "index.bleve"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	db, err := statedb.Open(filepath.Join(tmp, "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	pub := observe.NewPublisher()
	c := New(store, db, pub, Config{Workers: 2, BatchSize: 10}, nil)
	return c, store, db
}

func TestCrawler_FullIndexesAllFiles(t *testing.T) {
	c, store, _ := newTestCrawler(t)
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "alpha.txt"), []byte("hello world"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "beta.txt"), []byte("second file"), 0o644))

	err := c.Start(context.Background(), []string{root}, types.ModeFull, types.PhaseInitial, false)
	require.NoError(t, err)
	assert.Equal(t, 0, store.Pending())
}

func TestCrawler_ConcurrentStartReturnsInProgress(t *testing.T) {
	c, _, _ := newTestCrawler(t)
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "f.txt"), []byte("x"), 0o644))

	require.True(t, c.lock.TryAcquire())
	defer c.lock.Release()

	err := c.Start(context.Background(), []string{root}, types.ModeFull, types.PhaseInitial, false)
	assert.ErrorIs(t, err, ErrIndexingInProgress)
}

func TestCrawler_ResetAndStartClearsPriorState(t *testing.T) {
	c, store, db := newTestCrawler(t)
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "one.txt"), []byte("one"), 0o644))

	require.NoError(t, c.Start(context.Background(), []string{root}, types.ModeFull, types.PhaseInitial, false))
	needs, err := db.NeedsReindex(context.Background(), filepath.Join(root, "one.txt"), 0, 3)
	require.NoError(t, err)
	assert.True(t, needs) // mtime mismatch vs recorded entry, still present in cache

	require.NoError(t, c.ResetAndStart(context.Background(), []string{root}))
	assert.Equal(t, 0, store.Pending())
}

func TestCrawler_RequestIncrementalIfNeeded_RateLimited(t *testing.T) {
	c, _, _ := newTestCrawler(t)
	c.cfg.AutoIncrementalMinInterval = 0
	root := t.TempDir()

	require.NoError(t, c.RequestIncrementalIfNeeded(context.Background(), []string{root}))

	c.cfg.AutoIncrementalMinInterval = 1 << 30
	err := c.RequestIncrementalIfNeeded(context.Background(), []string{root})
	assert.NoError(t, err) // suppressed silently, not an error
}

func TestCrawler_SkipsZeroSizeFiles(t *testing.T) {
	c, _, db := newTestCrawler(t)
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "empty.txt"), nil, 0o644))

	require.NoError(t, c.Start(context.Background(), []string{root}, types.ModeFull, types.PhaseInitial, false))

	needs, err := db.NeedsReindex(context.Background(), filepath.Join(root, "empty.txt"), 0, 0)
	require.NoError(t, err)
	assert.True(t, needs) // never recorded, since the zero-size entry was skipped
}

func TestCrawler_CancelStopsRun(t *testing.T) {
	c, _, _ := newTestCrawler(t)
	root := t.TempDir()
	for i := 0; i < 50; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(root, string(rune('a'+i%26))+".txt"), []byte("x"), 0o644))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.Start(ctx, []string{root}, types.ModeFull, types.PhaseInitial, false)
	require.NoError(t, err)
}
