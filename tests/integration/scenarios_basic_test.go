package integration

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkvale/quickfind/pkg/types"
)

// A fresh full crawl indexes text files and skips binary content, but
// still indexes the binary file by name.
func TestScenario_FreshIndexSkipsBinaryContent(t *testing.T) {
	e := newEngine(t)
	root := t.TempDir()

	writeFile(t, root, "a.txt", "hello world", 0)
	writeFile(t, root, "b.md", "hello again", 0)
	binPath := filepath.Join(root, "c.bin")
	require.NoError(t, os.WriteFile(binPath, append(make([]byte, 16), []byte("hello")...), 0o644))

	require.NoError(t, e.StartCrawl(context.Background(), []string{root}, types.ModeFull, types.PhaseInitial, false))

	assert.EqualValues(t, 3, e.Status().FilesIndexed)

	hits, err := e.Search(types.Query{Text: "hello", Scope: types.ScopeContent, Limit: 10})
	require.NoError(t, err)

	names := hitPaths(hits)
	sort.Strings(names)
	require.Len(t, names, 2)
	assert.Equal(t, filepath.Join(root, "a.txt"), names[0])
	assert.Equal(t, filepath.Join(root, "b.md"), names[1])
	for _, h := range hits {
		assert.Greater(t, h.Score, float32(0))
	}

	// c.bin must not appear in a content-scoped search for its sampled body.
	for _, h := range hits {
		assert.NotEqual(t, binPath, h.Path)
	}
}

// An incremental crawl after a file is edited sees only the change.
func TestScenario_IncrementalCrawlSeesOnlyChangedFile(t *testing.T) {
	e := newEngine(t)
	root := t.TempDir()

	aPath := writeFile(t, root, "a.txt", "hello world", 0)
	writeFile(t, root, "b.md", "hello again", 0)

	require.NoError(t, e.StartCrawl(context.Background(), []string{root}, types.ModeFull, types.PhaseInitial, false))

	// Edit a.txt and move its mtime forward so the dedup cache sees a change.
	newMTime := time.Now().Add(2 * time.Second)
	require.NoError(t, os.WriteFile(aPath, []byte("goodbye"), 0o644))
	require.NoError(t, os.Chtimes(aPath, newMTime, newMTime))

	require.NoError(t, e.StartCrawl(context.Background(), []string{root}, types.ModeIncremental, types.PhaseInitial, false))

	assert.EqualValues(t, 1, e.Status().FilesIndexed)

	helloHits, err := e.Search(types.Query{Text: "hello", Scope: types.ScopeContent, Limit: 10})
	require.NoError(t, err)
	require.Len(t, helloHits, 1)
	assert.Equal(t, filepath.Join(root, "b.md"), helloHits[0].Path)

	goodbyeHits, err := e.Search(types.Query{Text: "goodbye", Scope: types.ScopeContent, Limit: 10})
	require.NoError(t, err)
	require.Len(t, goodbyeHits, 1)
	assert.Equal(t, aPath, goodbyeHits[0].Path)
}
