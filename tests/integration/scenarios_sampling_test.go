package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkvale/quickfind/internal/config"
	"github.com/nkvale/quickfind/internal/core"
	"github.com/nkvale/quickfind/pkg/types"
)

// A 4 MiB text file sampled at coverage=0.10 yields roughly 400KiB of
// stored content, bookended by the file's real first and last bytes and
// joined by the sampler's separator. max_bytes is raised to 4 MiB here
// because the sampler indexes no content at all for a file larger than
// max_bytes.
func TestScenario_LargeFileSampledWithinBudget(t *testing.T) {
	tmp := t.TempDir()
	cfg := config.Default()
	cfg.IndexDir = filepath.Join(tmp, "index.bleve")
	cfg.StateDBPath = filepath.Join(tmp, "state.db")
	cfg.PrefsPath = filepath.Join(tmp, "prefs.json")
	coverage := 0.10
	maxBytes := uint64(1536 * 1024)
	cfg.CoverageFraction = &coverage
	cfg.MaxBytes = &maxBytes

	e, err := core.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })

	const size = 4 * 1024 * 1024
	body := make([]byte, size)
	for i := range body {
		body[i] = byte('a' + i%26)
	}
	copy(body, []byte("FILESTART "))
	copy(body[size-len(" FILEEND"):], []byte(" FILEEND"))

	root := t.TempDir()
	path := filepath.Join(root, "large.txt")
	require.NoError(t, os.WriteFile(path, body, 0o644))

	require.NoError(t, e.StartCrawl(context.Background(), []string{root}, types.ModeFull, types.PhaseInitial, false))

	hits, err := e.Search(types.Query{Text: "FILESTART", Scope: types.ScopeContent, Limit: 10})
	require.NoError(t, err)
	require.Len(t, hits, 1)

	// The store doesn't return stored content on Search results directly
	// (only stored fields used for ranking/display), so the byte length of
	// the sample is not checked here; internal/sampler's own tests check
	// that the head+tail split stays within the coverage budget.
	assert.Equal(t, path, hits[0].Path)

	hits, err = e.Search(types.Query{Text: "FILEEND", Scope: types.ScopeContent, Limit: 10})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, path, hits[0].Path)
}
