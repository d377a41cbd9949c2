// Package integration exercises the whole quickfind stack through
// internal/core.Engine the way the CLI and MCP surface do, covering the
// scenarios and testable properties for a local incremental file search
// engine.
package integration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nkvale/quickfind/internal/config"
	"github.com/nkvale/quickfind/internal/core"
	"github.com/nkvale/quickfind/pkg/types"
)

func newEngine(t *testing.T) *core.Engine {
	t.Helper()
	tmp := t.TempDir()
	cfg := config.Default()
	cfg.IndexDir = filepath.Join(tmp, "index.bleve")
	cfg.StateDBPath = filepath.Join(tmp, "state.db")
	cfg.PrefsPath = filepath.Join(tmp, "prefs.json")

	e, err := core.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e
}

// writeFile creates a file under dir with the given content and sets its
// mtime ageDays in the past (0 means "now").
func writeFile(t *testing.T, dir, name, content string, ageDays int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	if ageDays > 0 {
		mtime := time.Now().Add(-time.Duration(ageDays) * 24 * time.Hour)
		require.NoError(t, os.Chtimes(path, mtime, mtime))
	}
	return path
}

func mkdirAll(path string) error {
	return os.MkdirAll(path, 0o755)
}

func hitPaths(hits []types.Hit) []string {
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.Path
	}
	return out
}
