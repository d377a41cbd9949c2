package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkvale/quickfind/pkg/types"
)

// An ext filter combined with a bare word narrows to documents matching
// both the extension and the term.
func TestScenario_ExtFilterCombinedWithTerm(t *testing.T) {
	e := newEngine(t)
	root := t.TempDir()
	writeFile(t, root, "q3-budget.pdf", "fiscal", 0)
	writeFile(t, root, "budget.docx", "fiscal", 0)

	require.NoError(t, e.StartCrawl(context.Background(), []string{root}, types.ModeFull, types.PhaseInitial, false))

	hits, err := e.Search(types.Query{Text: "ext:pdf budget", Scope: types.ScopeBoth, Limit: 10})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "q3-budget.pdf", hits[0].Name)
}

// Ranking order favors a name-prefix match over a tokenized-name match
// over a body-only match.
func TestProperty_RankingOrderPrefersNameOverContent(t *testing.T) {
	e := newEngine(t)
	root := t.TempDir()
	writeFile(t, root, "README.md", "project overview", 0)
	writeFile(t, root, "readme-archive.txt", "old notes", 0)
	writeFile(t, root, "notes.txt", "see readme here for details", 0)

	require.NoError(t, e.StartCrawl(context.Background(), []string{root}, types.ModeFull, types.PhaseInitial, false))

	hits, err := e.Search(types.Query{Text: "readme", Scope: types.ScopeBoth, Limit: 10})
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, "README.md", hits[0].Name)
	assert.Equal(t, "readme-archive.txt", hits[1].Name)
	assert.Equal(t, "notes.txt", hits[2].Name)
}

// A mixed-case query term still gets the name-prefix boost: name_raw's
// analyzer lower-cases indexed terms, so the query side must too.
func TestProperty_NamePrefixMatchIsCaseInsensitive(t *testing.T) {
	e := newEngine(t)
	root := t.TempDir()
	writeFile(t, root, "README.md", "see body text for details", 0)
	writeFile(t, root, "other.txt", "a README is mentioned here too", 0)

	require.NoError(t, e.StartCrawl(context.Background(), []string{root}, types.ModeFull, types.PhaseInitial, false))

	hits, err := e.Search(types.Query{Text: "README", Scope: types.ScopeBoth, Limit: 10})
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "README.md", hits[0].Name)
}

// Every hit returned under a glob filter matches that glob.
func TestProperty_GlobPostFilterRestrictsAllHits(t *testing.T) {
	e := newEngine(t)
	root := t.TempDir()
	draftsDir := root + "/drafts"
	require.NoError(t, mkdirAll(draftsDir))
	writeFile(t, draftsDir, "idea.txt", "concept sketch", 0)
	writeFile(t, root, "concept.txt", "concept final", 0)

	require.NoError(t, e.StartCrawl(context.Background(), []string{root}, types.ModeFull, types.PhaseInitial, false))

	hits, err := e.Search(types.Query{Text: "concept", Scope: types.ScopeContent, Glob: "**/drafts/*", Limit: 10})
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	for _, h := range hits {
		assert.Contains(t, h.Path, "/drafts/")
	}
}

// A repeated search never returns more than one entry for the same path.
func TestProperty_IdentityNoDuplicatePaths(t *testing.T) {
	e := newEngine(t)
	root := t.TempDir()
	writeFile(t, root, "a.txt", "unique marker phrase", 0)

	require.NoError(t, e.StartCrawl(context.Background(), []string{root}, types.ModeFull, types.PhaseInitial, false))
	require.NoError(t, e.StartCrawl(context.Background(), []string{root}, types.ModeIncremental, types.PhaseInitial, false))

	hits, err := e.Search(types.Query{Text: "marker", Scope: types.ScopeContent, Limit: 10})
	require.NoError(t, err)

	seen := map[string]int{}
	for _, h := range hits {
		seen[h.Path]++
	}
	for path, count := range seen {
		assert.LessOrEqualf(t, count, 1, "path %s appeared %d times", path, count)
	}
}

// A second incremental crawl over an unchanged tree performs zero
// add_or_update calls, observed via the Crawler's ingest-count test hook.
func TestProperty_DedupIdempotenceOnUnchangedTree(t *testing.T) {
	e := newEngine(t)
	root := t.TempDir()
	writeFile(t, root, "a.txt", "stable content", 0)
	writeFile(t, root, "b.txt", "more stable content", 0)

	require.NoError(t, e.StartCrawl(context.Background(), []string{root}, types.ModeFull, types.PhaseInitial, false))
	firstCount := e.IngestCount()
	assert.Equal(t, int64(2), firstCount)

	require.NoError(t, e.StartCrawl(context.Background(), []string{root}, types.ModeIncremental, types.PhaseInitial, false))
	assert.Equal(t, firstCount, e.IngestCount())
}
