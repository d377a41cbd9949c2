package query

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/nkvale/quickfind/internal/indexstore"
	"github.com/nkvale/quickfind/internal/schema"
	"github.com/nkvale/quickfind/pkg/types"
)

const defaultLimit = 50

// Planner is the Query Planner: it parses the compact grammar,
// builds a weighted bleve query, runs it against the store, applies the
// post-score glob filter, and assembles the final ranked/paginated hits.
type Planner struct {
	store *indexstore.Store
	cache *resultCache
}

// New constructs a Planner over store with a query result cache of the given
// size (0 uses the package default).
func New(store *indexstore.Store, cacheSize int) *Planner {
	return &Planner{store: store, cache: newResultCache(cacheSize)}
}

// InvalidateCache purges every cached result. Call after a successful
// commit queries issued after a commit must observe its writes).
func (p *Planner) InvalidateCache() {
	p.cache.purge()
}

// Search implements the search(query) -> results operation.
func (p *Planner) Search(q types.Query) ([]types.Hit, error) {
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}

	if hits, ok := p.cache.get(q); ok {
		return cloneHits(hits), nil
	}

	clauses := parse(q.Text)
	bleveQuery := buildBleveQuery(clauses, q.Scope)
	req := newSearchRequest(bleveQuery, int(q.Limit))

	res, err := p.store.Search(req)
	if err != nil {
		return nil, fmt.Errorf("query: search: %w", err)
	}

	hits := make([]types.Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		path := fieldString(h.Fields, schema.FieldPath)
		if path == "" {
			path = h.ID
		}
		if !matchGlob(q.Glob, path) {
			continue
		}
		hits = append(hits, types.Hit{
			Path:  path,
			Name:  filepath.Base(path),
			MTime: fieldInt64(h.Fields, schema.FieldMTime),
			Size:  fieldUint64(h.Fields, schema.FieldSize),
			Score: float32(h.Score),
		})
	}

	sortHits(hits, q.SortByModified)
	if int(q.Limit) < len(hits) {
		hits = hits[:q.Limit]
	}

	p.cache.put(q, hits)
	return cloneHits(hits), nil
}

// sortHits applies the tie-break (score desc, mtime desc, path asc),
// or the optional stable sort-by-modified post-processing pass.
func sortHits(hits []types.Hit, byModified bool) {
	if byModified {
		sort.SliceStable(hits, func(i, j int) bool {
			return hits[i].MTime > hits[j].MTime
		})
		return
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		if hits[i].MTime != hits[j].MTime {
			return hits[i].MTime > hits[j].MTime
		}
		return hits[i].Path < hits[j].Path
	})
}

func cloneHits(hits []types.Hit) []types.Hit {
	out := make([]types.Hit, len(hits))
	copy(out, hits)
	return out
}

func fieldString(fields map[string]interface{}, name string) string {
	v, _ := fields[name].(string)
	return v
}

func fieldInt64(fields map[string]interface{}, name string) int64 {
	switch v := fields[name].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	default:
		return 0
	}
}

func fieldUint64(fields map[string]interface{}, name string) uint64 {
	switch v := fields[name].(type) {
	case float64:
		return uint64(v)
	case uint64:
		return v
	default:
		return 0
	}
}
