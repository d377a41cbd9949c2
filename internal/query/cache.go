package query

import (
	"crypto/sha256"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/nkvale/quickfind/pkg/types"
)

// defaultCacheSize is the entry count used when the caller requests none.
const defaultCacheSize = 1000

// resultCache memoizes Search by the query's full wire shape, invalidated
// wholesale on every commit: a commit makes all preceding writes visible,
// so any cached result from before it is potentially stale.
type resultCache struct {
	mu    sync.RWMutex
	cache *lru.Cache[[32]byte, []types.Hit]
}

func newResultCache(size int) *resultCache {
	if size <= 0 {
		size = defaultCacheSize
	}
	c, err := lru.New[[32]byte, []types.Hit](size)
	if err != nil {
		// Only returns an error for a non-positive size, already guarded above.
		panic(fmt.Sprintf("query: failed to create result cache: %v", err))
	}
	return &resultCache{cache: c}
}

func (rc *resultCache) get(q types.Query) ([]types.Hit, bool) {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.cache.Get(hashQuery(q))
}

func (rc *resultCache) put(q types.Query, hits []types.Hit) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.cache.Add(hashQuery(q), hits)
}

// purge drops every cached entry, called after a successful commit.
func (rc *resultCache) purge() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.cache.Purge()
}

func hashQuery(q types.Query) [32]byte {
	s := fmt.Sprintf("%s|%s|%d|%d|%v", q.Text, q.Glob, q.Scope, q.Limit, q.SortByModified)
	return sha256.Sum256([]byte(s))
}
