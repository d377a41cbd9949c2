package indexstore

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/nkvale/quickfind/internal/schema"
	"github.com/nkvale/quickfind/pkg/types"
)

// ErrClosed is returned by any operation on a Store after Close.
var ErrClosed = errors.New("indexstore: closed")

// Store wraps a bleve.Index with a staged-write/commit discipline: writes
// accumulate in a batch and become visible to Search only on Commit. It is
// safe for concurrent use: one writer at a time is expected (enforced
// upstream by the crawl pipeline's IndexLock), but Search may run
// concurrently with staging and with itself.
type Store struct {
	mu   sync.RWMutex
	path string
	idx  bleve.Index

	batchMu  sync.Mutex
	batch    *bleve.Batch
	pending  int
	closed   bool
}

// Init opens or creates an index at path; the operation is idempotent across
// process restarts. An absent index is created empty. When an existing index
// fails to open, Init tries to create a new one at the same path without
// removing the old directory first, so a corrupt index is reported as an
// error; Reset is the recovery path.
func Init(path string) (*Store, error) {
	idx, err := bleve.Open(path)
	if err != nil {
		m, merr := schema.BuildIndexMapping()
		if merr != nil {
			return nil, fmt.Errorf("indexstore: build mapping: %w", merr)
		}
		idx, err = bleve.New(path, m)
		if err != nil {
			return nil, fmt.Errorf("indexstore: create index at %s: %w", path, err)
		}
	}
	return &Store{path: path, idx: idx}, nil
}

// AddOrReplace stages a write that supersedes any prior document with the
// same path. Not visible to Search until Commit returns. maxContentBytes is
// the caller's effective sampling cap at ingest time, validated against
// doc.Content instead of the package default so a configured max_bytes
// override is honored.
func (s *Store) AddOrReplace(doc *types.Document, maxContentBytes uint64) error {
	if err := doc.Validate(maxContentBytes); err != nil {
		return err
	}
	s.batchMu.Lock()
	defer s.batchMu.Unlock()
	if s.batch == nil {
		s.batch = s.idx.NewBatch()
	}
	id, body := schema.ToIndexDoc(doc)
	if err := s.batch.Index(id, body); err != nil {
		return fmt.Errorf("indexstore: stage %s: %w", doc.Path, err)
	}
	s.pending++
	return nil
}

// Pending reports the number of staged, uncommitted writes.
func (s *Store) Pending() int {
	s.batchMu.Lock()
	defer s.batchMu.Unlock()
	return s.pending
}

// Commit flushes staged writes into an on-disk segment and refreshes bleve's
// reader so subsequent Search calls observe them. A no-op batch returns nil
// without touching the index. Either the whole batch becomes visible or,
// on error, the prior visible state is unchanged — bleve.Index.Batch is
// itself atomic per call.
func (s *Store) Commit() error {
	s.batchMu.Lock()
	b := s.batch
	s.batch = nil
	s.pending = 0
	s.batchMu.Unlock()

	if b == nil || b.Size() == 0 {
		return nil
	}

	s.mu.RLock()
	idx := s.idx
	s.mu.RUnlock()
	if idx == nil {
		return ErrClosed
	}
	if err := idx.Batch(b); err != nil {
		return fmt.Errorf("indexstore: commit: %w", err)
	}
	return nil
}

// Search runs req against the currently visible reader. Never blocks writes.
func (s *Store) Search(req *bleve.SearchRequest) (*bleve.SearchResult, error) {
	s.mu.RLock()
	idx := s.idx
	s.mu.RUnlock()
	if idx == nil {
		return nil, ErrClosed
	}
	return idx.Search(req)
}

// Reset closes the reader, deletes the on-disk index, and reinitializes an
// empty one. Used for full rebuilds and corrupt-segment recovery.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.idx != nil {
		if err := s.idx.Close(); err != nil {
			return fmt.Errorf("indexstore: close before reset: %w", err)
		}
	}
	if err := os.RemoveAll(s.path); err != nil {
		return fmt.Errorf("indexstore: remove %s: %w", s.path, err)
	}
	m, err := schema.BuildIndexMapping()
	if err != nil {
		return fmt.Errorf("indexstore: build mapping: %w", err)
	}
	idx, err := bleve.New(s.path, m)
	if err != nil {
		return fmt.Errorf("indexstore: reinitialize %s: %w", s.path, err)
	}
	s.idx = idx

	s.batchMu.Lock()
	s.batch = nil
	s.pending = 0
	s.batchMu.Unlock()

	return nil
}

// Close releases the index's reader/writer. The Store is unusable afterward.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.idx == nil {
		return nil
	}
	err := s.idx.Close()
	s.idx = nil
	s.closed = true
	return err
}

// Closed reports whether Close has been called.
func (s *Store) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}
