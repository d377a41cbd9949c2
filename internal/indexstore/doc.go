// Package indexstore owns the on-disk inverted index: init/add_or_replace/
// commit/search/reset/close over a bleve.Index.
// Staged writes are buffered in a bleve.Batch and only become visible to
// Search after Commit succeeds, giving the store's reader-refresh guarantee
// without any extra locking beyond what bleve's scorch segments already do.
package indexstore
