package crawler

import "errors"

// ErrIndexingInProgress is returned by Start/ResetAndStart when a crawl
// already holds the IndexLock.
var ErrIndexingInProgress = errors.New("crawler: indexing already in progress")
