package crawler

import "sync/atomic"

// IndexLock is a non-blocking single-flight guard serializing start/
// reset_and_start against concurrent crawls: only one crawl worker runs
// at a time. Built on atomic.Int32 rather than sync.Mutex so a failed
// TryAcquire never blocks the caller.
type IndexLock struct {
	state atomic.Int32
}

// TryAcquire attempts to take the lock, returning true on success.
func (l *IndexLock) TryAcquire() bool {
	return l.state.CompareAndSwap(0, 1)
}

// Release frees the lock.
func (l *IndexLock) Release() {
	l.state.Store(0)
}

// Locked reports whether a crawl currently holds the lock.
func (l *IndexLock) Locked() bool {
	return l.state.Load() == 1
}
