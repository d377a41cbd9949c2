package schedule

import (
	"sync"
	"time"
)

// WindowStartHour and WindowEndHour bound the local-time window incremental crawls
// are deferred into when scheduling is enabled.
const (
	WindowStartHour = 2
	WindowEndHour   = 4
)

// Window owns a single-shot timer deferring a callback to the next
// WindowStartHour:00 local time. Clearable independent of the crawl
// worker's lifecycle.
type Window struct {
	mu    sync.Mutex
	timer *time.Timer
	now   func() time.Time
}

// NewWindow returns a Window using the real wall clock.
func NewWindow() *Window {
	return &Window{now: time.Now}
}

// InWindow reports whether t's local hour falls within
// [WindowStartHour, WindowEndHour).
func InWindow(t time.Time) bool {
	h := t.Hour()
	return h >= WindowStartHour && h < WindowEndHour
}

// NextWindowStart returns the first WindowStartHour:00 local time strictly
// after from; a from exactly at WindowStartHour:00 yields the next day's.
func NextWindowStart(from time.Time) time.Time {
	candidate := time.Date(from.Year(), from.Month(), from.Day(), WindowStartHour, 0, 0, 0, from.Location())
	if !candidate.After(from) {
		candidate = candidate.Add(24 * time.Hour)
	}
	return candidate
}

// RunOrDefer runs fn immediately if now is inside the window; otherwise it
// arms a single-shot timer for the next window start and runs fn then.
// Any previously armed timer is cleared first.
func (w *Window) RunOrDefer(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	nowFn := w.now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn()

	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}

	if InWindow(now) {
		go fn()
		return
	}

	delay := NextWindowStart(now).Sub(now)
	w.timer = time.AfterFunc(delay, fn)
}

// Clear cancels any armed timer without running its callback.
func (w *Window) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
