package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInWindow(t *testing.T) {
	loc := time.UTC
	assert.True(t, InWindow(time.Date(2026, 1, 1, 2, 0, 0, 0, loc)))
	assert.True(t, InWindow(time.Date(2026, 1, 1, 3, 59, 0, 0, loc)))
	assert.False(t, InWindow(time.Date(2026, 1, 1, 4, 0, 0, 0, loc)))
	assert.False(t, InWindow(time.Date(2026, 1, 1, 1, 59, 0, 0, loc)))
}

func TestNextWindowStart_SameDayBeforeWindow(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 30, 0, 0, time.UTC)
	got := NextWindowStart(from)
	assert.Equal(t, time.Date(2026, 1, 1, 2, 0, 0, 0, time.UTC), got)
}

func TestNextWindowStart_AfterWindowRollsToNextDay(t *testing.T) {
	from := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	got := NextWindowStart(from)
	assert.Equal(t, time.Date(2026, 1, 2, 2, 0, 0, 0, time.UTC), got)
}

func TestRunOrDefer_RunsImmediatelyInsideWindow(t *testing.T) {
	w := &Window{now: func() time.Time { return time.Date(2026, 1, 1, 2, 30, 0, 0, time.UTC) }}
	done := make(chan struct{})
	w.RunOrDefer(func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("fn did not run immediately inside the window")
	}
}

func TestClear_StopsArmedTimer(t *testing.T) {
	w := &Window{now: func() time.Time { return time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC) }}
	ran := make(chan struct{}, 1)
	w.RunOrDefer(func() { ran <- struct{}{} })
	w.Clear()
	select {
	case <-ran:
		t.Fatal("fn ran after Clear")
	case <-time.After(50 * time.Millisecond):
	}
}
