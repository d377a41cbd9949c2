package observe

import (
	"sync"

	"github.com/nkvale/quickfind/pkg/types"
)

// Publisher holds the current State and broadcasts changes to subscribers.
// One writer (the crawl pipeline), many readers (the shell).
type Publisher struct {
	mu    sync.RWMutex
	state types.State

	subMu sync.Mutex
	subs  map[int]chan types.State
	next  int
}

// NewPublisher returns a Publisher starting from the idle state.
func NewPublisher() *Publisher {
	return &Publisher{
		state: types.State{Status: types.StatusIdle},
		subs:  make(map[int]chan types.State),
	}
}

// Snapshot returns a consistent copy of the current state.
func (p *Publisher) Snapshot() types.State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s := p.state
	s.CloudPlaceholders = append([]string(nil), p.state.CloudPlaceholders...)
	return s
}

// Set replaces the current state and notifies subscribers. Non-blocking:
// a subscriber that isn't draining its channel misses intermediate updates
// but never stalls the pipeline.
func (p *Publisher) Set(s types.State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()

	snapshot := p.Snapshot()
	p.subMu.Lock()
	defer p.subMu.Unlock()
	for _, ch := range p.subs {
		select {
		case ch <- snapshot:
		default:
		}
	}
}

// Update applies fn to a copy of the current state and publishes the result.
func (p *Publisher) Update(fn func(*types.State)) {
	p.mu.Lock()
	s := p.state
	fn(&s)
	p.state = s
	p.mu.Unlock()

	snapshot := p.Snapshot()
	p.subMu.Lock()
	defer p.subMu.Unlock()
	for _, ch := range p.subs {
		select {
		case ch <- snapshot:
		default:
		}
	}
}

// Subscribe registers a channel that receives state snapshots on every
// change. Call the returned function to unsubscribe.
func (p *Publisher) Subscribe() (<-chan types.State, func()) {
	p.subMu.Lock()
	defer p.subMu.Unlock()
	id := p.next
	p.next++
	ch := make(chan types.State, 8)
	p.subs[id] = ch
	return ch, func() {
		p.subMu.Lock()
		defer p.subMu.Unlock()
		if c, ok := p.subs[id]; ok {
			delete(p.subs, id)
			close(c)
		}
	}
}
