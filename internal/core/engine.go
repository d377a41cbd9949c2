package core

import (
	"context"
	"fmt"
	"time"

	"github.com/nkvale/quickfind/internal/config"
	"github.com/nkvale/quickfind/internal/crawler"
	"github.com/nkvale/quickfind/internal/indexstore"
	"github.com/nkvale/quickfind/internal/observe"
	"github.com/nkvale/quickfind/internal/prefs"
	"github.com/nkvale/quickfind/internal/qflog"
	"github.com/nkvale/quickfind/internal/query"
	"github.com/nkvale/quickfind/internal/schedule"
	"github.com/nkvale/quickfind/internal/statedb"
	"github.com/nkvale/quickfind/pkg/types"
)

// Engine owns every collaborator behind the API surface: the index
// store, the dedup/state database, the query planner, the crawl pipeline,
// and the observable state publisher.
type Engine struct {
	store   *indexstore.Store
	state   *statedb.DB
	planner *query.Planner
	crawl   *crawler.Crawler
	pub     *observe.Publisher
	window  *schedule.Window
	prefs   *prefs.Store
	cfg     config.Config
	log     *qflog.Logger
}

// Open implements init_index: idempotent open/create of the on-disk index
// plus the persisted state database, wiring the query planner and crawl
// pipeline on top.
func Open(cfg config.Config) (*Engine, error) {
	store, err := indexstore.Init(cfg.IndexDir)
	if err != nil {
		return nil, fmt.Errorf("core: init index: %w", err)
	}

	state, err := statedb.Open(cfg.StateDBPath)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("core: open state db: %w", err)
	}

	planner := query.New(store, 0)
	pub := observe.NewPublisher()

	crawlCfg := crawler.Config{
		SamplingPolicy:             cfg.SamplingPolicy(),
		InitialPhaseCap:            cfg.InitialPhaseEnumerationCap,
		AutoIncrementalMinInterval: time.Duration(cfg.AutoIncrementalMinIntervalS) * time.Second,
		InitialCommitInterval:      time.Duration(cfg.InitialCommitIntervalS) * time.Second,
		BackgroundCommitInterval:   time.Duration(cfg.BackgroundCommitIntervalS) * time.Second,
	}
	crawl := crawler.New(store, state, pub, crawlCfg, planner.InvalidateCache)

	prefStore := prefs.Open(cfg.PrefsPath)

	e := &Engine{
		store:   store,
		state:   state,
		planner: planner,
		crawl:   crawl,
		pub:     pub,
		window:  schedule.NewWindow(),
		prefs:   prefStore,
		cfg:     cfg,
		log:     qflog.Default("core"),
	}
	return e, nil
}

// Close releases the index and database handles. The Engine is unusable
// afterward.
func (e *Engine) Close() error {
	e.window.Clear()
	if err := e.state.Close(); err != nil {
		_ = e.store.Close()
		return fmt.Errorf("core: close state db: %w", err)
	}
	if err := e.store.Close(); err != nil {
		return fmt.Errorf("core: close index: %w", err)
	}
	return nil
}

// ShouldReindex implements should_reindex: the dedup query.
func (e *Engine) ShouldReindex(ctx context.Context, m types.Meta) (bool, error) {
	return e.state.NeedsReindex(ctx, m.Path, m.MTime, m.Size)
}

// AddOrUpdate implements add_or_update: stage a write, not yet visible to
// Search until CommitAndRefresh returns. Dedup-cache bookkeeping is the
// crawl pipeline's responsibility, not this generic op's.
func (e *Engine) AddOrUpdate(m types.Meta, content string) error {
	doc := &types.Document{
		Path:  m.Path,
		Name:  m.Name,
		Ext:   m.Ext,
		MTime: m.MTime,
		Size:  m.Size,
		Inode: m.Inode,
		Dev:   m.Dev,
		Content: content,
	}
	return e.store.AddOrReplace(doc, e.cfg.SamplingPolicy().MaxBytes)
}

// CommitAndRefresh implements commit_and_refresh: flush staged writes and
// invalidate the query result cache so subsequent searches observe them.
func (e *Engine) CommitAndRefresh() error {
	if err := e.store.Commit(); err != nil {
		return err
	}
	e.planner.InvalidateCache()
	return nil
}

// Search implements search(query) -> results.
func (e *Engine) Search(q types.Query) ([]types.Hit, error) {
	return e.planner.Search(q)
}

// FreeResults implements free_results. Go's garbage collector already owns
// result storage; this exists only to keep the op surface complete for
// callers crossing a non-GC boundary (e.g. the MCP/CLI shells).
func (e *Engine) FreeResults(_ []types.Hit) {}

// Status is a supplemental convenience operation, outside the core
// six-operation surface: a snapshot of the observable crawl state.
func (e *Engine) Status() types.State {
	return e.pub.Snapshot()
}

// StartCrawl begins a crawl, deferring to the scheduled window when
// scheduled is true and the window preference is enabled.
func (e *Engine) StartCrawl(ctx context.Context, roots []string, mode types.Mode, phase types.Phase, scheduled bool) error {
	if scheduled {
		p, err := e.prefs.Load()
		if err != nil {
			e.log.Printf("failed to load preferences, assuming window disabled: %v", err)
		} else if p.ScheduleWindowEnabled {
			e.window.RunOrDefer(func() {
				if err := e.crawl.Start(ctx, roots, mode, phase, scheduled); err != nil {
					e.log.Printf("scheduled crawl failed: %v", err)
				}
			})
			return nil
		}
	}
	return e.crawl.Start(ctx, roots, mode, phase, scheduled)
}

// CancelCrawl stops the current crawl, if any.
func (e *Engine) CancelCrawl() {
	e.crawl.Cancel()
}

// ResetAndStart wipes the index and dedup state, then starts a full crawl.
func (e *Engine) ResetAndStart(ctx context.Context, roots []string) error {
	return e.crawl.ResetAndStart(ctx, roots)
}

// RequestIncrementalIfNeeded is the rate-limited auto-incremental trigger.
func (e *Engine) RequestIncrementalIfNeeded(ctx context.Context, roots []string) error {
	return e.crawl.RequestIncrementalIfNeeded(ctx, roots)
}

// IngestCount exposes the crawl pipeline's ingest test hook: the number
// of documents the crawl pipeline has staged since the Engine was opened.
// Documents staged through AddOrUpdate are not counted.
func (e *Engine) IngestCount() int64 {
	return e.crawl.IngestCount()
}
