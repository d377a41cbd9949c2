package crawler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/nkvale/quickfind/internal/indexstore"
	"github.com/nkvale/quickfind/internal/observe"
	"github.com/nkvale/quickfind/internal/qflog"
	"github.com/nkvale/quickfind/internal/sampler"
	"github.com/nkvale/quickfind/internal/statedb"
	"github.com/nkvale/quickfind/pkg/types"
)

// Config tunes worker concurrency, batching, and commit cadence. Zero
// values are defaulted by New.
type Config struct {
	Workers        int
	BatchSize      int
	SamplingPolicy types.SamplingPolicy

	InitialPhaseCap            int
	InitialCommitInterval      time.Duration
	BackgroundCommitInterval   time.Duration
	AutoIncrementalMinInterval time.Duration
}

func (c *Config) setDefaults() {
	if c.Workers <= 0 {
		c.Workers = 4
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 200
	}
	if c.SamplingPolicy == (types.SamplingPolicy{}) {
		c.SamplingPolicy = types.DefaultSamplingPolicy()
	}
	if c.InitialPhaseCap <= 0 {
		c.InitialPhaseCap = 20000
	}
	if c.InitialCommitInterval <= 0 {
		c.InitialCommitInterval = 2 * time.Second
	}
	if c.BackgroundCommitInterval <= 0 {
		c.BackgroundCommitInterval = 1800 * time.Second
	}
	if c.AutoIncrementalMinInterval <= 0 {
		c.AutoIncrementalMinInterval = 60 * time.Second
	}
}

// Crawler drives the ingest pipeline.
type Crawler struct {
	store        *indexstore.Store
	state        *statedb.DB
	pub          *observe.Publisher
	placeholders *placeholderSet
	cfg          Config
	log          *qflog.Logger

	// onCommit is invoked after every successful Commit so callers (e.g. the
	// query result cache) can invalidate derived state.
	onCommit func()

	lock      IndexLock
	cancelMu  sync.Mutex
	cancelFn  context.CancelFunc

	attemptMu   sync.Mutex
	lastAttempt time.Time

	// ingestCount is a test hook: it counts successful
	// AddOrReplace calls across the Crawler's lifetime so a test can assert
	// a repeated incremental crawl over an unchanged tree performs zero.
	ingestCount atomic.Int64
}

// IngestCount returns the number of documents staged via AddOrReplace since
// the Crawler was constructed.
func (c *Crawler) IngestCount() int64 {
	return c.ingestCount.Load()
}

// New constructs a Crawler. onCommit may be nil.
func New(store *indexstore.Store, state *statedb.DB, pub *observe.Publisher, cfg Config, onCommit func()) *Crawler {
	cfg.setDefaults()
	return &Crawler{
		store:        store,
		state:        state,
		pub:          pub,
		placeholders: newPlaceholderSet(),
		cfg:          cfg,
		log:          qflog.Default("crawler"),
		onCommit:     onCommit,
	}
}

// CloudPlaceholders returns a snapshot of the current placeholder set.
func (c *Crawler) CloudPlaceholders() []string {
	return c.placeholders.snapshot()
}

// Cancel cooperatively halts the current crawl, if any.
func (c *Crawler) Cancel() {
	c.cancelMu.Lock()
	defer c.cancelMu.Unlock()
	if c.cancelFn != nil {
		c.cancelFn()
	}
}

// Start begins a crawl. mode ∈ {incremental, full}; phase is the entry
// phase — Start auto-chains from initial to background on success.
func (c *Crawler) Start(ctx context.Context, roots []string, mode types.Mode, phase types.Phase, scheduled bool) error {
	if !c.lock.TryAcquire() {
		return ErrIndexingInProgress
	}
	defer c.lock.Release()

	runCtx, cancel := context.WithCancel(ctx)
	c.cancelMu.Lock()
	c.cancelFn = cancel
	c.cancelMu.Unlock()
	defer func() {
		c.cancelMu.Lock()
		c.cancelFn = nil
		c.cancelMu.Unlock()
		cancel()
	}()

	runID := uuid.New().String()
	c.log.Printf("run=%s start mode=%s phase=%s scheduled=%v roots=%v", runID, mode, phase, scheduled, roots)
	c.pub.Update(func(s *types.State) {
		s.FilesIndexed = 0
	})

	var cutoff int64
	if mode == types.ModeIncremental {
		if v, ok, err := c.state.GetString(runCtx, statedb.KeyLastCompletedAt); err == nil && ok {
			if t, perr := time.Parse(time.RFC3339, v); perr == nil {
				cutoff = t.Unix()
			}
		}
	}

	p := phase
	for {
		cancelled, err := c.runPhase(runCtx, runID, roots, mode, p, cutoff)
		if err != nil {
			c.pub.Update(func(s *types.State) {
				s.IsRunning = false
				s.Status = types.StatusFailed
			})
			return err
		}
		if cancelled {
			c.pub.Update(func(s *types.State) {
				s.IsRunning = false
				s.Status = types.StatusCancelled
			})
			c.log.Printf("run=%s cancelled during phase=%s", runID, p)
			return nil
		}
		if p == types.PhaseInitial {
			p = types.PhaseBackground
			continue
		}
		break
	}

	now := time.Now()
	if err := c.state.SetString(ctx, statedb.KeyLastCompletedAt, now.Format(time.RFC3339)); err != nil {
		c.log.Printf("run=%s failed to persist last_completed_at: %v", runID, err)
	}
	for _, r := range roots {
		_ = c.state.ClearBucketProgress(ctx, r)
	}

	c.pub.Update(func(s *types.State) {
		s.IsRunning = false
		s.Status = types.StatusCompleted
		s.LastCompletedAt = now
		s.CloudPlaceholders = c.placeholders.snapshot()
	})
	c.log.Printf("run=%s completed", runID)
	return nil
}

// runPhase processes the buckets belonging to phase across all roots.
// Returns cancelled=true if the run context was cancelled mid-phase.
func (c *Crawler) runPhase(ctx context.Context, runID string, roots []string, mode types.Mode, phase types.Phase, cutoff int64) (bool, error) {
	c.pub.Update(func(s *types.State) {
		s.IsRunning = true
		s.Phase = phase
		s.Status = types.StatusRunning
		s.RunID = runID
	})

	ordered := sortRoots(roots)
	buckets := bucketsForPhase(phase)

	cap := 0
	if phase == types.PhaseInitial {
		cap = c.cfg.InitialPhaseCap
	}
	commitInterval := c.cfg.InitialCommitInterval
	if phase == types.PhaseBackground {
		commitInterval = c.cfg.BackgroundCommitInterval
	}

	perRootEntries := make(map[string][]entry, len(ordered))
	for _, root := range ordered {
		entries, err := enumerateRoot(ctx, root, enumOptions{cap: cap})
		if err != nil {
			if ctx.Err() != nil {
				c.log.Printf("run=%s enumeration cancelled at root %s", runID, root)
				return true, nil
			}
			c.log.Printf("run=%s abandoning root %s: %v", runID, root, err)
			continue
		}
		perRootEntries[root] = entries
	}

	cm := &commitState{
		crawler:  c,
		interval: commitInterval,
		last:     time.Now(),
	}

	startBucketIdx := 0
	if mode == types.ModeFull && phase == types.PhaseBackground {
		if idx, ok, err := c.firstRootBucketProgress(ctx, ordered); err == nil && ok {
			startBucketIdx = idx
		}
	}

	for bi, bucket := range buckets {
		if phase == types.PhaseBackground && bi < startBucketIdx {
			continue
		}
		for _, root := range ordered {
			bucketEntries := filterBucket(perRootEntries[root], bucket)
			cancelled, err := c.processEntries(ctx, bucketEntries, mode, cutoff, cm)
			if err != nil {
				return false, err
			}
			if cancelled {
				_ = cm.commit()
				return true, nil
			}
			if mode == types.ModeFull && phase == types.PhaseBackground {
				_ = c.state.SetBucketProgress(ctx, root, bi+1)
			}
		}
		// Each bucket ends with an unconditional commit.
		if err := cm.commit(); err != nil {
			c.log.Printf("run=%s commit failed at bucket boundary: %v", runID, err)
		}
	}

	return false, nil
}

func bucketsForPhase(phase types.Phase) []types.Bucket {
	if phase == types.PhaseInitial {
		return []types.Bucket{types.Bucket90Days}
	}
	return types.BucketOrder
}

func filterBucket(entries []entry, bucket types.Bucket) []entry {
	out := make([]entry, 0, len(entries))
	for _, e := range entries {
		if e.Bucket == bucket {
			out = append(out, e)
		}
	}
	return out
}

func (c *Crawler) firstRootBucketProgress(ctx context.Context, roots []string) (int, bool, error) {
	for _, r := range roots {
		if idx, ok, err := c.state.BucketProgress(ctx, r); err == nil && ok {
			return idx, true, nil
		}
	}
	return 0, false, nil
}

// commitState tracks ingest counts and elapsed time for the periodic commit
// checkpoint and batches dedup-cache updates until a commit
// actually succeeds "Dedup cache: written only by the pipeline
// after commit").
type commitState struct {
	crawler  *Crawler
	interval time.Duration

	mu      sync.Mutex
	last    time.Time
	ingests int
	pendingMetas []types.Meta
}

func (cm *commitState) noteIngest(m types.Meta) (shouldCommit bool) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.ingests++
	cm.pendingMetas = append(cm.pendingMetas, m)
	if cm.crawler.cfg.Workers <= 0 {
		return false
	}
	if time.Since(cm.last) >= cm.interval {
		return true
	}
	// initial-phase ingest-count trigger: every 1,000 successful ingests.
	return cm.interval == cm.crawler.cfg.InitialCommitInterval && cm.ingests >= 1000
}

func (cm *commitState) commit() error {
	cm.mu.Lock()
	metas := cm.pendingMetas
	cm.pendingMetas = nil
	cm.ingests = 0
	cm.last = time.Now()
	cm.mu.Unlock()

	if err := cm.crawler.store.Commit(); err != nil {
		return fmt.Errorf("crawler: commit: %w", err)
	}
	for _, m := range metas {
		if err := cm.crawler.state.RecordIngested(context.Background(), m); err != nil {
			cm.crawler.log.Printf("failed to record dedup entry for %s: %v", m.Path, err)
		}
	}
	if cm.crawler.onCommit != nil {
		cm.crawler.onCommit()
	}
	return nil
}

// processEntries runs the per-file handling over entries, fanning batches
// out across cfg.Workers goroutines, while keeping commit checkpoints
// cooperative with cancellation.
func (c *Crawler) processEntries(ctx context.Context, entries []entry, mode types.Mode, cutoff int64, cm *commitState) (bool, error) {
	batchSize := c.cfg.BatchSize
	semaphore := make(chan struct{}, c.cfg.Workers)
	g, gctx := errgroup.WithContext(ctx)

	var cancelled atomic.Bool

	for i := 0; i < len(entries); i += batchSize {
		end := i + batchSize
		if end > len(entries) {
			end = len(entries)
		}
		batch := entries[i:end]

		g.Go(func() error {
			for _, e := range batch {
				select {
				case <-gctx.Done():
					cancelled.Store(true)
					return nil
				case semaphore <- struct{}{}:
				}

				shouldCommit, err := c.processOne(gctx, e, mode, cutoff, cm)
				<-semaphore

				if err != nil {
					c.log.Printf("skipping %s: %v", e.Path, err)
					continue
				}
				if shouldCommit {
					if cerr := cm.commit(); cerr != nil {
						c.log.Printf("commit checkpoint failed: %v", cerr)
					}
				}
				if gctx.Err() != nil {
					cancelled.Store(true)
					return nil
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return false, err
	}
	return cancelled.Load() || ctx.Err() != nil, nil
}

// processOne implements the six per-file steps.
func (c *Crawler) processOne(ctx context.Context, e entry, mode types.Mode, cutoff int64, cm *commitState) (shouldCommit bool, err error) {
	// 1. since cutoff (incremental mode only).
	if mode == types.ModeIncremental && cutoff > 0 && e.MTime <= cutoff {
		return false, nil
	}

	// 2. cloud placeholder flag.
	c.placeholders.set(e.Path, e.CloudPlaceholder)

	// 3. zero-size, non-placeholder files are skipped.
	if e.Size == 0 && !e.CloudPlaceholder {
		return false, nil
	}

	// 4. dedup check.
	needs, derr := c.state.NeedsReindex(ctx, e.Path, e.MTime, e.Size)
	if derr != nil {
		return false, derr
	}
	if !needs {
		return false, nil
	}

	doc := &types.Document{
		Path:             e.Path,
		Name:             e.Name,
		Ext:              e.Ext,
		MTime:            e.MTime,
		Size:             e.Size,
		Inode:            e.Inode,
		Dev:              e.Dev,
		CloudPlaceholder: e.CloudPlaceholder,
	}

	// 5. sample content for non-placeholder files.
	if !e.CloudPlaceholder {
		f, ferr := openReaderAt(e.Path)
		if ferr != nil {
			return false, ferr
		}
		defer f.Close()
		content, serr := sampler.Sample(f, e.Size, c.cfg.SamplingPolicy)
		if serr != nil {
			return false, serr
		}
		doc.Content = content
	}

	// 6. stage the write.
	if err := c.store.AddOrReplace(doc, c.cfg.SamplingPolicy.MaxBytes); err != nil {
		return false, err
	}
	c.ingestCount.Add(1)
	c.pub.Update(func(s *types.State) {
		s.FilesIndexed++
	})

	return cm.noteIngest(types.Meta{
		Path: e.Path, Name: e.Name, Ext: e.Ext, MTime: e.MTime, Size: e.Size, Inode: e.Inode, Dev: e.Dev,
	}), nil
}

// ResetAndStart wipes the index and dedup state and starts a full
// initial-phase crawl.
func (c *Crawler) ResetAndStart(ctx context.Context, roots []string) error {
	if !c.lock.TryAcquire() {
		return ErrIndexingInProgress
	}
	if err := c.store.Reset(); err != nil {
		c.lock.Release()
		return fmt.Errorf("crawler: reset index: %w", err)
	}
	if err := c.state.ClearDedupCache(ctx); err != nil {
		c.lock.Release()
		return fmt.Errorf("crawler: clear dedup cache: %w", err)
	}
	for _, r := range roots {
		_ = c.state.ClearBucketProgress(ctx, r)
	}
	c.lock.Release()

	return c.Start(ctx, roots, types.ModeFull, types.PhaseInitial, false)
}

// RequestIncrementalIfNeeded is the rate-limited auto-trigger:
// suppresses a start if one was requested or a crawl completed within the
// last AutoIncrementalMinInterval, or a crawl is currently in progress.
func (c *Crawler) RequestIncrementalIfNeeded(ctx context.Context, roots []string) error {
	if c.lock.Locked() {
		return nil
	}
	if last := c.pub.Snapshot().LastCompletedAt; !last.IsZero() && time.Since(last) < c.cfg.AutoIncrementalMinInterval {
		return nil
	}

	c.attemptMu.Lock()
	since := time.Since(c.lastAttempt)
	if since < c.cfg.AutoIncrementalMinInterval {
		c.attemptMu.Unlock()
		return nil
	}
	c.lastAttempt = time.Now()
	c.attemptMu.Unlock()

	return c.Start(ctx, roots, types.ModeIncremental, types.PhaseInitial, false)
}
