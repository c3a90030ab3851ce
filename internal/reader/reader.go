package reader

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"sift/internal/item"
	"sift/internal/logging"
)

// Reader spawns and coordinates the collector for ingestion runs. A single
// Reader can start successive runs; each Run supersedes the previous one
// from the caller's point of view, though the caller remains responsible
// for killing the old Control.
type Reader struct {
	collector CommandCollector
	source    <-chan item.Item
	logger    *slog.Logger

	mu      sync.Mutex
	lastRun uuid.UUID
}

// Option configures a Reader.
type Option func(*Reader)

// WithSource supplies a direct item channel, bypassing the collector and
// its counter bookkeeping for the source side.
func WithSource(source <-chan item.Item) Option {
	return func(r *Reader) {
		r.source = source
	}
}

// WithLogger attaches a logger to the reader and its collector goroutine.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reader) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New constructs a reader using the given collector for command sources.
func New(collector CommandCollector, opts ...Option) *Reader {
	r := &Reader{
		collector: collector,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CurrentRun returns the identifier of the most recently started run.
// Collaborators use it for staleness checks against results computed
// during an earlier run.
func (r *Reader) CurrentRun() uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastRun
}

// Run starts one ingestion run for cmd and returns its Control. Exactly
// one collector goroutine drains the item stream into the staging buffer;
// Run does not return until that goroutine has registered itself on the
// outstanding counter, so an immediately following Kill cannot race the
// startup.
func (r *Reader) Run(cmd string) (*Control, error) {
	runID := uuid.New()
	r.mu.Lock()
	r.lastRun = runID
	r.mu.Unlock()

	logger := r.logger.With(
		slog.String("component", "reader"),
		slog.String("run_id", runID.String()),
	)
	logger.Debug("ingestion run starting", slog.String("cmd", cmd))

	outstanding := NewCounter()
	staging := &stagingBuffer{}

	var src <-chan item.Item
	var interruptCmd chan<- struct{}
	if r.source != nil {
		src = r.source
	} else {
		items, interrupt, err := r.collector.Invoke(cmd, outstanding)
		if err != nil {
			return nil, err
		}
		src = items
		interruptCmd = interrupt
	}

	interrupt := make(chan struct{})
	started := make(chan struct{})
	go func() {
		outstanding.Add(1)
		close(started)
		defer outstanding.Done()
		defer logger.Debug("collector goroutine stopped")

		for {
			select {
			case it, ok := <-src:
				if !ok {
					return
				}
				staging.push(it)
			case <-interrupt:
				return
			}
		}
	}()
	// One-shot readiness signal: by the time Run returns, the counter is
	// already above zero.
	<-started

	return &Control{
		runID:        runID,
		interrupt:    interrupt,
		interruptCmd: interruptCmd,
		outstanding:  outstanding,
		staging:      staging,
		logger:       logger,
	}, nil
}

// Control is the per-run handle for harvesting, status, and termination.
type Control struct {
	runID        uuid.UUID
	interrupt    chan struct{}
	interruptCmd chan<- struct{}
	outstanding  *Counter
	staging      *stagingBuffer
	logger       *slog.Logger
	killOnce     sync.Once
}

// RunID identifies the ingestion run this control belongs to.
func (c *Control) RunID() uuid.UUID {
	return c.runID
}

// Kill interrupts the underlying process (if any), then the collector
// goroutine, then blocks until every outstanding worker has stopped. When
// collectors honor their interrupt, no worker or spawned process outlives
// Kill's return. There is no timeout: a non-cooperating component blocks
// Kill forever rather than letting it falsely report stopped.
func (c *Control) Kill() {
	c.killOnce.Do(func() {
		c.logger.Debug("kill requested", slog.Int("outstanding", c.outstanding.Count()))
		if c.interruptCmd != nil {
			close(c.interruptCmd)
		}
		close(c.interrupt)
	})
	c.outstanding.Wait()
}

// Take swap-drains the staging buffer, returning everything collected
// since the last call. Safe to call while the collector is still running.
func (c *Control) Take() []item.Item {
	return c.staging.drain()
}

// IsDone reports whether the run has fully stopped and its output has been
// drained. A stopped producer with staged items still pending is not done.
func (c *Control) IsDone() bool {
	c.staging.mu.Lock()
	defer c.staging.mu.Unlock()
	return c.outstanding.Count() == 0 && len(c.staging.items) == 0
}

// stagingBuffer holds collected items not yet claimed by the consumer.
type stagingBuffer struct {
	mu    sync.Mutex
	items []item.Item
}

func (b *stagingBuffer) push(it item.Item) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = append(b.items, it)
}

func (b *stagingBuffer) drain() []item.Item {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.items
	b.items = nil
	return out
}
