package stats

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/iamthegreatdestroyer/hyperbox/internal/metrics"
)

// Streamer owns the polling lifecycle. Start spawns a single ticker loop
// that runs one collection cycle immediately and then at every interval;
// Stop cancels the loop's context, which also cancels any in-flight stats
// fetches. Both calls are idempotent. Ticks that would overlap a cycle still
// in flight are skipped, so cycles commit in chronological order.
type Streamer struct {
	logger    *zap.Logger
	collector *Collector
	store     *Store
	interval  time.Duration
	onCycle   func(CycleUpdate)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	busy atomic.Bool
}

// NewStreamer creates a streamer driving the collector into the store.
func NewStreamer(logger *zap.Logger, collector *Collector, store *Store, interval time.Duration) *Streamer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Streamer{
		logger:    logger,
		collector: collector,
		store:     store,
		interval:  interval,
	}
}

// OnCycle registers a callback invoked after each committed cycle. Set it
// before Start; it is not synchronized against a running loop.
func (s *Streamer) OnCycle(fn func(CycleUpdate)) {
	s.onCycle = fn
}

// Start begins streaming. Calling Start while already streaming is a no-op.
func (s *Streamer) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	s.logger.Info("Starting stats streamer", zap.Duration("interval", s.interval))
	go s.run(ctx, done)
}

// Stop halts streaming and waits for the loop to exit. In-flight fetches are
// cancelled; a cycle interrupted by Stop does not commit. Calling Stop while
// not streaming is a no-op.
func (s *Streamer) Stop() {
	s.mu.Lock()
	if s.cancel == nil {
		s.mu.Unlock()
		return
	}
	cancel := s.cancel
	done := s.done
	s.cancel = nil
	s.done = nil
	s.mu.Unlock()

	cancel()
	<-done
	s.logger.Info("Stats streamer stopped")
}

// Streaming reports whether the polling loop is active.
func (s *Streamer) Streaming() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

func (s *Streamer) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick performs one poll-collect-aggregate-commit cycle.
func (s *Streamer) tick(ctx context.Context) {
	if !s.busy.CompareAndSwap(false, true) {
		s.logger.Debug("Skipping tick, previous cycle still in flight")
		return
	}
	defer s.busy.Store(false)

	results, err := s.collector.Collect(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		// Listing failure aborts the whole tick; prior history and
		// pressure stay valid until the next successful cycle.
		s.logger.Error("Collection cycle failed", zap.Error(err))
		return
	}

	update := buildCycle(time.Now(), results)

	// A stop issued mid-cycle must not mutate state afterwards.
	if ctx.Err() != nil {
		return
	}

	s.store.ApplyCycle(update)

	metrics.RecordCyclePoints(1 + len(update.Entities))
	metrics.UpdatePressure(update.Pressure.Percent, string(update.Pressure.Level))

	if s.onCycle != nil {
		s.onCycle(update)
	}

	s.logger.Debug("Cycle committed",
		zap.Int("containers", len(update.Entities)),
		zap.String("pressure", string(update.Pressure.Level)))
}
