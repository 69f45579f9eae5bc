package stats

import (
	"time"

	"go.uber.org/zap"

	"github.com/iamthegreatdestroyer/hyperbox/internal/runtime"
)

// Config holds the engine's tunables.
type Config struct {
	// Interval is the polling cadence.
	Interval time.Duration

	// MaxPoints caps every series' length.
	MaxPoints int

	// RetentionCycles is how long a vanished container's series is kept.
	RetentionCycles int

	// MaxConcurrentFetches bounds the per-cycle stats fan-out.
	MaxConcurrentFetches int
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		Interval:             DefaultInterval,
		MaxPoints:            MaxPoints,
		RetentionCycles:      DefaultRetentionCycles,
		MaxConcurrentFetches: 8,
	}
}

// Service is the stats engine's public face: bounded series, latest
// snapshots, pressure, and the start/stop streaming lifecycle, built around
// an injected runtime backend.
type Service struct {
	store    *Store
	streamer *Streamer
}

// NewService wires a store, collector, and streamer against the runtime.
func NewService(logger *zap.Logger, rt runtime.Runtime, cfg Config) *Service {
	store := NewStore(cfg.MaxPoints, cfg.RetentionCycles)
	collector := NewCollector(logger, rt, cfg.MaxConcurrentFetches)
	streamer := NewStreamer(logger, collector, store, cfg.Interval)

	return &Service{
		store:    store,
		streamer: streamer,
	}
}

// OnCycle registers a callback invoked after each committed cycle.
func (s *Service) OnCycle(fn func(CycleUpdate)) { s.streamer.OnCycle(fn) }

// Start begins periodic collection. Idempotent.
func (s *Service) Start() { s.streamer.Start() }

// Stop halts collection and cancels in-flight fetches. Idempotent.
func (s *Service) Stop() { s.streamer.Stop() }

// Streaming reports whether collection is active.
func (s *Service) Streaming() bool { return s.streamer.Streaming() }

// SystemSeries returns the bounded system-wide series.
func (s *Service) SystemSeries() []SystemPoint { return s.store.SystemSeries() }

// EntitySeries returns the bounded series for one container ID. Unknown IDs
// yield an empty slice.
func (s *Service) EntitySeries(id string) []EntityPoint { return s.store.EntitySeries(id) }

// EntityIDs returns all container IDs with a retained series.
func (s *Service) EntityIDs() []string { return s.store.EntityIDs() }

// Latest returns the latest per-container snapshot map.
func (s *Service) Latest() map[string]Snapshot { return s.store.Latest() }

// Pressure returns the current memory-pressure classification.
func (s *Service) Pressure() Pressure { return s.store.Pressure() }

// Reset discards all accumulated history.
func (s *Service) Reset() { s.store.Reset() }
