package stats

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iamthegreatdestroyer/hyperbox/internal/metrics"
	"github.com/iamthegreatdestroyer/hyperbox/internal/runtime"
)

// fetchResult records the settled outcome of one container's stats request.
// Failures are isolated: a failed fetch excludes that container from the
// cycle without affecting its siblings.
type fetchResult struct {
	container runtime.Container
	stats     runtime.Stats
	err       error
}

// Collector performs the per-cycle snapshot: list the running containers,
// then fan out one stats request per container and settle them all.
type Collector struct {
	logger        *zap.Logger
	runtime       runtime.Runtime
	maxConcurrent int
}

// NewCollector creates a collector polling the given runtime.
func NewCollector(logger *zap.Logger, rt runtime.Runtime, maxConcurrent int) *Collector {
	if maxConcurrent <= 0 {
		maxConcurrent = 8
	}
	return &Collector{
		logger:        logger,
		runtime:       rt,
		maxConcurrent: maxConcurrent,
	}
}

// Collect runs one snapshot. A listing failure aborts the whole cycle; a
// per-container failure only marks that container's result. The returned
// slice has one entry per listed container.
func (c *Collector) Collect(ctx context.Context) ([]fetchResult, error) {
	start := time.Now()

	containers, err := c.runtime.ListActive(ctx)
	if err != nil {
		metrics.RecordCollectorScrape("list", time.Since(start), true)
		return nil, fmt.Errorf("list active containers: %w", err)
	}
	metrics.RecordCollectorScrape("list", time.Since(start), false)

	if len(containers) == 0 {
		return nil, nil
	}

	results := make([]fetchResult, len(containers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxConcurrent)
	for i, ctr := range containers {
		i, ctr := i, ctr
		g.Go(func() error {
			fetchStart := time.Now()
			stats, err := c.runtime.GetStats(gctx, ctr.ID)
			metrics.RecordCollectorScrape("stats", time.Since(fetchStart), err != nil)
			if err != nil {
				c.logger.Warn("Container stats fetch failed",
					zap.String("container", ctr.ID),
					zap.Error(err))
				results[i] = fetchResult{container: ctr, err: err}
				return nil
			}
			results[i] = fetchResult{container: ctr, stats: stats}
			return nil
		})
	}
	// Goroutines never return an error; Wait only joins the fan-out.
	_ = g.Wait()

	return results, nil
}
