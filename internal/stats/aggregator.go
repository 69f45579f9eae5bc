package stats

import "time"

// buildCycle folds the settled fetch results into one cycle: a system point
// summed across successful fetches, one chart point per successful container,
// the replacement snapshot map, and the pressure derived from it. Failed
// fetches contribute nothing. With no results it produces the synthetic
// zero-valued cycle.
func buildCycle(now time.Time, results []fetchResult) CycleUpdate {
	label := now.Format(timeLabelLayout)

	update := CycleUpdate{
		System:    SystemPoint{Time: label},
		Entities:  make(map[string]EntityPoint),
		Snapshots: make(map[string]Snapshot),
	}

	for _, res := range results {
		if res.err != nil {
			continue
		}

		update.System.CPU += res.stats.CPUPercent
		update.System.Memory += res.stats.MemoryUsage
		update.System.NetworkRx += res.stats.NetworkRx
		update.System.NetworkTx += res.stats.NetworkTx
		update.System.BlockRead += res.stats.BlockRead
		update.System.BlockWrite += res.stats.BlockWrite

		update.Entities[res.container.ID] = EntityPoint{
			Time:          label,
			CPU:           res.stats.CPUPercent,
			Memory:        res.stats.MemoryUsage,
			MemoryPercent: res.stats.MemoryPercent,
			NetworkRx:     res.stats.NetworkRx,
			NetworkTx:     res.stats.NetworkTx,
		}

		update.Snapshots[res.container.ID] = Snapshot{
			Timestamp:     now,
			ID:            res.container.ID,
			Name:          res.container.Name,
			CPUPercent:    res.stats.CPUPercent,
			MemoryUsage:   res.stats.MemoryUsage,
			MemoryLimit:   res.stats.MemoryLimit,
			MemoryPercent: res.stats.MemoryPercent,
			NetworkRx:     res.stats.NetworkRx,
			NetworkTx:     res.stats.NetworkTx,
			BlockRead:     res.stats.BlockRead,
			BlockWrite:    res.stats.BlockWrite,
		}
	}

	update.Pressure = Classify(update.Snapshots)
	return update
}
