package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iamthegreatdestroyer/hyperbox/internal/runtime"
)

func TestBuildCycleTimeLabel(t *testing.T) {
	at := time.Date(2026, 8, 25, 7, 4, 9, 0, time.UTC)

	update := buildCycle(at, nil)

	// Zero-padded 24-hour clock label shared by every point in the cycle
	assert.Equal(t, "07:04:09", update.System.Time)
}

func TestBuildCycleSharedLabel(t *testing.T) {
	at := time.Date(2026, 8, 25, 23, 59, 59, 0, time.UTC)

	results := []fetchResult{
		{container: runtime.Container{ID: "c1"}, stats: runtime.Stats{CPUPercent: 1}},
		{container: runtime.Container{ID: "c2"}, stats: runtime.Stats{CPUPercent: 2}},
	}
	update := buildCycle(at, results)

	assert.Equal(t, "23:59:59", update.System.Time)
	assert.Equal(t, "23:59:59", update.Entities["c1"].Time)
	assert.Equal(t, "23:59:59", update.Entities["c2"].Time)
}

func TestBuildCycleEntityPointExcludesBlockIO(t *testing.T) {
	results := []fetchResult{
		{
			container: runtime.Container{ID: "c1", Name: "web"},
			stats: runtime.Stats{
				CPUPercent:  4,
				MemoryUsage: 100,
				BlockRead:   77,
				BlockWrite:  88,
			},
		},
	}
	update := buildCycle(time.Now(), results)

	// Block I/O flows into the system point and snapshot but is not part
	// of the per-container chart projection
	assert.Equal(t, 77.0, update.System.BlockRead)
	assert.Equal(t, 88.0, update.System.BlockWrite)
	assert.Equal(t, 77.0, update.Snapshots["c1"].BlockRead)
	assert.Equal(t, 88.0, update.Snapshots["c1"].BlockWrite)
}

func TestBuildCycleSnapshotTimestamp(t *testing.T) {
	at := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	results := []fetchResult{
		{container: runtime.Container{ID: "c1"}, stats: runtime.Stats{}},
	}
	update := buildCycle(at, results)

	assert.Equal(t, at, update.Snapshots["c1"].Timestamp)
}
