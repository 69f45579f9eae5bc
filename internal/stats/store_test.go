package stats

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cycleWithEntities(label string, ids ...string) CycleUpdate {
	update := CycleUpdate{
		System:    SystemPoint{Time: label},
		Entities:  make(map[string]EntityPoint),
		Snapshots: make(map[string]Snapshot),
	}
	for _, id := range ids {
		update.Entities[id] = EntityPoint{Time: label}
		update.Snapshots[id] = Snapshot{ID: id}
	}
	update.Pressure = Classify(update.Snapshots)
	return update
}

func TestStoreSystemSeriesBounded(t *testing.T) {
	s := NewStore(5, 3)

	for i := 0; i < 13; i++ {
		s.ApplyCycle(cycleWithEntities(fmt.Sprintf("label-%d", i)))
		require.LessOrEqual(t, len(s.SystemSeries()), 5)
	}

	// After exceeding capacity, exactly the most recent points remain in order
	points := s.SystemSeries()
	require.Len(t, points, 5)
	for i, p := range points {
		assert.Equal(t, fmt.Sprintf("label-%d", i+8), p.Time)
	}
}

func TestStoreEntitySeriesLazyCreation(t *testing.T) {
	s := NewStore(10, 3)

	assert.Empty(t, s.EntitySeries("missing"))
	assert.NotNil(t, s.EntitySeries("missing"))

	s.ApplyCycle(cycleWithEntities("t1", "c1"))
	assert.Len(t, s.EntitySeries("c1"), 1)
	assert.Empty(t, s.EntitySeries("c2"))
}

func TestStoreLatestFullyReplaced(t *testing.T) {
	s := NewStore(10, 5)

	s.ApplyCycle(cycleWithEntities("t1", "c1", "c2"))
	require.Len(t, s.Latest(), 2)

	// c2 absent from the next cycle vanishes from the snapshot map even
	// though its series is retained
	s.ApplyCycle(cycleWithEntities("t2", "c1"))
	latest := s.Latest()
	assert.Len(t, latest, 1)
	_, ok := latest["c2"]
	assert.False(t, ok)
	assert.Len(t, s.EntitySeries("c2"), 1)
}

func TestStoreRetentionEviction(t *testing.T) {
	s := NewStore(10, 3)

	s.ApplyCycle(cycleWithEntities("t0", "c1", "c2"))
	require.Len(t, s.EntitySeries("c2"), 1)

	// c2 disappears; its series survives until the retention window lapses
	s.ApplyCycle(cycleWithEntities("t1", "c1"))
	s.ApplyCycle(cycleWithEntities("t2", "c1"))
	assert.NotEmpty(t, s.EntitySeries("c2"))

	s.ApplyCycle(cycleWithEntities("t3", "c1"))
	assert.Empty(t, s.EntitySeries("c2"))
	assert.NotEmpty(t, s.EntitySeries("c1"))
}

func TestStoreRetentionResetOnReturn(t *testing.T) {
	s := NewStore(10, 3)

	s.ApplyCycle(cycleWithEntities("t0", "c1", "c2"))
	s.ApplyCycle(cycleWithEntities("t1", "c1"))
	s.ApplyCycle(cycleWithEntities("t2", "c1"))

	// c2 comes back just before eviction; its history must be intact and
	// its absence counter reset
	s.ApplyCycle(cycleWithEntities("t3", "c1", "c2"))
	assert.Len(t, s.EntitySeries("c2"), 2)

	s.ApplyCycle(cycleWithEntities("t4", "c1"))
	s.ApplyCycle(cycleWithEntities("t5", "c1"))
	assert.NotEmpty(t, s.EntitySeries("c2"))
}

func TestStoreReset(t *testing.T) {
	s := NewStore(10, 3)

	s.ApplyCycle(cycleWithEntities("t0", "c1"))
	require.NotEmpty(t, s.SystemSeries())

	s.Reset()

	assert.Empty(t, s.SystemSeries())
	assert.Empty(t, s.EntitySeries("c1"))
	assert.Empty(t, s.Latest())
	assert.Equal(t, PressureLow, s.Pressure().Level)
}

func TestStoreEntityIDs(t *testing.T) {
	s := NewStore(10, 3)

	s.ApplyCycle(cycleWithEntities("t0", "c1", "c2"))

	ids := s.EntityIDs()
	assert.ElementsMatch(t, []string{"c1", "c2"}, ids)
}
