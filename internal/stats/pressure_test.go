package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func snapshotWithMemory(id, name string, usage, limit float64) Snapshot {
	pct := 0.0
	if limit > 0 {
		pct = usage / limit * 100
	}
	return Snapshot{
		ID:            id,
		Name:          name,
		MemoryUsage:   usage,
		MemoryLimit:   limit,
		MemoryPercent: pct,
	}
}

func TestClassifyEmpty(t *testing.T) {
	p := Classify(map[string]Snapshot{})

	assert.Equal(t, PressureLow, p.Level)
	assert.Zero(t, p.TotalUsed)
	assert.Zero(t, p.TotalLimit)
	assert.Zero(t, p.Percent)
	assert.Empty(t, p.ContainersAtRisk)
	assert.NotNil(t, p.ContainersAtRisk)
}

func TestClassifyBands(t *testing.T) {
	tests := []struct {
		name  string
		usage float64
		limit float64
		level PressureLevel
	}{
		{"low", 400, 2000, PressureLow},
		{"exactly 50 stays low", 1000, 2000, PressureLow},
		{"moderate", 1200, 2000, PressureModerate},
		{"exactly 75 stays moderate", 1500, 2000, PressureModerate},
		{"high", 1600, 2000, PressureHigh},
		{"exactly 90 stays high", 1800, 2000, PressureHigh},
		{"critical", 1900, 2000, PressureCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Classify(map[string]Snapshot{
				"c1": snapshotWithMemory("c1", "web", tt.usage, tt.limit),
			})
			assert.Equal(t, tt.level, p.Level)
			assert.Equal(t, tt.usage, p.TotalUsed)
			assert.Equal(t, tt.limit, p.TotalLimit)
		})
	}
}

func TestClassifyCriticalPercent(t *testing.T) {
	p := Classify(map[string]Snapshot{
		"c1": snapshotWithMemory("c1", "db", 1900, 2000),
	})

	assert.Equal(t, PressureCritical, p.Level)
	assert.Equal(t, 95.0, p.Percent)
}

func TestClassifyAtRiskList(t *testing.T) {
	p := Classify(map[string]Snapshot{
		"aaa": snapshotWithMemory("aaa", "hot", 900, 1000),  // 90%, at risk
		"bbb": snapshotWithMemory("bbb", "cool", 400, 1000), // 40%, fine
	})

	assert.Equal(t, []string{"hot"}, p.ContainersAtRisk)
}

func TestClassifyAtRiskBoundary(t *testing.T) {
	// Exactly 80% is not at risk; strictly above is
	p := Classify(map[string]Snapshot{
		"a": snapshotWithMemory("a", "edge", 800, 1000),
		"b": snapshotWithMemory("b", "over", 801, 1000),
	})

	assert.Equal(t, []string{"over"}, p.ContainersAtRisk)
}

func TestClassifyNameFallback(t *testing.T) {
	p := Classify(map[string]Snapshot{
		"0123456789abcdef0123": snapshotWithMemory("0123456789abcdef0123", "", 950, 1000),
	})

	// Unnamed containers are identified by truncated ID
	assert.Equal(t, []string{"0123456789ab"}, p.ContainersAtRisk)
}

func TestClassifySumsAcrossContainers(t *testing.T) {
	p := Classify(map[string]Snapshot{
		"c1": snapshotWithMemory("c1", "one", 1000, 4000),
		"c2": snapshotWithMemory("c2", "two", 1500, 4000),
	})

	assert.Equal(t, 2500.0, p.TotalUsed)
	assert.Equal(t, 8000.0, p.TotalLimit)
	assert.InDelta(t, 31.25, p.Percent, 0.001)
	assert.Equal(t, PressureLow, p.Level)
}
