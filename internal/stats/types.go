package stats

import (
	"time"
)

const (
	// MaxPoints is the fixed capacity of every series. Combined with the
	// default interval this covers roughly the last three minutes.
	MaxPoints = 60

	// DefaultInterval is the polling cadence.
	DefaultInterval = 3 * time.Second

	// DefaultRetentionCycles is how many consecutive successful cycles an
	// entity may be absent before its historical series is evicted.
	DefaultRetentionCycles = 20

	// timeLabelLayout renders the shared per-cycle chart label. Display key
	// only: ticks within one wall-clock second repeat the label.
	timeLabelLayout = "15:04:05"
)

// SystemPoint is one cycle's system-wide aggregate, summed across all
// successfully sampled containers.
type SystemPoint struct {
	Time       string  `json:"time"`
	CPU        float64 `json:"cpu"`
	Memory     float64 `json:"memory"`
	NetworkRx  float64 `json:"networkRx"`
	NetworkTx  float64 `json:"networkTx"`
	BlockRead  float64 `json:"blockRead"`
	BlockWrite float64 `json:"blockWrite"`
}

// EntityPoint is one cycle's chart point for a single container. Block I/O
// is deliberately not part of this projection.
type EntityPoint struct {
	Time          string  `json:"time"`
	CPU           float64 `json:"cpu"`
	Memory        float64 `json:"memory"`
	MemoryPercent float64 `json:"memoryPercent"`
	NetworkRx     float64 `json:"networkRx"`
	NetworkTx     float64 `json:"networkTx"`
}

// Snapshot is the full latest sample for one container. The snapshot map is
// replaced wholesale each successful cycle, so containers that failed to
// report this cycle are not carried forward.
type Snapshot struct {
	Timestamp     time.Time `json:"timestamp"`
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	CPUPercent    float64   `json:"cpuPercent"`
	MemoryUsage   float64   `json:"memoryUsage"`
	MemoryLimit   float64   `json:"memoryLimit"`
	MemoryPercent float64   `json:"memoryPercent"`
	NetworkRx     float64   `json:"networkRx"`
	NetworkTx     float64   `json:"networkTx"`
	BlockRead     float64   `json:"blockRead"`
	BlockWrite    float64   `json:"blockWrite"`
}

// DisplayName returns the container name, falling back to a truncated ID for
// unnamed containers.
func (s Snapshot) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	if len(s.ID) > 12 {
		return s.ID[:12]
	}
	return s.ID
}

// PressureLevel is the discretized memory-risk classification.
type PressureLevel string

const (
	PressureLow      PressureLevel = "low"
	PressureModerate PressureLevel = "moderate"
	PressureHigh     PressureLevel = "high"
	PressureCritical PressureLevel = "critical"
)

// Pressure summarizes aggregate memory risk across the latest snapshots.
type Pressure struct {
	Level            PressureLevel `json:"level"`
	TotalUsed        float64       `json:"totalUsed"`
	TotalLimit       float64       `json:"totalLimit"`
	Percent          float64       `json:"percent"`
	ContainersAtRisk []string      `json:"containersAtRisk"`
}

// CycleUpdate is everything one completed cycle produced. It is applied to
// the store as a single transaction and broadcast to live subscribers.
type CycleUpdate struct {
	System    SystemPoint            `json:"system"`
	Entities  map[string]EntityPoint `json:"entities"`
	Snapshots map[string]Snapshot    `json:"snapshots"`
	Pressure  Pressure               `json:"pressure"`
}
