package runtime

import "context"

// Container identifies one running workload reported by the backend.
type Container struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Stats is a single sampling of a container's resource usage. Network and
// block I/O fields are rates in bytes per second, not cumulative counters.
type Stats struct {
	CPUPercent    float64 `json:"cpuPercent"`
	MemoryUsage   float64 `json:"memoryUsage"`
	MemoryLimit   float64 `json:"memoryLimit"`
	MemoryPercent float64 `json:"memoryPercent"`
	NetworkRx     float64 `json:"networkRx"`
	NetworkTx     float64 `json:"networkTx"`
	BlockRead     float64 `json:"blockRead"`
	BlockWrite    float64 `json:"blockWrite"`
}

// Runtime is the process-management backend the stats engine polls.
// Implementations must be safe for concurrent use: GetStats is called from
// multiple goroutines within one collection cycle.
type Runtime interface {
	// ListActive returns the currently running containers.
	ListActive(ctx context.Context) ([]Container, error)

	// GetStats returns one usage sample for the given container.
	GetStats(ctx context.Context, id string) (Stats, error)
}
