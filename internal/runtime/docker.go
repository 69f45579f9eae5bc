package runtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultDockerHost is the standard Engine API socket on Linux.
	DefaultDockerHost = "/var/run/docker.sock"

	// DefaultAPIVersion is the minimum Engine API version we speak.
	DefaultAPIVersion = "v1.43"

	dockerRequestTimeout = 10 * time.Second
)

// DockerClient implements Runtime against the Docker Engine HTTP API over a
// Unix socket. The Engine reports cumulative network and block I/O counters,
// so the client retains the previous counters per container and converts
// them to rates on each sample.
type DockerClient struct {
	logger     *zap.Logger
	httpClient *http.Client
	apiVersion string

	mu   sync.Mutex
	prev map[string]counterSnap
}

// counterSnap holds the last cumulative counters seen for one container.
type counterSnap struct {
	rxBytes    uint64
	txBytes    uint64
	readBytes  uint64
	writeBytes uint64
	ts         time.Time
}

// NewDockerClient creates a Runtime backed by the Engine API at socketPath.
func NewDockerClient(logger *zap.Logger, socketPath, apiVersion string) *DockerClient {
	if socketPath == "" {
		socketPath = DefaultDockerHost
	}
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}

	transport := &http.Transport{
		DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "unix", socketPath)
		},
	}

	return &DockerClient{
		logger:     logger,
		apiVersion: apiVersion,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   dockerRequestTimeout,
		},
		prev: make(map[string]counterSnap),
	}
}

// containerSummary is the subset of the Engine's container list entry we use.
type containerSummary struct {
	ID    string   `json:"Id"`
	Names []string `json:"Names"`
}

// containerStats is the subset of the Engine's stats payload we use.
type containerStats struct {
	CPUStats    cpuStats               `json:"cpu_stats"`
	PreCPUStats cpuStats               `json:"precpu_stats"`
	MemoryStats memoryStats            `json:"memory_stats"`
	Networks    map[string]networkStat `json:"networks"`
	BlkioStats  blkioStats             `json:"blkio_stats"`
}

type cpuStats struct {
	CPUUsage struct {
		TotalUsage uint64 `json:"total_usage"`
	} `json:"cpu_usage"`
	SystemCPUUsage uint64 `json:"system_cpu_usage"`
	OnlineCPUs     uint64 `json:"online_cpus"`
}

type memoryStats struct {
	Usage uint64            `json:"usage"`
	Limit uint64            `json:"limit"`
	Stats map[string]uint64 `json:"stats"`
}

type networkStat struct {
	RxBytes uint64 `json:"rx_bytes"`
	TxBytes uint64 `json:"tx_bytes"`
}

type blkioStats struct {
	IoServiceBytesRecursive []blkioEntry `json:"io_service_bytes_recursive"`
}

type blkioEntry struct {
	Op    string `json:"op"`
	Value uint64 `json:"value"`
}

// ListActive returns the containers currently in the running state.
func (c *DockerClient) ListActive(ctx context.Context) ([]Container, error) {
	filters := url.QueryEscape(`{"status":["running"]}`)
	path := fmt.Sprintf("/%s/containers/json?filters=%s", c.apiVersion, filters)

	var summaries []containerSummary
	if err := c.getJSON(ctx, path, &summaries); err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}

	containers := make([]Container, 0, len(summaries))
	for _, s := range summaries {
		name := ""
		if len(s.Names) > 0 {
			name = strings.TrimPrefix(s.Names[0], "/")
		}
		containers = append(containers, Container{ID: s.ID, Name: name})
	}

	c.pruneCounters(containers)
	return containers, nil
}

// GetStats returns one usage sample for the given container.
func (c *DockerClient) GetStats(ctx context.Context, id string) (Stats, error) {
	path := fmt.Sprintf("/%s/containers/%s/stats?stream=false", c.apiVersion, id)

	var raw containerStats
	if err := c.getJSON(ctx, path, &raw); err != nil {
		return Stats{}, fmt.Errorf("container %s stats: %w", shortID(id), err)
	}

	now := time.Now()
	stats := Stats{
		CPUPercent:  cpuPercent(raw),
		MemoryUsage: float64(memoryUsage(raw.MemoryStats)),
		MemoryLimit: float64(raw.MemoryStats.Limit),
	}
	if raw.MemoryStats.Limit > 0 {
		stats.MemoryPercent = stats.MemoryUsage / stats.MemoryLimit * 100
	}

	var rx, tx uint64
	for _, nw := range raw.Networks {
		rx += nw.RxBytes
		tx += nw.TxBytes
	}

	var read, write uint64
	for _, entry := range raw.BlkioStats.IoServiceBytesRecursive {
		switch strings.ToLower(entry.Op) {
		case "read":
			read += entry.Value
		case "write":
			write += entry.Value
		}
	}

	c.mu.Lock()
	if prev, ok := c.prev[id]; ok && now.After(prev.ts) {
		dt := now.Sub(prev.ts).Seconds()
		// Counter resets (container restart) would go negative; treat as zero.
		if rx >= prev.rxBytes {
			stats.NetworkRx = float64(rx-prev.rxBytes) / dt
		}
		if tx >= prev.txBytes {
			stats.NetworkTx = float64(tx-prev.txBytes) / dt
		}
		if read >= prev.readBytes {
			stats.BlockRead = float64(read-prev.readBytes) / dt
		}
		if write >= prev.writeBytes {
			stats.BlockWrite = float64(write-prev.writeBytes) / dt
		}
	}
	c.prev[id] = counterSnap{rxBytes: rx, txBytes: tx, readBytes: read, writeBytes: write, ts: now}
	c.mu.Unlock()

	return stats, nil
}

// cpuPercent derives a CPU percentage from the delta between the current and
// previous sample the Engine embeds in a single stats response.
func cpuPercent(raw containerStats) float64 {
	cpuDelta := float64(raw.CPUStats.CPUUsage.TotalUsage) - float64(raw.PreCPUStats.CPUUsage.TotalUsage)
	sysDelta := float64(raw.CPUStats.SystemCPUUsage) - float64(raw.PreCPUStats.SystemCPUUsage)
	if cpuDelta <= 0 || sysDelta <= 0 {
		return 0
	}
	cpus := float64(raw.CPUStats.OnlineCPUs)
	if cpus == 0 {
		cpus = 1
	}
	return cpuDelta / sysDelta * cpus * 100
}

// memoryUsage subtracts the page cache the kernel can reclaim, matching what
// `docker stats` displays.
func memoryUsage(m memoryStats) uint64 {
	usage := m.Usage
	if inactive, ok := m.Stats["total_inactive_file"]; ok && inactive < usage {
		return usage - inactive
	}
	if inactive, ok := m.Stats["inactive_file"]; ok && inactive < usage {
		return usage - inactive
	}
	return usage
}

// pruneCounters drops rate state for containers no longer running.
func (c *DockerClient) pruneCounters(active []Container) {
	running := make(map[string]bool, len(active))
	for _, ctr := range active {
		running[ctr.ID] = true
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for id := range c.prev {
		if !running[id] {
			delete(c.prev, id)
		}
	}
}

func (c *DockerClient) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://docker"+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("engine returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
