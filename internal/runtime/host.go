package runtime

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
	"go.uber.org/zap"
)

// HostRuntime implements Runtime against the local host, treating processes
// as entities. It is the fallback backend for installs without a container
// daemon. Per-process network accounting is not exposed by the kernel in a
// portable way, so network rates are always zero here.
type HostRuntime struct {
	logger *zap.Logger

	mu     sync.Mutex
	prevIO map[int32]ioSnap
}

type ioSnap struct {
	readBytes  uint64
	writeBytes uint64
	ts         time.Time
}

// NewHostRuntime creates a Runtime that reports host processes.
func NewHostRuntime(logger *zap.Logger) *HostRuntime {
	return &HostRuntime{
		logger: logger,
		prevIO: make(map[int32]ioSnap),
	}
}

// ListActive returns the live processes on the host.
func (h *HostRuntime) ListActive(ctx context.Context) ([]Container, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	containers := make([]Container, 0, len(procs))
	alive := make(map[int32]bool, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			// Process exited between listing and inspection.
			continue
		}
		alive[p.Pid] = true
		containers = append(containers, Container{
			ID:   strconv.Itoa(int(p.Pid)),
			Name: name,
		})
	}

	h.mu.Lock()
	for pid := range h.prevIO {
		if !alive[pid] {
			delete(h.prevIO, pid)
		}
	}
	h.mu.Unlock()

	return containers, nil
}

// GetStats returns one usage sample for the process with the given PID.
func (h *HostRuntime) GetStats(ctx context.Context, id string) (Stats, error) {
	pid, err := strconv.Atoi(id)
	if err != nil {
		return Stats{}, fmt.Errorf("invalid pid %q: %w", id, err)
	}

	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return Stats{}, fmt.Errorf("process %d: %w", pid, err)
	}

	cpuPct, err := p.CPUPercentWithContext(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("process %d cpu: %w", pid, err)
	}

	memInfo, err := p.MemoryInfoWithContext(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("process %d memory: %w", pid, err)
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("host memory: %w", err)
	}

	stats := Stats{
		CPUPercent:  cpuPct,
		MemoryUsage: float64(memInfo.RSS),
		MemoryLimit: float64(vm.Total),
	}
	if vm.Total > 0 {
		stats.MemoryPercent = stats.MemoryUsage / stats.MemoryLimit * 100
	}

	// Disk I/O counters are cumulative; convert to rates against the
	// previous sample for this PID.
	if io, err := p.IOCountersWithContext(ctx); err == nil {
		now := time.Now()
		h.mu.Lock()
		if prev, ok := h.prevIO[int32(pid)]; ok && now.After(prev.ts) {
			dt := now.Sub(prev.ts).Seconds()
			if io.ReadBytes >= prev.readBytes {
				stats.BlockRead = float64(io.ReadBytes-prev.readBytes) / dt
			}
			if io.WriteBytes >= prev.writeBytes {
				stats.BlockWrite = float64(io.WriteBytes-prev.writeBytes) / dt
			}
		}
		h.prevIO[int32(pid)] = ioSnap{readBytes: io.ReadBytes, writeBytes: io.WriteBytes, ts: now}
		h.mu.Unlock()
	}

	return stats, nil
}
