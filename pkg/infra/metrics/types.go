package metrics

import (
	"context"
	"time"
)

// Source is the OS-facing reader used by the sampling engine. Every call is
// a single read; implementations must not retain state between calls.
type Source interface {
	// PerCPUPercent blocks for window and returns the load of each core.
	PerCPUPercent(ctx context.Context, window time.Duration) ([]float64, error)
	// AvgCPUPercent blocks for window and returns the load across all cores.
	AvgCPUPercent(ctx context.Context, window time.Duration) (float64, error)
	VirtualMemory(ctx context.Context) (VirtualMemory, error)
	SwapMemory(ctx context.Context) (SwapMemory, error)
	// DiskCounters returns cumulative byte counters keyed by device name.
	DiskCounters(ctx context.Context) (map[string]DiskCounters, error)
	// NetCounters returns cumulative byte counters merged across interfaces.
	NetCounters(ctx context.Context) (NetCounters, error)
}

type VirtualMemory struct {
	Used   uint64
	Shared uint64
	Total  uint64
}

type SwapMemory struct {
	Used  uint64
	Total uint64
}

type DiskCounters struct {
	ReadBytes  uint64
	WriteBytes uint64
}

type NetCounters struct {
	BytesSent uint64
	BytesRecv uint64
}
