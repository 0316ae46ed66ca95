package metrics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"

	"github.com/jguan/hoststat/pkg/infra/logger"
)

var errEmptyReading = errors.New("empty reading")

type systemSource struct{}

// NewSource returns a Source backed by gopsutil.
func NewSource() Source {
	return &systemSource{}
}

func (s *systemSource) PerCPUPercent(ctx context.Context, window time.Duration) ([]float64, error) {
	percents, err := cpu.PercentWithContext(ctx, window, true)
	if err != nil {
		return nil, readFailed(ctx, "per-cpu percent", err)
	}
	return percents, nil
}

func (s *systemSource) AvgCPUPercent(ctx context.Context, window time.Duration) (float64, error) {
	percents, err := cpu.PercentWithContext(ctx, window, false)
	if err != nil {
		return 0, readFailed(ctx, "cpu percent", err)
	}
	if len(percents) == 0 {
		return 0, readFailed(ctx, "cpu percent", errEmptyReading)
	}
	return percents[0], nil
}

func (s *systemSource) VirtualMemory(ctx context.Context) (VirtualMemory, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return VirtualMemory{}, readFailed(ctx, "virtual memory", err)
	}
	return VirtualMemory{
		Used:   vm.Used,
		Shared: vm.Shared,
		Total:  vm.Total,
	}, nil
}

func (s *systemSource) SwapMemory(ctx context.Context) (SwapMemory, error) {
	sw, err := mem.SwapMemoryWithContext(ctx)
	if err != nil {
		return SwapMemory{}, readFailed(ctx, "swap memory", err)
	}
	return SwapMemory{
		Used:  sw.Used,
		Total: sw.Total,
	}, nil
}

func (s *systemSource) DiskCounters(ctx context.Context) (map[string]DiskCounters, error) {
	stats, err := disk.IOCountersWithContext(ctx)
	if err != nil {
		return nil, readFailed(ctx, "disk io counters", err)
	}

	counters := make(map[string]DiskCounters, len(stats))
	for name, st := range stats {
		counters[name] = DiskCounters{
			ReadBytes:  st.ReadBytes,
			WriteBytes: st.WriteBytes,
		}
	}
	return counters, nil
}

func (s *systemSource) NetCounters(ctx context.Context) (NetCounters, error) {
	// pernic=false makes gopsutil merge every interface into one "all" entry.
	stats, err := net.IOCountersWithContext(ctx, false)
	if err != nil {
		return NetCounters{}, readFailed(ctx, "net io counters", err)
	}
	if len(stats) == 0 {
		return NetCounters{}, readFailed(ctx, "net io counters", errEmptyReading)
	}
	return NetCounters{
		BytesSent: stats[0].BytesSent,
		BytesRecv: stats[0].BytesRecv,
	}, nil
}

func readFailed(ctx context.Context, what string, err error) error {
	logger.WithContext(ctx).Debug("metric read failed", "metric", what, "error", err)
	return fmt.Errorf("read %s: %w", what, err)
}
