package sample

import (
	"context"
	"time"

	"github.com/jguan/hoststat/pkg/infra/metrics"
)

// InstantSampler reads metrics that need no window of their own. The CPU
// reads block for cpuWindow inside the source.
type InstantSampler struct {
	source    metrics.Source
	cpuWindow time.Duration
}

func NewInstantSampler(source metrics.Source, cpuWindow time.Duration) *InstantSampler {
	return &InstantSampler{source: source, cpuWindow: cpuWindow}
}

// Sample reads kind once. Failures are returned as an unavailable Result.
func (s *InstantSampler) Sample(ctx context.Context, kind Kind) Result {
	switch kind {
	case KindPerCPU:
		percents, err := s.source.PerCPUPercent(ctx, s.cpuWindow)
		if err != nil {
			return Unavailable(kind, newError(ErrCodeReadFailed, kind, "read per-cpu percent", err))
		}
		if len(percents) == 0 {
			return Unavailable(kind, newError(ErrCodeNoData, kind, "no cores reported", nil))
		}
		return Sampled(kind, PerCPU(percents))

	case KindAvgCPU:
		percent, err := s.source.AvgCPUPercent(ctx, s.cpuWindow)
		if err != nil {
			return Unavailable(kind, newError(ErrCodeReadFailed, kind, "read cpu percent", err))
		}
		return Sampled(kind, Percent(percent))

	case KindVirtualMemory:
		vm, err := s.source.VirtualMemory(ctx)
		if err != nil {
			return Unavailable(kind, newError(ErrCodeReadFailed, kind, "read virtual memory", err))
		}
		return Sampled(kind, MemoryUsage{Used: vm.Used, Shared: vm.Shared, Total: vm.Total})

	case KindSwapMemory:
		sw, err := s.source.SwapMemory(ctx)
		if err != nil {
			return Unavailable(kind, newError(ErrCodeReadFailed, kind, "read swap memory", err))
		}
		return Sampled(kind, MemoryUsage{Used: sw.Used, Total: sw.Total})
	}

	return Unavailable(kind, newError(ErrCodeNoData, kind, "not an instantaneous metric", nil))
}
