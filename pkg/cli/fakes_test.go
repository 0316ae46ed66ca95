package cli

import (
	"context"
	"errors"
	"time"

	"github.com/jguan/hoststat/pkg/infra/metrics"
)

var errRead = errors.New("read failed")

// stubSource returns fixed readings; disk and net advance by one step per
// read so two reads yield a known rate.
type stubSource struct {
	failCPU   bool
	failMem   bool
	diskCalls int
	netCalls  int
}

func (s *stubSource) PerCPUPercent(context.Context, time.Duration) ([]float64, error) {
	if s.failCPU {
		return nil, errRead
	}
	return []float64{10, 20.5}, nil
}

func (s *stubSource) AvgCPUPercent(context.Context, time.Duration) (float64, error) {
	if s.failCPU {
		return 0, errRead
	}
	return 15.5, nil
}

func (s *stubSource) VirtualMemory(context.Context) (metrics.VirtualMemory, error) {
	if s.failMem {
		return metrics.VirtualMemory{}, errRead
	}
	return metrics.VirtualMemory{Used: 2_147_483_648, Shared: 0, Total: 8_589_934_592}, nil
}

func (s *stubSource) SwapMemory(context.Context) (metrics.SwapMemory, error) {
	if s.failMem {
		return metrics.SwapMemory{}, errRead
	}
	return metrics.SwapMemory{Used: 0, Total: 1 << 30}, nil
}

func (s *stubSource) DiskCounters(context.Context) (map[string]metrics.DiskCounters, error) {
	step := uint64(s.diskCalls)
	s.diskCalls++
	return map[string]metrics.DiskCounters{
		"sda":     {ReadBytes: 1000 + step*1024, WriteBytes: 500 + step*1024},
		"nvme0n1": {ReadBytes: step * 4096, WriteBytes: 0},
	}, nil
}

func (s *stubSource) NetCounters(context.Context) (metrics.NetCounters, error) {
	step := uint64(s.netCalls)
	s.netCalls++
	return metrics.NetCounters{BytesSent: step * 2048, BytesRecv: step * 512}, nil
}

type countingWaiter struct {
	calls int
}

func (w *countingWaiter) Wait(context.Context, time.Duration) error {
	w.calls++
	return nil
}
