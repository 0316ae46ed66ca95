package sample

import (
	"context"
	"errors"
	"time"

	"github.com/jguan/hoststat/pkg/infra/metrics"
)

var errBoom = errors.New("boom")

// fakeSource replays scripted readings. Counter reads step through their
// slices one call at a time and stick on the last entry.
type fakeSource struct {
	perCPU    []float64
	perCPUErr error
	avg       float64
	avgErr    error
	vm        metrics.VirtualMemory
	vmErr     error
	swap      metrics.SwapMemory
	swapErr   error

	disk    []map[string]metrics.DiskCounters
	diskErr []error
	net     []metrics.NetCounters
	netErr  []error

	diskCalls  int
	netCalls   int
	cpuWindows []time.Duration
}

func (f *fakeSource) PerCPUPercent(_ context.Context, window time.Duration) ([]float64, error) {
	f.cpuWindows = append(f.cpuWindows, window)
	return f.perCPU, f.perCPUErr
}

func (f *fakeSource) AvgCPUPercent(_ context.Context, window time.Duration) (float64, error) {
	f.cpuWindows = append(f.cpuWindows, window)
	return f.avg, f.avgErr
}

func (f *fakeSource) VirtualMemory(context.Context) (metrics.VirtualMemory, error) {
	return f.vm, f.vmErr
}

func (f *fakeSource) SwapMemory(context.Context) (metrics.SwapMemory, error) {
	return f.swap, f.swapErr
}

func (f *fakeSource) DiskCounters(context.Context) (map[string]metrics.DiskCounters, error) {
	i := f.diskCalls
	f.diskCalls++
	if err := pick(f.diskErr, i); err != nil {
		return nil, err
	}
	if len(f.disk) == 0 {
		return nil, errBoom
	}
	return f.disk[min(i, len(f.disk)-1)], nil
}

func (f *fakeSource) NetCounters(context.Context) (metrics.NetCounters, error) {
	i := f.netCalls
	f.netCalls++
	if err := pick(f.netErr, i); err != nil {
		return metrics.NetCounters{}, err
	}
	if len(f.net) == 0 {
		return metrics.NetCounters{}, errBoom
	}
	return f.net[min(i, len(f.net)-1)], nil
}

func pick(errs []error, i int) error {
	if i < len(errs) {
		return errs[i]
	}
	return nil
}

// fakeWaiter counts waits instead of sleeping.
type fakeWaiter struct {
	calls     int
	durations []time.Duration
	err       error
}

func (w *fakeWaiter) Wait(_ context.Context, d time.Duration) error {
	w.calls++
	w.durations = append(w.durations, d)
	return w.err
}

func sdaReads(first, second metrics.DiskCounters) []map[string]metrics.DiskCounters {
	return []map[string]metrics.DiskCounters{
		{"sda": first, "sdb": {ReadBytes: 1, WriteBytes: 1}},
		{"sda": second, "sdb": {ReadBytes: 1, WriteBytes: 1}},
	}
}
