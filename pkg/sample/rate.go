package sample

import (
	"context"
	"time"

	"github.com/jguan/hoststat/pkg/infra/metrics"
)

const (
	// DefaultRateWindow is the shared wait between the two counter reads.
	DefaultRateWindow = time.Second
	// DefaultDiskDevice is the device whose counters back DiskIO.
	DefaultDiskDevice = "sda"
	// AllDevices sums every whole disk instead of picking one device.
	AllDevices = "all"

	bytesPerKB = 1024
	netAllKey  = "all"
)

// RateSampler derives throughput from two counter snapshots taken one
// window apart. A single wait covers every requested rate metric.
type RateSampler struct {
	source     metrics.Source
	waiter     Waiter
	window     time.Duration
	diskDevice string
}

type RateOption func(*RateSampler)

func WithWaiter(w Waiter) RateOption {
	return func(s *RateSampler) {
		if w != nil {
			s.waiter = w
		}
	}
}

func WithWindow(d time.Duration) RateOption {
	return func(s *RateSampler) {
		if d > 0 {
			s.window = d
		}
	}
}

// WithDiskDevice selects the device key used for DiskIO, or AllDevices.
func WithDiskDevice(name string) RateOption {
	return func(s *RateSampler) {
		if name != "" {
			s.diskDevice = name
		}
	}
}

func NewRateSampler(source metrics.Source, opts ...RateOption) *RateSampler {
	s := &RateSampler{
		source:     source,
		waiter:     NewWaiter(),
		window:     DefaultRateWindow,
		diskDevice: DefaultDiskDevice,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ratePlan is the per-kind state carried across the shared wait.
type ratePlan struct {
	kind  Kind
	read  func(ctx context.Context) (CounterSnapshot, error)
	key   string // empty sums every whole device
	first CounterSnapshot
	err   error
}

// SampleRate samples every rate kind in kinds. Non-rate kinds and
// duplicates are ignored. The wait runs once, and only if at least one
// first read succeeded.
func (s *RateSampler) SampleRate(ctx context.Context, kinds []Kind) Results {
	results := make(Results)
	plans := s.plan(kinds)
	if len(plans) == 0 {
		return results
	}

	pending := 0
	for _, p := range plans {
		p.first, p.err = p.read(ctx)
		if p.err == nil {
			pending++
		}
	}

	if pending > 0 {
		if err := s.waiter.Wait(ctx, s.window); err != nil {
			for _, p := range plans {
				if p.err == nil {
					p.err = newError(ErrCodeInterrupted, p.kind, "rate window interrupted", err)
				}
			}
		}
	}

	for _, p := range plans {
		if p.err != nil {
			results[p.kind] = Unavailable(p.kind, asReadError(p.kind, p.err))
			continue
		}

		second, err := p.read(ctx)
		if err != nil {
			results[p.kind] = Unavailable(p.kind, asReadError(p.kind, err))
			continue
		}

		results[p.kind] = s.rate(p, second)
	}

	return results
}

func (s *RateSampler) plan(kinds []Kind) []*ratePlan {
	want := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		if k.IsRate() {
			want[k] = true
		}
	}

	var plans []*ratePlan
	for _, k := range AllKinds() {
		if want[k] {
			plans = append(plans, s.newPlan(k))
		}
	}
	return plans
}

func (s *RateSampler) newPlan(kind Kind) *ratePlan {
	switch kind {
	case KindDiskIO:
		key := s.diskDevice
		if key == AllDevices {
			key = ""
		}
		return &ratePlan{kind: kind, read: s.readDisk, key: key}
	default:
		return &ratePlan{kind: kind, read: s.readNet, key: netAllKey}
	}
}

func (s *RateSampler) readDisk(ctx context.Context) (CounterSnapshot, error) {
	counters, err := s.source.DiskCounters(ctx)
	if err != nil {
		return nil, err
	}

	snap := make(CounterSnapshot, len(counters))
	for name, c := range counters {
		snap[name] = Counter{Up: c.ReadBytes, Down: c.WriteBytes}
	}
	return snap, nil
}

func (s *RateSampler) readNet(ctx context.Context) (CounterSnapshot, error) {
	c, err := s.source.NetCounters(ctx)
	if err != nil {
		return nil, err
	}
	return CounterSnapshot{netAllKey: {Up: c.BytesSent, Down: c.BytesRecv}}, nil
}

func (s *RateSampler) rate(p *ratePlan, second CounterSnapshot) Result {
	var delta Counter

	if p.key != "" {
		prev, ok1 := p.first[p.key]
		next, ok2 := second[p.key]
		if !ok1 || !ok2 {
			return Unavailable(p.kind, newError(ErrCodeMissingDevice, p.kind, "device "+p.key+" not reported", nil))
		}
		d, ok := Delta(prev, next)
		if !ok {
			return Unavailable(p.kind, newError(ErrCodeCounterRegression, p.kind, "counters of "+p.key+" went backwards", nil))
		}
		delta = d
	} else {
		matched := 0
		for _, name := range wholeDevices(p.first) {
			next, ok := second[name]
			if !ok {
				continue
			}
			d, ok := Delta(p.first[name], next)
			if !ok {
				return Unavailable(p.kind, newError(ErrCodeCounterRegression, p.kind, "counters of "+name+" went backwards", nil))
			}
			delta.Up += d.Up
			delta.Down += d.Down
			matched++
		}
		if matched == 0 {
			return Unavailable(p.kind, newError(ErrCodeMissingDevice, p.kind, "no device reported in both reads", nil))
		}
	}

	seconds := s.window.Seconds()
	return Sampled(p.kind, Throughput{
		UploadKBps:   float64(delta.Up) / bytesPerKB / seconds,
		DownloadKBps: float64(delta.Down) / bytesPerKB / seconds,
	})
}

func asReadError(kind Kind, err error) error {
	if CodeOf(err) != "" {
		return err
	}
	return newError(ErrCodeReadFailed, kind, "read counters", err)
}
