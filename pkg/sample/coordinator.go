package sample

import "context"

// Coordinator runs the samplers a Request needs and gathers their results.
// Instantaneous metrics are read first, one after another; the rate
// metrics then share one window.
type Coordinator struct {
	instant *InstantSampler
	rate    *RateSampler
}

func NewCoordinator(instant *InstantSampler, rate *RateSampler) *Coordinator {
	return &Coordinator{instant: instant, rate: rate}
}

// Run never fails as a whole: each requested Kind gets its own Result.
func (c *Coordinator) Run(ctx context.Context, req Request) Results {
	results := make(Results, req.Len())
	if req.Empty() {
		return results
	}

	for _, kind := range req.InstantKinds() {
		results[kind] = c.instant.Sample(ctx, kind)
	}

	if rateKinds := req.RateKinds(); len(rateKinds) > 0 {
		for kind, res := range c.rate.SampleRate(ctx, rateKinds) {
			results[kind] = res
		}
	}

	return results
}
