package sample

import (
	"context"
	"time"
)

// Waiter blocks for the shared rate window.
type Waiter interface {
	Wait(ctx context.Context, d time.Duration) error
}

type timerWaiter struct{}

// NewWaiter returns a Waiter backed by a real timer.
func NewWaiter() Waiter {
	return timerWaiter{}
}

func (timerWaiter) Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
