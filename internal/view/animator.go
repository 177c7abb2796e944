package view

import (
	"context"
	"time"
)

// Animator drives a row animation from progress 1 down to 0 over the given
// duration, calling tick with each intermediate value.
type Animator interface {
	Run(ctx context.Context, d time.Duration, tick func(progress float64))
}

// TickerAnimator animates in real time at a fixed frame interval.
type TickerAnimator struct {
	// FrameInterval defaults to ~60fps when zero.
	FrameInterval time.Duration
}

// Run implements Animator.
func (a TickerAnimator) Run(ctx context.Context, d time.Duration, tick func(progress float64)) {
	interval := a.FrameInterval
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}

	start := time.Now()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			tick(0)
			return
		case now := <-ticker.C:
			elapsed := now.Sub(start)
			if elapsed >= d {
				tick(0)
				return
			}
			tick(1 - float64(elapsed)/float64(d))
		}
	}
}

// instantAnimator completes immediately. Used in tests and headless runs.
type instantAnimator struct{}

func (instantAnimator) Run(_ context.Context, _ time.Duration, tick func(progress float64)) {
	tick(0)
}
