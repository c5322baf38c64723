// Package pointer reads the global pointer position for hosts that run
// without input focus, such as a window pinned behind the desktop.
package pointer

import (
	"context"
	"fmt"
	"time"

	"github.com/zoobzio/clockz"
)

// Source reports pointer moves to fn until ctx is done.
type Source interface {
	Run(ctx context.Context, fn func(x, y float64)) error
}

// DefaultInterval is the polling period of the polling sources.
const DefaultInterval = time.Second / 60

// New returns the source registered under name. "local" has no global source
// and yields nil: the host reads its own input.
func New(name string) (Source, error) {
	switch name {
	case "", "local":
		return nil, nil
	case "x11":
		return &X11{Interval: DefaultInterval, Clock: clockz.RealClock}, nil
	case "robotgo":
		return &Robotgo{Interval: DefaultInterval, Clock: clockz.RealClock}, nil
	case "hook":
		return &Hook{}, nil
	}
	return nil, fmt.Errorf("unknown pointer source %q", name)
}

// poll calls query on every tick of clock and forwards positions that changed.
// A nil clock is the real one.
func poll(ctx context.Context, clock clockz.Clock, interval time.Duration, query func() (int, int, error), fn func(x, y float64)) error {
	if clock == nil {
		clock = clockz.RealClock
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := clock.NewTicker(interval)
	defer ticker.Stop()

	lastX, lastY := -1, -1
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C():
			x, y, err := query()
			if err != nil {
				return err
			}
			if x != lastX || y != lastY {
				lastX, lastY = x, y
				fn(float64(x), float64(y))
			}
		}
	}
}
