package pointer

import (
	"context"
	"time"

	"github.com/go-vgo/robotgo"
	"github.com/zoobzio/clockz"
)

// Robotgo polls robotgo.Location. X11 only on Linux, Wayland reports nothing useful.
type Robotgo struct {
	Interval time.Duration
	Clock    clockz.Clock
}

func (s *Robotgo) Run(ctx context.Context, fn func(x, y float64)) error {
	return poll(ctx, s.Clock, s.Interval, func() (int, int, error) {
		x, y := robotgo.Location()
		return x, y, nil
	}, fn)
}
