package pointer

import (
	"context"

	hook "github.com/robotn/gohook"
)

// Hook listens to global mouse events instead of polling. Only one hook can
// run per process.
type Hook struct{}

func (s *Hook) Run(ctx context.Context, fn func(x, y float64)) error {
	events := hook.Start()
	defer hook.End()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Kind == hook.MouseMove || ev.Kind == hook.MouseDrag {
				fn(float64(ev.X), float64(ev.Y))
			}
		}
	}
}
