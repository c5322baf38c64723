package debug

import (
	"image/color"
	"sync"
	"time"

	"github.com/zoobzio/clockz"

	"follow/internal/follow"
	"follow/internal/utils"
)

const (
	// MarkerTimeout is how long a dot stays on screen.
	MarkerTimeout = 5 * time.Second
	maxLogLines   = 8
)

type Dot struct {
	Position follow.Position
	Color    color.RGBA
}

// Snapshot is what a renderer needs to draw the overlay.
type Snapshot struct {
	Dots     []Dot
	Outlines []follow.Rect
	Logs     []string
}

// Overlay collects debug markers for the renderers. Dots expire on their own,
// outlines stay until cleared.
type Overlay struct {
	mu       sync.Mutex
	clock    clockz.Clock
	timeout  time.Duration
	dots     map[int]Dot
	order    []int
	outlines []follow.Rect
	logs     []string
	nextID   int
	done     chan struct{}
	closed   bool
}

type Option func(*Overlay)

// WithClock sets the clock that expires dots, mostly for tests.
func WithClock(clock clockz.Clock) Option {
	return func(o *Overlay) {
		o.clock = clock
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(o *Overlay) {
		o.timeout = timeout
	}
}

func NewOverlay(opts ...Option) *Overlay {
	o := &Overlay{
		clock:   clockz.RealClock,
		timeout: MarkerTimeout,
		dots:    make(map[int]Dot),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Overlay) Dot(p follow.Position, c color.RGBA) {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.nextID++
	id := o.nextID
	o.dots[id] = Dot{Position: p, Color: c}
	o.order = append(o.order, id)
	timer := o.clock.NewTimer(o.timeout)
	o.mu.Unlock()

	go func() {
		select {
		case <-timer.C():
			o.removeDot(id)
		case <-o.done:
			timer.Stop()
		}
	}()
}

func (o *Overlay) removeDot(id int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.dots, id)
	for i, v := range o.order {
		if v == id {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}
}

func (o *Overlay) Outline(e *follow.Element) {
	box := e.Target().Bounds()
	baseline := e.Baseline()

	o.mu.Lock()
	defer o.mu.Unlock()
	o.outlines = append(o.outlines, follow.Rect{
		X:      baseline.X - box.Width/2,
		Y:      baseline.Y - box.Height/2,
		Width:  box.Width,
		Height: box.Height,
	})
	utils.Debug("outline for element with factor %d at (%g, %g)", e.Factor(), baseline.X, baseline.Y)
}

func (o *Overlay) Log(msg string, kv ...any) {
	line := msg + utils.FormatPairs(kv...)
	utils.Debug("%s", line)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.logs = append(o.logs, line)
	if len(o.logs) > maxLogLines {
		o.logs = o.logs[len(o.logs)-maxLogLines:]
	}
}

// ClearOutlines drops the persistent outlines, used before re-discovery.
func (o *Overlay) ClearOutlines() {
	o.mu.Lock()
	o.outlines = nil
	o.mu.Unlock()
}

func (o *Overlay) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	s := Snapshot{
		Dots:     make([]Dot, 0, len(o.order)),
		Outlines: append([]follow.Rect(nil), o.outlines...),
		Logs:     append([]string(nil), o.logs...),
	}
	for _, id := range o.order {
		s.Dots = append(s.Dots, o.dots[id])
	}
	return s
}

// Close stops every pending expiry timer. Dots added afterwards are ignored.
func (o *Overlay) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.closed = true
	close(o.done)
	o.dots = make(map[int]Dot)
	o.order = nil
}

var _ follow.Observer = (*Overlay)(nil)
