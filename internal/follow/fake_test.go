package follow

import (
	"image/color"
	"sync"
)

type fakeTarget struct {
	attrs     map[string]string
	bounds    Rect
	transform string
}

func newTarget(x, y, w, h float64, attrs map[string]string) *fakeTarget {
	return &fakeTarget{attrs: attrs, bounds: Rect{X: x, Y: y, Width: w, Height: h}}
}

func (t *fakeTarget) Attribute(name string) (string, bool) {
	v, ok := t.attrs[name]
	return v, ok
}

func (t *fakeTarget) Bounds() Rect                  { return t.bounds }
func (t *fakeTarget) Transform() string             { return t.transform }
func (t *fakeTarget) SetTransform(transform string) { t.transform = transform }

type fakeListener struct {
	id   int
	kind EventKind
	fn   func(Event)
}

type fakeDocument struct {
	mu        sync.Mutex
	root      Rect
	scroll    Position
	targets   []*fakeTarget
	listeners []fakeListener
	nextID    int
}

func (d *fakeDocument) Query(attribute string) []Target {
	var out []Target
	for _, t := range d.targets {
		if _, ok := t.attrs[attribute]; ok {
			out = append(out, t)
		}
	}
	return out
}

func (d *fakeDocument) Bounds() Rect     { return d.root }
func (d *fakeDocument) Scroll() Position { return d.scroll }

func (d *fakeDocument) Listen(kind EventKind, fn func(Event)) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	id := d.nextID
	d.listeners = append(d.listeners, fakeListener{id: id, kind: kind, fn: fn})
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		for i, l := range d.listeners {
			if l.id == id {
				d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
				return
			}
		}
	}
}

func (d *fakeDocument) count(kind EventKind) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, l := range d.listeners {
		if l.kind == kind {
			n++
		}
	}
	return n
}

func (d *fakeDocument) emit(event Event) {
	d.mu.Lock()
	var fns []func(Event)
	for _, l := range d.listeners {
		if l.kind == event.Kind {
			fns = append(fns, l.fn)
		}
	}
	d.mu.Unlock()
	for _, fn := range fns {
		fn(event)
	}
}

func (d *fakeDocument) move(x, y float64) {
	d.emit(Event{Kind: PointerMove, X: x, Y: y})
}

func (d *fakeDocument) scrollTo(x, y float64) {
	d.scroll = Position{X: x, Y: y}
	d.emit(Event{Kind: Scroll})
}

type recordingObserver struct {
	dots     []Position
	colors   []color.RGBA
	outlines int
	logs     []string
}

func (o *recordingObserver) Dot(p Position, c color.RGBA) {
	o.dots = append(o.dots, p)
	o.colors = append(o.colors, c)
}
func (o *recordingObserver) Outline(*Element)         { o.outlines++ }
func (o *recordingObserver) Log(msg string, _ ...any) { o.logs = append(o.logs, msg) }
