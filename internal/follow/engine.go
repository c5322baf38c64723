package follow

import (
	"context"
	"math"
	"sync"

	"github.com/zoobzio/capitan"
)

// Engine keeps the tracked elements of a document in step with the pointer
// and the scroll offset.
type Engine struct {
	mu       sync.Mutex
	document Document
	options  Options
	observer Observer
	restore  bool

	elements []*Element
	pointer  Position
	scroll   Position
	cancels  []func()

	// translate slots and untouched transforms per target, kept across refreshes
	owned     map[Target]TransformFunc
	originals map[Target]string
}

type Option func(*Engine)

// WithObserver sets the observer used when debugging is enabled.
func WithObserver(observer Observer) Option {
	return func(e *Engine) {
		e.observer = observer
	}
}

// WithRestore makes Destroy write every element's original transform back.
func WithRestore() Option {
	return func(e *Engine) {
		e.restore = true
	}
}

// New resolves input over the default options and, when AutoStart is set,
// initiates right away.
func New(document Document, input map[string]any, opts ...Option) *Engine {
	engine := &Engine{
		document:  document,
		options:   ResolveOptions(input),
		owned:     make(map[Target]TransformFunc),
		originals: make(map[Target]string),
	}
	for _, opt := range opts {
		opt(engine)
	}

	if !engine.options.Debug {
		engine.observer = NopObserver{}
	} else if engine.observer == nil {
		engine.observer = LogObserver{}
	}

	if engine.options.AutoStart {
		engine.Initiate()
	}
	return engine
}

func (e *Engine) Options() Options { return e.options }

func (e *Engine) Elements() []*Element {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*Element(nil), e.elements...)
}

func (e *Engine) Pointer() Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pointer
}

func (e *Engine) Scroll() Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scroll
}

// Initiate discovers the marked elements and attaches one pointer and one
// scroll listener. Listeners from an earlier call are detached first.
func (e *Engine) Initiate() {
	e.mu.Lock()
	count := e.initiate()
	e.mu.Unlock()

	capitan.Emit(context.Background(), EngineInitiated,
		KeyElements.Field(count),
		KeyAttribute.Field(e.options.Attribute),
	)
}

func (e *Engine) initiate() int {
	e.detach()
	e.release()
	e.observer.Log("follow instance is enabled")

	targets := e.document.Query(e.options.Attribute)
	for _, target := range targets {
		e.elements = append(e.elements, e.track(target))
	}
	e.observer.Log("found elements in the instance", "count", len(targets))

	e.cancels = append(e.cancels,
		e.document.Listen(PointerMove, e.onPointerMove),
		e.document.Listen(Scroll, e.onScroll),
	)
	return len(e.elements)
}

func (e *Engine) track(target Target) *Element {
	if _, ok := e.originals[target]; !ok {
		e.originals[target] = target.Transform()
	}

	element := newElement(e.document, target, e.options, e.observer)
	element.original = e.originals[target]
	if slot, ok := e.owned[target]; ok {
		element.current = slot
	}
	return element
}

// Destroy drops every element and detaches the listeners. Transforms are left
// as they are unless the engine was built WithRestore.
func (e *Engine) Destroy() {
	e.mu.Lock()
	e.destroy()
	e.mu.Unlock()

	capitan.Emit(context.Background(), EngineDestroyed)
}

func (e *Engine) destroy() {
	e.detach()
	if e.restore {
		for _, element := range e.elements {
			element.restore()
			delete(e.owned, element.target)
		}
	}
	e.release()
	e.observer.Log("follow instance is destroyed")
}

// release drops the elements, keeping the translate slot each one wrote so
// the next discovery rewrites it instead of adding another.
func (e *Engine) release() {
	for _, element := range e.elements {
		if !element.current.IsZero() {
			e.owned[element.target] = element.current
		}
	}
	e.elements = nil
}

// Refresh destroys and initiates again with the same options.
func (e *Engine) Refresh() {
	e.mu.Lock()
	e.destroy()
	count := e.initiate()
	e.observer.Log("follow instance is refreshed")
	e.mu.Unlock()

	capitan.Emit(context.Background(), EngineRefreshed,
		KeyElements.Field(count),
		KeyAttribute.Field(e.options.Attribute),
	)
}

func (e *Engine) detach() {
	for _, cancel := range e.cancels {
		cancel()
	}
	e.cancels = nil
}

func (e *Engine) onPointerMove(event Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.pointer.X = event.X
	e.pointer.Y = event.Y
	if e.options.Debug {
		root := e.document.Bounds()
		e.observer.Dot(Position{X: e.pointer.X - root.Left(), Y: e.pointer.Y - root.Top()}, MarkerPointer)
	}
	e.animate()
}

func (e *Engine) onScroll(Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	scroll := e.document.Scroll()
	e.scroll.X = scroll.X
	e.scroll.Y = scroll.Y
	e.observer.Log("scroll event", "x", e.scroll.X, "y", e.scroll.Y)
	e.animate()
}

func (e *Engine) animate() {
	for _, element := range e.elements {
		d := Displacement(e.pointer, e.scroll, element.baseline, element.factor)
		element.ApplyDisplacement(d)

		if e.options.Debug {
			e.observer.Dot(element.baseline.Add(d), MarkerDisplaced)
		}
	}
}

// Displacement is the offset of an element with the given baseline and factor
// for a pointer and scroll position. Halves round up.
func Displacement(pointer, scroll, baseline Position, factor int) Position {
	f := float64(factor)
	return Position{
		X: math.Floor((pointer.X+scroll.X-baseline.X)/f + 0.5),
		Y: math.Floor((pointer.Y+scroll.Y-baseline.Y)/f + 0.5),
	}
}
