package follow

type EventKind int

const (
	PointerMove EventKind = iota
	Scroll
)

func (k EventKind) String() string {
	switch k {
	case PointerMove:
		return "pointermove"
	case Scroll:
		return "scroll"
	}
	return "unknown"
}

// Event is delivered to listeners. X and Y are client coordinates for pointer
// moves and are unused for scroll events.
type Event struct {
	Kind EventKind
	X, Y float64
}

// Document is the page the engine discovers elements in and listens on.
type Document interface {
	// Query returns every element carrying attribute, in document order.
	Query(attribute string) []Target
	// Bounds is the bounding box of the document root.
	Bounds() Rect
	// Scroll is the current scroll offset of the document.
	Scroll() Position
	// Listen registers fn for kind. Calling cancel detaches it.
	Listen(kind EventKind, fn func(Event)) (cancel func())
}

// Target is a document element. Engines borrow targets and never create or
// destroy them. Implementations must be comparable.
type Target interface {
	Attribute(name string) (string, bool)
	Bounds() Rect
	Transform() string
	SetTransform(transform string)
}
