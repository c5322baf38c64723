package follow

// zeroNudge replaces an exact zero on either axis before it is written, a zero
// translate collapses differently from a non-zero one in style interpreters.
const zeroNudge = 0.1

// Element is a tracked target: its factor, its baseline (centre relative to the
// document root) and the translate it currently owns in the target's transform.
type Element struct {
	target   Target
	document Document
	factor   int
	baseline Position
	current  TransformFunc
	original string
}

func newElement(document Document, target Target, options Options, observer Observer) *Element {
	element := &Element{
		target:   target,
		document: document,
		factor:   options.Factor,
		original: target.Transform(),
	}

	if value, ok := target.Attribute(options.Attribute); ok {
		if factor, ok := parseLeadingInt(value); ok && factor > 0 {
			element.factor = factor
		}
	}

	element.baseline = element.locate()
	observer.Outline(element)
	return element
}

func (e *Element) Target() Target     { return e.target }
func (e *Element) Factor() int        { return e.factor }
func (e *Element) Baseline() Position { return e.baseline }

// Current is the translate descriptor last written, empty before the first update.
func (e *Element) Current() string {
	if e.current.IsZero() {
		return ""
	}
	return e.current.String()
}

// RecomputePosition captures the baseline again.
func (e *Element) RecomputePosition() {
	e.baseline = e.locate()
}

func (e *Element) locate() Position {
	root := e.document.Bounds()
	box := e.target.Bounds()

	center := box.Center()
	return Position{X: center.X - root.Left(), Y: center.Y - root.Top()}
}

// ApplyDisplacement writes d as a translate into the target's transform,
// replacing the translate this element wrote before and leaving every other
// transform function alone.
func (e *Element) ApplyDisplacement(d Position) {
	if d.X == 0 {
		d.X = zeroNudge
	}
	if d.Y == 0 {
		d.Y = zeroNudge
	}

	next := Translate(d)
	list := ParseTransform(e.target.Transform())

	// our translate is appended, so it sits after any equal one the owner wrote
	if i := list.LastIndex(e.current); !e.current.IsZero() && i >= 0 {
		list[i] = next
	} else {
		list = append(list, next)
	}

	e.current = next
	e.target.SetTransform(list.String())
}

func (e *Element) restore() {
	e.target.SetTransform(e.original)
	e.current = TransformFunc{}
}
