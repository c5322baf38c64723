// Package page is an HTML document model the follow engine can run on: boxes
// come from inline styles and pointer/scroll events are dispatched by the host.
package page

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"follow/internal/follow"
)

// AutoAttribute on a <script> element asks the host to start a default engine.
const AutoAttribute = "data-follow-auto"

type listener struct {
	id   int
	kind follow.EventKind
	fn   func(follow.Event)
}

type Document struct {
	mu        sync.RWMutex
	root      *html.Node
	body      *Box
	boxes     []*Box
	scroll    follow.Position
	viewport  follow.Position
	extent    follow.Position
	autoStart bool

	listeners []listener
	nextID    int
}

func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open page %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page %s: %w", path, err)
	}
	return doc, nil
}

func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	doc := &Document{root: root}
	doc.build()
	return doc, nil
}

func (d *Document) build() {
	var walk func(n *html.Node, parent *Box)
	walk = func(n *html.Node, parent *Box) {
		if n.Type == html.ElementNode {
			if n.DataAtom == atom.Script {
				if value, ok := attribute(n, AutoAttribute); ok && (value == "" || value == "true") {
					d.autoStart = true
				}
			}

			switch {
			case n.DataAtom == atom.Body:
				d.body = newBox(d, n, nil)
				parent = d.body
			case parent != nil:
				box := newBox(d, n, parent)
				d.boxes = append(d.boxes, box)
				parent = box
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, parent)
		}
	}
	walk(d.root, nil)

	if d.body == nil {
		// html.Parse always synthesizes a body, this only guards hand-built trees
		d.body = newBox(d, &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}, nil)
	}

	for _, box := range d.boxes {
		d.extent.X = math.Max(d.extent.X, box.layout.X+box.layout.Width)
		d.extent.Y = math.Max(d.extent.Y, box.layout.Y+box.layout.Height)
	}
	if d.body.layout.Width == 0 {
		d.body.layout.Width = d.extent.X - d.body.layout.X
	}
	if d.body.layout.Height == 0 {
		d.body.layout.Height = d.extent.Y - d.body.layout.Y
	}
}

// AutoStart reports whether a script element carries data-follow-auto as "" or "true".
func (d *Document) AutoStart() bool {
	return d.autoStart
}

func (d *Document) Query(name string) []follow.Target {
	var targets []follow.Target
	for _, box := range d.boxes {
		if _, ok := box.Attribute(name); ok {
			targets = append(targets, box)
		}
	}
	return targets
}

// Boxes returns every element box under body in document order.
func (d *Document) Boxes() []*Box {
	return append([]*Box(nil), d.boxes...)
}

func (d *Document) Body() *Box {
	return d.body
}

func (d *Document) Bounds() follow.Rect {
	return d.body.Bounds()
}

// Extent is the bottom-right corner of the content in document coordinates.
func (d *Document) Extent() follow.Position {
	return d.extent
}

func (d *Document) Scroll() follow.Position {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.scroll
}

// SetViewport tells the document how much of it is visible, which bounds scrolling.
func (d *Document) SetViewport(width, height float64) {
	d.mu.Lock()
	d.viewport = follow.Position{X: width, Y: height}
	d.mu.Unlock()
}

func (d *Document) Listen(kind follow.EventKind, fn func(follow.Event)) func() {
	d.mu.Lock()
	d.nextID++
	id := d.nextID
	d.listeners = append(d.listeners, listener{id: id, kind: kind, fn: fn})
	d.mu.Unlock()

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

// ListenerCount is the number of listeners attached for kind.
func (d *Document) ListenerCount(kind follow.EventKind) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	count := 0
	for _, l := range d.listeners {
		if l.kind == kind {
			count++
		}
	}
	return count
}

// MovePointer dispatches a pointer move at client coordinates x, y.
func (d *Document) MovePointer(x, y float64) {
	d.dispatch(follow.Event{Kind: follow.PointerMove, X: x, Y: y})
}

// ScrollTo sets the scroll offset, clamped to the scrollable range, and
// dispatches a scroll event when it changed.
func (d *Document) ScrollTo(x, y float64) {
	d.mu.Lock()
	maxX := math.Max(0, d.extent.X-d.viewport.X)
	maxY := math.Max(0, d.extent.Y-d.viewport.Y)
	next := follow.Position{
		X: math.Min(math.Max(0, x), maxX),
		Y: math.Min(math.Max(0, y), maxY),
	}
	changed := next != d.scroll
	d.scroll = next
	d.mu.Unlock()

	if changed {
		d.dispatch(follow.Event{Kind: follow.Scroll})
	}
}

func (d *Document) ScrollBy(dx, dy float64) {
	scroll := d.Scroll()
	d.ScrollTo(scroll.X+dx, scroll.Y+dy)
}

func (d *Document) dispatch(event follow.Event) {
	d.mu.RLock()
	var fns []func(follow.Event)
	for _, l := range d.listeners {
		if l.kind == event.Kind {
			fns = append(fns, l.fn)
		}
	}
	d.mu.RUnlock()

	for _, fn := range fns {
		fn(event)
	}
}

// Render writes the document back out as HTML, transforms included.
func (d *Document) Render(w io.Writer) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return html.Render(w, d.root)
}

// Box is one element of the page with its layout box in document coordinates.
type Box struct {
	doc    *Document
	node   *html.Node
	parent *Box
	style  style
	layout follow.Rect

	Tag        string
	Label      string
	Background color.RGBA
}

var defaultBackground = color.RGBA{R: 200, G: 200, B: 200, A: 255}

func newBox(d *Document, n *html.Node, parent *Box) *Box {
	raw, _ := attribute(n, "style")
	st := parseStyle(raw)

	box := &Box{
		doc:        d,
		node:       n,
		parent:     parent,
		style:      st,
		Tag:        n.Data,
		Background: st.color("background", st.color("background-color", defaultBackground)),
		layout: follow.Rect{
			X:      st.pixels("left"),
			Y:      st.pixels("top"),
			Width:  st.pixels("width"),
			Height: st.pixels("height"),
		},
	}
	if parent != nil {
		box.layout.X += parent.layout.X
		box.layout.Y += parent.layout.Y
	}

	if label, ok := attribute(n, "data-label"); ok {
		box.Label = label
	} else {
		box.Label = ownText(n)
	}
	return box
}

// Name identifies the box for people: its label, else its id, else its tag.
func (b *Box) Name() string {
	if b.Label != "" {
		return b.Label
	}
	if id, ok := b.Attribute("id"); ok && id != "" {
		return "#" + id
	}
	return b.Tag
}

func (b *Box) Attribute(name string) (string, bool) {
	return attribute(b.node, name)
}

// Layout is the box in document coordinates, transforms not applied.
func (b *Box) Layout() follow.Rect {
	return b.layout
}

// Bounds is the box relative to the viewport, like a client rect.
func (b *Box) Bounds() follow.Rect {
	scroll := b.doc.Scroll()
	r := b.layout
	r.X -= scroll.X
	r.Y -= scroll.Y
	return r
}

func (b *Box) Transform() string {
	b.doc.mu.RLock()
	defer b.doc.mu.RUnlock()
	value, _ := b.style.get("transform")
	return value
}

func (b *Box) SetTransform(transform string) {
	b.doc.mu.Lock()
	defer b.doc.mu.Unlock()
	b.style = b.style.set("transform", strings.TrimSpace(transform))
	setAttribute(b.node, "style", b.style.String())
}

// Offset is the translation currently applied through the transform property.
func (b *Box) Offset() follow.Position {
	return follow.ParseTransform(b.Transform()).Translation()
}

func attribute(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

func setAttribute(n *html.Node, name, value string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && strings.EqualFold(n.Attr[i].Key, name) {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

func ownText(n *html.Node) string {
	var parts []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			if text := strings.TrimSpace(c.Data); text != "" {
				parts = append(parts, text)
			}
		}
	}
	return strings.Join(parts, " ")
}
