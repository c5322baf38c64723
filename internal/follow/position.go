package follow

// Position is either a screen coordinate or a displacement, callers keep track of which.
type Position struct {
	X, Y, Z float64
}

func NewPosition(x, y float64, z ...float64) Position {
	p := Position{X: x, Y: y}
	if len(z) > 0 {
		p.Z = z[0]
	}
	return p
}

func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y, Z: p.Z + o.Z}
}

// Rect is a bounding box as reported by documents and their elements.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (r Rect) Left() float64 {
	if r.Width < 0 {
		return r.X + r.Width
	}
	return r.X
}

func (r Rect) Top() float64 {
	if r.Height < 0 {
		return r.Y + r.Height
	}
	return r.Y
}

func (r Rect) Center() Position {
	return Position{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}
