package debug

import (
	"image/color"

	"follow/internal/follow"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Viewport maps document coordinates onto the window.
type Viewport struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
	Origin  follow.Position
}

func (v Viewport) project(p follow.Position) (float32, float32) {
	x := v.OffsetX + (v.Origin.X+p.X)*v.Scale
	y := v.OffsetY + (v.Origin.Y+p.Y)*v.Scale
	return float32(x), float32(y)
}

// Draw paints the overlay with raylib: baseline outlines in red, dots in their
// own colour, the recent log lines in the top-left corner.
func (s Snapshot) Draw(v Viewport, fontSize int32) {
	for _, r := range s.Outlines {
		x, y := v.project(follow.Position{X: r.X, Y: r.Y})
		rl.DrawRectangleLines(int32(x), int32(y), int32(r.Width*v.Scale), int32(r.Height*v.Scale), rl.Red)
	}

	for _, dot := range s.Dots {
		x, y := v.project(dot.Position)
		rl.DrawRectangle(int32(x-2), int32(y-2), 4, 4, rlColor(dot.Color))
	}

	for i, line := range s.Logs {
		rl.DrawText(line, 10, 10+int32(i)*(fontSize+2), fontSize, rl.White)
	}
}

func rlColor(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
