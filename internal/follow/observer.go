package follow

import (
	"image/color"

	"follow/internal/utils"
)

// Marker colours used for debug dots.
var (
	MarkerPointer   = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	MarkerDisplaced = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// Observer receives diagnostics from the engine. It never feeds anything back.
// Positions are relative to the document root, like element baselines.
type Observer interface {
	// Dot marks a short-lived point.
	Dot(p Position, c color.RGBA)
	// Outline marks the baseline box of a freshly tracked element.
	Outline(e *Element)
	// Log emits a diagnostic message with optional key/value pairs.
	Log(msg string, kv ...any)
}

// NopObserver is used whenever debugging is disabled.
type NopObserver struct{}

func (NopObserver) Dot(Position, color.RGBA) {}
func (NopObserver) Outline(*Element)         {}
func (NopObserver) Log(string, ...any)       {}

var _ Observer = NopObserver{}

// LogObserver reports everything through the debug log.
type LogObserver struct{}

func (LogObserver) Dot(p Position, c color.RGBA) {
	utils.Debug("dot at (%g, %g) rgb(%d, %d, %d)", p.X, p.Y, c.R, c.G, c.B)
}

func (LogObserver) Outline(e *Element) {
	utils.Debug("tracking element at (%g, %g) with factor %d", e.Baseline().X, e.Baseline().Y, e.Factor())
}

func (LogObserver) Log(msg string, kv ...any) {
	utils.Debug("%s%s", msg, utils.FormatPairs(kv...))
}

var _ Observer = LogObserver{}
