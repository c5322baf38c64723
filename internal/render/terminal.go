package render

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/zoobzio/clockz"

	"follow/internal/page"
)

// Terminal draws a page with one terminal cell standing for CellWidth x
// CellHeight document pixels.
type Terminal struct {
	stage
	screen     tcell.Screen
	clock      clockz.Clock
	cellWidth  float64
	cellHeight float64
}

type TerminalOption func(*Terminal)

// WithClock sets the clock that paces redraws.
func WithClock(clock clockz.Clock) TerminalOption {
	return func(t *Terminal) {
		t.clock = clock
	}
}

func NewTerminal(screen tcell.Screen, doc *page.Document, cellWidth, cellHeight float64, opts ...TerminalOption) *Terminal {
	t := &Terminal{
		stage:      stage{doc: doc},
		screen:     screen,
		clock:      clockz.RealClock,
		cellWidth:  cellWidth,
		cellHeight: cellHeight,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.resize()
	return t
}

func (t *Terminal) resize() {
	w, h := t.screen.Size()
	t.doc.SetViewport(float64(w)*t.cellWidth, float64(h)*t.cellHeight)
}

// HandleEvent applies one terminal event. It returns false when the user quits.
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case 'r':
				t.refresh()
			case 'd':
				t.toggleOverlay()
			}
		}

	case *tcell.EventMouse:
		buttons := ev.Buttons()
		switch {
		case buttons&tcell.WheelUp != 0:
			t.doc.ScrollBy(0, -scrollStep)
		case buttons&tcell.WheelDown != 0:
			t.doc.ScrollBy(0, scrollStep)
		case buttons&tcell.WheelLeft != 0:
			t.doc.ScrollBy(-scrollStep, 0)
		case buttons&tcell.WheelRight != 0:
			t.doc.ScrollBy(scrollStep, 0)
		default:
			x, y := ev.Position()
			t.doc.MovePointer((float64(x)+0.5)*t.cellWidth, (float64(y)+0.5)*t.cellHeight)
		}

	case *tcell.EventResize:
		t.resize()
		t.screen.Sync()
	}
	return true
}

func (t *Terminal) cell(x, y float64) (int, int) {
	return int(x / t.cellWidth), int(y / t.cellHeight)
}

// Draw paints the whole page and, when enabled, the debug overlay.
func (t *Terminal) Draw() {
	t.screen.Clear()
	width, height := t.screen.Size()

	for _, box := range t.doc.Boxes() {
		r := t.displayed(box)
		x0, y0 := t.cell(r.Left(), r.Top())
		x1, y1 := t.cell(r.Left()+r.Width, r.Top()+r.Height)
		if x1 == x0 && r.Width > 0 {
			x1++
		}
		if y1 == y0 && r.Height > 0 {
			y1++
		}

		bg := box.Background
		style := tcell.StyleDefault.
			Background(tcell.NewRGBColor(int32(bg.R), int32(bg.G), int32(bg.B))).
			Foreground(tcell.ColorBlack)

		for y := max(y0, 0); y < min(y1, height); y++ {
			for x := max(x0, 0); x < min(x1, width); x++ {
				t.screen.SetContent(x, y, ' ', nil, style)
			}
		}

		label := []rune(box.Label)
		for i := 0; i < len(label) && x0+i < x1; i++ {
			if x0+i >= 0 && x0+i < width && y0 >= 0 && y0 < height {
				t.screen.SetContent(x0+i, y0, label[i], nil, style)
			}
		}
	}

	if snapshot, ok := t.snapshot(); ok {
		root := t.doc.Bounds()
		outline := tcell.StyleDefault.Foreground(tcell.ColorRed)
		for _, r := range snapshot.Outlines {
			x0, y0 := t.cell(root.Left()+r.X, root.Top()+r.Y)
			x1, y1 := t.cell(root.Left()+r.X+r.Width, root.Top()+r.Y+r.Height)
			t.frame(x0, y0, x1, y1, outline)
		}
		for _, dot := range snapshot.Dots {
			x, y := t.cell(root.Left()+dot.Position.X, root.Top()+dot.Position.Y)
			c := dot.Color
			t.screen.SetContent(x, y, '•', nil, tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))))
		}
		for i, line := range snapshot.Logs {
			row := height - len(snapshot.Logs) + i
			for j, r := range []rune(line) {
				if j >= width {
					break
				}
				t.screen.SetContent(j, row, r, nil, tcell.StyleDefault.Foreground(tcell.ColorYellow))
			}
		}
	}

	t.screen.Show()
}

func (t *Terminal) frame(x0, y0, x1, y1 int, style tcell.Style) {
	for x := x0; x <= x1; x++ {
		t.screen.SetContent(x, y0, '─', nil, style)
		t.screen.SetContent(x, y1, '─', nil, style)
	}
	for y := y0; y <= y1; y++ {
		t.screen.SetContent(x0, y, '│', nil, style)
		t.screen.SetContent(x1, y, '│', nil, style)
	}
}

// Run reads terminal input and redraws at fps until the user quits or ctx ends.
func (t *Terminal) Run(ctx context.Context, fps int) error {
	t.screen.EnableMouse(tcell.MouseMotionEvents)
	defer t.screen.DisableMouse()

	if fps <= 0 {
		fps = 60
	}
	ticker := t.clock.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	t.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok || !t.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C():
			t.Draw()
		}
	}
}
