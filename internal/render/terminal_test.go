package render

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/zoobzio/clockz"

	"follow/internal/follow"
	"follow/internal/page"
)

const terminalPage = `<html><body style="left: 0; top: 0">
  <div data-follow data-label="A" style="left: 96px; top: 96px; width: 32px; height: 32px; background: #ff0000"></div>
  <p style="left: 0; top: 600px; width: 100px; height: 40px"></p>
</body></html>`

func newTestTerminal(t *testing.T) (*Terminal, *page.Document, tcell.SimulationScreen) {
	t.Helper()

	doc, err := page.Parse(strings.NewReader(terminalPage))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init failed: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(50, 20)

	term := NewTerminal(screen, doc, 8, 16, WithClock(clockz.NewFakeClock()))
	term.SetEngine(follow.New(doc, nil))
	return term, doc, screen
}

func transformOf(doc *page.Document) string {
	return doc.Boxes()[0].Transform()
}

func TestTerminal_MouseMovesPointer(t *testing.T) {
	term, doc, _ := newTestTerminal(t)

	if !term.HandleEvent(tcell.NewEventMouse(20, 10, tcell.ButtonNone, tcell.ModNone)) {
		t.Fatal("mouse motion should not quit")
	}

	// cell (20, 10) is the pointer at (164, 168), the box centre is (112, 112)
	if got := term.Engine().Pointer(); got != (follow.Position{X: 164, Y: 168}) {
		t.Errorf("unexpected pointer %v", got)
	}
	if got := transformOf(doc); got != "translate(5px, 6px)" {
		t.Errorf("unexpected transform %q", got)
	}
}

func TestTerminal_WheelScrolls(t *testing.T) {
	term, doc, _ := newTestTerminal(t)

	term.HandleEvent(tcell.NewEventMouse(20, 10, tcell.ButtonNone, tcell.ModNone))
	term.HandleEvent(tcell.NewEventMouse(20, 10, tcell.WheelDown, tcell.ModNone))

	if got := doc.Scroll(); got != (follow.Position{Y: scrollStep}) {
		t.Errorf("unexpected scroll %v", got)
	}
	if got := transformOf(doc); got != "translate(5px, 10px)" {
		t.Errorf("unexpected transform %q", got)
	}

	term.HandleEvent(tcell.NewEventMouse(20, 10, tcell.WheelUp, tcell.ModNone))
	term.HandleEvent(tcell.NewEventMouse(20, 10, tcell.WheelUp, tcell.ModNone))
	if got := doc.Scroll(); got != (follow.Position{}) {
		t.Errorf("expected scroll clamped at 0, got %v", got)
	}
}

func TestTerminal_Keys(t *testing.T) {
	term, doc, _ := newTestTerminal(t)

	if !term.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone)) {
		t.Error("refresh should not quit")
	}
	if n := doc.ListenerCount(follow.PointerMove); n != 1 {
		t.Errorf("expected 1 pointer listener after refresh, got %d", n)
	}

	quits := []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
	}
	for _, ev := range quits {
		if term.HandleEvent(ev) {
			t.Errorf("expected %v to quit", ev.Name())
		}
	}
}

func TestTerminal_DrawsBoxes(t *testing.T) {
	term, _, screen := newTestTerminal(t)

	term.Draw()

	cells, width, _ := screen.GetContents()
	at := func(x, y int) tcell.SimCell { return cells[y*width+x] }

	// the box starts at cell (12, 6) with its label in the top-left corner
	if runes := at(12, 6).Runes; len(runes) == 0 || runes[0] != 'A' {
		t.Errorf("expected label at (12, 6), got %q", string(runes))
	}
	_, bg, _ := at(13, 7).Style.Decompose()
	if bg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("expected red background inside the box, got %v", bg)
	}
	_, bg, _ = at(30, 7).Style.Decompose()
	if bg == tcell.NewRGBColor(255, 0, 0) {
		t.Error("background leaked outside the box")
	}
}

func TestTerminal_RunStops(t *testing.T) {
	term, _, screen := newTestTerminal(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- term.Run(ctx, 60) }()

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on q")
	}
}
