// Package render hosts a page on screen: it draws the boxes where the follow
// engine moved them and turns input into pointer and scroll events.
package render

import (
	"sync"

	"follow/internal/debug"
	"follow/internal/follow"
	"follow/internal/page"
)

// scrollStep is how far one wheel notch scrolls, in document pixels.
const scrollStep = 40

// stage is the state both hosts share: the page, the engine currently running
// on it and the debug overlay.
type stage struct {
	mu          sync.Mutex
	doc         *page.Document
	engine      *follow.Engine
	overlay     *debug.Overlay
	showOverlay bool
}

func (s *stage) SetEngine(engine *follow.Engine) {
	s.mu.Lock()
	s.engine = engine
	s.mu.Unlock()
}

func (s *stage) Engine() *follow.Engine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine
}

func (s *stage) SetOverlay(overlay *debug.Overlay) {
	s.mu.Lock()
	s.overlay = overlay
	s.showOverlay = overlay != nil
	s.mu.Unlock()
}

func (s *stage) snapshot() (debug.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.overlay == nil || !s.showOverlay {
		return debug.Snapshot{}, false
	}
	return s.overlay.Snapshot(), true
}

func (s *stage) toggleOverlay() {
	s.mu.Lock()
	s.showOverlay = !s.showOverlay
	s.mu.Unlock()
}

func (s *stage) refresh() {
	s.mu.Lock()
	engine, overlay := s.engine, s.overlay
	s.mu.Unlock()

	if engine == nil {
		return
	}
	if overlay != nil {
		overlay.ClearOutlines()
	}
	engine.Refresh()
}

// displayed is where a box is drawn: its layout moved by its transform and by
// the scroll offset.
func (s *stage) displayed(box *page.Box) follow.Rect {
	r := box.Bounds()
	offset := box.Offset()
	r.X += offset.X
	r.Y += offset.Y
	return r
}
