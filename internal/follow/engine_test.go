package follow

import (
	"strings"
	"testing"
)

func followed(x, y, w, h float64, factor string) *fakeTarget {
	return newTarget(x, y, w, h, map[string]string{"data-follow": factor})
}

func TestDisplacement(t *testing.T) {
	tests := []struct {
		pointer, scroll, baseline Position
		factor                    int
		want                      Position
	}{
		{Position{X: 150, Y: 140}, Position{}, Position{X: 100, Y: 100}, 10, Position{X: 5, Y: 4}},
		{Position{X: 0, Y: 0}, Position{}, Position{X: 100, Y: 100}, 10, Position{X: -10, Y: -10}},
		{Position{X: 10, Y: 10}, Position{X: 0, Y: 300}, Position{X: 0, Y: 10}, 20, Position{X: 1, Y: 15}},
		{Position{X: 15, Y: -15}, Position{}, Position{}, 10, Position{X: 2, Y: -1}},
		{Position{X: 33, Y: 7}, Position{}, Position{}, 3, Position{X: 11, Y: 2}},
	}
	for _, tt := range tests {
		got := Displacement(tt.pointer, tt.scroll, tt.baseline, tt.factor)
		if got != tt.want {
			t.Errorf("Displacement(%v, %v, %v, %d) = %v, want %v", tt.pointer, tt.scroll, tt.baseline, tt.factor, got, tt.want)
		}
	}
}

func TestEngine_EndToEnd(t *testing.T) {
	target := followed(90, 90, 20, 20, "")
	doc := &fakeDocument{targets: []*fakeTarget{target}}

	engine := New(doc, nil)
	if len(engine.Elements()) != 1 {
		t.Fatalf("expected 1 element, got %d", len(engine.Elements()))
	}
	if engine.Elements()[0].Baseline() != (Position{X: 100, Y: 100}) {
		t.Fatalf("unexpected baseline %v", engine.Elements()[0].Baseline())
	}

	doc.move(150, 140)

	if !strings.Contains(target.transform, "translate(5px, 4px)") {
		t.Errorf("expected translate(5px, 4px) in %q", target.transform)
	}
	if engine.Pointer() != (Position{X: 150, Y: 140}) {
		t.Errorf("unexpected pointer %v", engine.Pointer())
	}
}

func TestEngine_ScrollEvent(t *testing.T) {
	target := followed(90, 90, 20, 20, "")
	doc := &fakeDocument{targets: []*fakeTarget{target}}
	engine := New(doc, nil)

	doc.move(100, 100)
	if target.transform != "translate(0.1px, 0.1px)" {
		t.Fatalf("unexpected transform %q", target.transform)
	}

	doc.scrollTo(0, 50)
	if engine.Scroll() != (Position{X: 0, Y: 50}) {
		t.Errorf("unexpected scroll %v", engine.Scroll())
	}
	if target.transform != "translate(0.1px, 5px)" {
		t.Errorf("unexpected transform %q", target.transform)
	}
}

func TestEngine_PerElementFactor(t *testing.T) {
	slow := followed(0, 0, 0, 0, "")
	fast := followed(0, 0, 0, 0, "2")
	doc := &fakeDocument{targets: []*fakeTarget{slow, fast}}
	New(doc, map[string]any{"factor": 20})

	doc.move(100, 40)

	if slow.transform != "translate(5px, 2px)" {
		t.Errorf("unexpected slow transform %q", slow.transform)
	}
	if fast.transform != "translate(50px, 20px)" {
		t.Errorf("unexpected fast transform %q", fast.transform)
	}
}

func TestEngine_CustomAttribute(t *testing.T) {
	marked := newTarget(0, 0, 10, 10, map[string]string{"data-parallax": "5"})
	unmarked := followed(0, 0, 10, 10, "")
	doc := &fakeDocument{targets: []*fakeTarget{marked, unmarked}}

	engine := New(doc, map[string]any{"attribute": "data-parallax"})
	if len(engine.Elements()) != 1 || engine.Elements()[0].Factor() != 5 {
		t.Fatalf("expected the data-parallax element only, got %d", len(engine.Elements()))
	}
}

func TestEngine_NoAutoStart(t *testing.T) {
	doc := &fakeDocument{targets: []*fakeTarget{followed(0, 0, 10, 10, "")}}

	engine := New(doc, map[string]any{"initiate": false})
	if len(engine.Elements()) != 0 || doc.count(PointerMove) != 0 {
		t.Fatalf("engine started without AutoStart")
	}

	engine.Initiate()
	if len(engine.Elements()) != 1 {
		t.Errorf("expected 1 element after Initiate, got %d", len(engine.Elements()))
	}
}

func TestEngine_EmptyDocument(t *testing.T) {
	doc := &fakeDocument{}
	engine := New(doc, nil)

	doc.move(10, 10)
	if len(engine.Elements()) != 0 {
		t.Errorf("expected no elements, got %d", len(engine.Elements()))
	}
}

func TestEngine_OneListenerPairAcrossRefreshes(t *testing.T) {
	doc := &fakeDocument{targets: []*fakeTarget{followed(0, 0, 10, 10, "")}}
	engine := New(doc, nil)

	engine.Initiate()
	engine.Refresh()
	engine.Refresh()

	if doc.count(PointerMove) != 1 || doc.count(Scroll) != 1 {
		t.Errorf("expected one listener pair, got %d pointer and %d scroll",
			doc.count(PointerMove), doc.count(Scroll))
	}

	engine.Destroy()
	if doc.count(PointerMove) != 0 || doc.count(Scroll) != 0 {
		t.Errorf("listeners left after Destroy")
	}
	if len(engine.Elements()) != 0 {
		t.Errorf("elements left after Destroy")
	}
}

func TestEngine_InitiateTwiceTracksOnce(t *testing.T) {
	target := followed(0, 0, 10, 10, "")
	doc := &fakeDocument{targets: []*fakeTarget{target}}
	engine := New(doc, nil)

	doc.move(100, 100)
	engine.Initiate()
	doc.move(50, 50)

	if n := len(engine.Elements()); n != 1 {
		t.Errorf("expected 1 element, got %d", n)
	}
	if target.transform != "translate(5px, 5px)" {
		t.Errorf("unexpected transform %q", target.transform)
	}
}

func TestEngine_RefreshRediscovers(t *testing.T) {
	first := followed(0, 0, 10, 10, "")
	doc := &fakeDocument{targets: []*fakeTarget{first}}
	engine := New(doc, nil)

	first.bounds.X = 200
	doc.targets = append(doc.targets, followed(50, 50, 10, 10, ""), newTarget(0, 0, 1, 1, nil))

	engine.Refresh()

	elements := engine.Elements()
	if len(elements) != len(doc.Query(DefaultAttribute)) {
		t.Fatalf("expected %d elements, got %d", len(doc.Query(DefaultAttribute)), len(elements))
	}
	if elements[0].Baseline().X != 205 {
		t.Errorf("expected fresh baseline 205, got %g", elements[0].Baseline().X)
	}
}

func TestEngine_RefreshKeepsSingleTranslate(t *testing.T) {
	target := followed(0, 0, 10, 10, "")
	target.transform = "rotate(4deg)"
	doc := &fakeDocument{targets: []*fakeTarget{target}}
	engine := New(doc, nil)

	doc.move(100, 100)
	engine.Refresh()
	doc.move(50, 50)

	if n := strings.Count(target.transform, "translate("); n != 1 {
		t.Errorf("expected one translate after refresh, got %d in %q", n, target.transform)
	}
	if !strings.HasPrefix(target.transform, "rotate(4deg) ") {
		t.Errorf("rotate lost: %q", target.transform)
	}
}

func TestEngine_DestroyLeavesTransforms(t *testing.T) {
	target := followed(0, 0, 10, 10, "")
	doc := &fakeDocument{targets: []*fakeTarget{target}}
	engine := New(doc, nil)

	doc.move(100, 100)
	applied := target.transform
	engine.Destroy()

	if target.transform != applied {
		t.Errorf("expected %q to stay, got %q", applied, target.transform)
	}

	doc.move(0, 0)
	if target.transform != applied {
		t.Errorf("destroyed engine still updates: %q", target.transform)
	}
}

func TestEngine_DestroyWithRestore(t *testing.T) {
	target := followed(0, 0, 10, 10, "")
	target.transform = "rotate(5deg)"
	doc := &fakeDocument{targets: []*fakeTarget{target}}
	engine := New(doc, nil, WithRestore())

	doc.move(100, 100)
	engine.Refresh()
	doc.move(40, 40)
	engine.Destroy()

	if target.transform != "rotate(5deg)" {
		t.Errorf("expected original transform, got %q", target.transform)
	}
}

func TestEngine_ObserverOnlyInDebug(t *testing.T) {
	doc := &fakeDocument{targets: []*fakeTarget{followed(0, 0, 10, 10, "")}}
	observer := &recordingObserver{}
	New(doc, nil, WithObserver(observer))

	doc.move(10, 10)
	if observer.outlines != 0 || len(observer.dots) != 0 || len(observer.logs) != 0 {
		t.Errorf("observer called with debug disabled: %+v", observer)
	}
}

func TestEngine_ObserverInDebug(t *testing.T) {
	doc := &fakeDocument{
		root:    Rect{X: 10, Y: 10},
		targets: []*fakeTarget{followed(10, 10, 20, 20, "")},
	}
	observer := &recordingObserver{}
	New(doc, map[string]any{"debug": true}, WithObserver(observer))

	doc.move(60, 60)

	if observer.outlines != 1 {
		t.Errorf("expected 1 outline, got %d", observer.outlines)
	}
	if len(observer.dots) != 2 {
		t.Fatalf("expected pointer and element dots, got %d", len(observer.dots))
	}
	if observer.dots[0] != (Position{X: 50, Y: 50}) || observer.colors[0] != MarkerPointer {
		t.Errorf("unexpected pointer dot %v", observer.dots[0])
	}
	// baseline (10, 10), displacement round(50/10) = 5
	if observer.dots[1] != (Position{X: 15, Y: 15}) || observer.colors[1] != MarkerDisplaced {
		t.Errorf("unexpected element dot %v", observer.dots[1])
	}
	if len(observer.logs) == 0 {
		t.Errorf("expected log messages")
	}
}
