package follow

import "testing"

func TestParseTransform_RoundTrip(t *testing.T) {
	tests := []string{
		"",
		"rotate(10deg)",
		"rotate(10deg) scale(1.2, 1.2)",
		"translate(5px, 4px) rotate(calc(1deg * 2))",
	}
	for _, input := range tests {
		if got := ParseTransform(input).String(); got != input {
			t.Errorf("round trip of %q gave %q", input, got)
		}
	}
}

func TestParseTransform_None(t *testing.T) {
	if list := ParseTransform("none"); len(list) != 0 {
		t.Errorf("expected empty list for none, got %v", list)
	}
	if list := ParseTransform("   "); len(list) != 0 {
		t.Errorf("expected empty list for blanks, got %v", list)
	}
}

func TestParseTransform_KeepsUnparseableFragments(t *testing.T) {
	list := ParseTransform("rotate(5deg) garbage scale(2")
	if len(list) != 3 {
		t.Fatalf("expected 3 entries, got %d: %v", len(list), list)
	}
	if list[0].Name != "rotate" || list[0].Args != "5deg" {
		t.Errorf("unexpected first entry %+v", list[0])
	}
	if got := list.String(); got != "rotate(5deg) garbage scale(2" {
		t.Errorf("unexpected serialization %q", got)
	}
}

func TestTranslate_Format(t *testing.T) {
	tests := []struct {
		in   Position
		want string
	}{
		{Position{X: 5, Y: 4}, "translate(5px, 4px)"},
		{Position{X: -3, Y: 0.1}, "translate(-3px, 0.1px)"},
		{Position{X: 12.5, Y: -0.25}, "translate(12.5px, -0.25px)"},
	}
	for _, tt := range tests {
		if got := Translate(tt.in).String(); got != tt.want {
			t.Errorf("Translate(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTransformList_Translation(t *testing.T) {
	list := ParseTransform("rotate(3deg) translate(5px, -4px) translateX(2px) translateY(1px) translate(10%, 2em)")
	got := list.Translation()
	if got.X != 7 || got.Y != -3 {
		t.Errorf("expected (7, -3), got (%g, %g)", got.X, got.Y)
	}
}

func TestTransformList_Index(t *testing.T) {
	list := ParseTransform("scale(2) translate(1px, 2px)")
	if i := list.Index(Translate(Position{X: 1, Y: 2})); i != 1 {
		t.Errorf("expected index 1, got %d", i)
	}
	if i := list.Index(Translate(Position{X: 2, Y: 1})); i != -1 {
		t.Errorf("expected -1, got %d", i)
	}
}

func TestTransformList_LastIndex(t *testing.T) {
	list := ParseTransform("translate(1px, 2px) scale(2) translate(1px, 2px)")
	if i := list.LastIndex(Translate(Position{X: 1, Y: 2})); i != 2 {
		t.Errorf("expected index 2, got %d", i)
	}
	if i := list.LastIndex(Translate(Position{X: 2, Y: 1})); i != -1 {
		t.Errorf("expected -1, got %d", i)
	}
}
