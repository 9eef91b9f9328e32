package physics

import "testing"

func TestOverlaps(t *testing.T) {
	base := Rect{X: 10, Y: 10, W: 10, H: 10}

	cases := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"identical", base, true},
		{"inside", Rect{X: 12, Y: 12, W: 2, H: 2}, true},
		{"partial left", Rect{X: 5, Y: 12, W: 6, H: 2}, true},
		{"touching right edge", Rect{X: 20, Y: 10, W: 5, H: 5}, false},
		{"touching bottom edge", Rect{X: 10, Y: 20, W: 5, H: 5}, false},
		{"far away", Rect{X: 100, Y: 100, W: 5, H: 5}, false},
	}

	for _, tc := range cases {
		if got := Overlaps(base, tc.other); got != tc.want {
			t.Errorf("%s: Overlaps = %v, want %v", tc.name, got, tc.want)
		}
		if got := Overlaps(tc.other, base); got != tc.want {
			t.Errorf("%s (swapped): Overlaps = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-5, 0, 10); got != 0 {
		t.Errorf("Clamp below = %v, want 0", got)
	}
	if got := Clamp(15, 0, 10); got != 10 {
		t.Errorf("Clamp above = %v, want 10", got)
	}
	if got := Clamp(7, 0, 10); got != 7 {
		t.Errorf("Clamp inside = %v, want 7", got)
	}
}

func TestRectCenter(t *testing.T) {
	x, y := Rect{X: 10, Y: 20, W: 40, H: 50}.Center()
	if x != 30 || y != 45 {
		t.Errorf("Center = (%v, %v), want (30, 45)", x, y)
	}
}
