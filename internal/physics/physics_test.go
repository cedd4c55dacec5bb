package physics

import "testing"

func TestOverlaps(t *testing.T) {
	base := Rect{X: 10, Y: 10, W: 20, H: 20}

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"inside", Rect{X: 15, Y: 15, W: 2, H: 2}, true},
		{"partial", Rect{X: 25, Y: 25, W: 20, H: 20}, true},
		{"touching edge", Rect{X: 30, Y: 10, W: 5, H: 5}, true},
		{"left of", Rect{X: 0, Y: 10, W: 9, H: 5}, false},
		{"below", Rect{X: 10, Y: 31, W: 5, H: 5}, false},
		{"diagonal miss", Rect{X: 31, Y: 31, W: 5, H: 5}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(base, tc.other); got != tc.want {
				t.Errorf("Overlaps = %v, want %v", got, tc.want)
			}
			if got := Overlaps(tc.other, base); got != tc.want {
				t.Errorf("Overlaps (swapped) = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestInset(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 100, H: 50}.Inset(0.3)
	if r.X != 15 || r.Y != 7.5 || r.W != 70 || r.H != 35 {
		t.Errorf("Inset(0.3) = %+v", r)
	}

	cx, cy := r.Center()
	if cx != 50 || cy != 25 {
		t.Errorf("inset box should keep its center, got (%v,%v)", cx, cy)
	}

	if got := (Rect{W: 10, H: 10}).Inset(0); got != (Rect{W: 10, H: 10}) {
		t.Errorf("Inset(0) changed the box: %+v", got)
	}

	full := Rect{X: 0, Y: 0, W: 10, H: 10}.Inset(5)
	if full.W != 0 || full.H != 0 || full.X != 5 || full.Y != 5 {
		t.Errorf("Inset beyond 1 should collapse to the center, got %+v", full)
	}
}
