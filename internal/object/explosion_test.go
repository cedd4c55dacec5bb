package object

import "testing"

func TestExplosionLifetime(t *testing.T) {
	e := NewExplosion(1, ExplosionHazard, 0, 0, 30, Animation{Frames: 3, FrameTicks: 10})

	// Step k corresponds to the k-th tick after creation.
	for k := 0; k < 30; k++ {
		if !e.Step() {
			t.Fatalf("explosion removed early at step %d", k)
		}
		if want := k / 10; e.Frame != want {
			t.Errorf("step %d: frame = %d, want %d", k, e.Frame, want)
		}
	}
	if e.Step() {
		t.Error("explosion should be removed after 30 steps")
	}
}

func TestExplosionDegenerateAnimation(t *testing.T) {
	e := NewExplosion(1, ExplosionPlayer, 0, 0, 48, Animation{})
	if !e.Step() || e.Frame != 0 {
		t.Fatalf("first step should show frame 0")
	}
	if e.Step() {
		t.Error("single-tick animation should end on the second step")
	}
}
