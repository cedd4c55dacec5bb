package object

// ExplosionKind selects the artwork of an explosion.
type ExplosionKind int

const (
	ExplosionHazard ExplosionKind = iota
	ExplosionPlayer
)

func (k ExplosionKind) String() string {
	if k == ExplosionPlayer {
		return "player"
	}
	return "hazard"
}

// Animation is a frame sequence played at a fixed number of ticks per frame.
type Animation struct {
	Frames     int
	FrameTicks int
}

// Total returns the number of ticks the animation lasts.
func (a Animation) Total() int {
	return a.Frames * a.FrameTicks
}

// Explosion is a short-lived visual effect left by a destroyed entity.
type Explosion struct {
	ID    ID
	Kind  ExplosionKind
	X, Y  float64
	Size  float64
	Anim  Animation
	Ticks int
	Frame int
}

// NewExplosion creates an explosion at its first frame.
func NewExplosion(id ID, kind ExplosionKind, x, y, size float64, anim Animation) *Explosion {
	if anim.Frames < 1 {
		anim.Frames = 1
	}
	if anim.FrameTicks < 1 {
		anim.FrameTicks = 1
	}
	return &Explosion{ID: id, Kind: kind, X: x, Y: y, Size: size, Anim: anim}
}

// Step advances the animation by one tick. It returns false once every
// frame has been shown, at which point the explosion should be dropped.
func (e *Explosion) Step() bool {
	if e.Ticks >= e.Anim.Total() {
		return false
	}
	e.Frame = min(e.Ticks/e.Anim.FrameTicks, e.Anim.Frames-1)
	e.Ticks++
	return true
}
