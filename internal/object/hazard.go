package object

import (
	"math"
	"math/rand"

	"github.com/alessiosferro/space-shooter-v1/internal/physics"
)

// HazardKind is the category of a falling hazard.
type HazardKind int

const (
	Meteor HazardKind = iota
	Asteroid
	Enemy
)

func (k HazardKind) String() string {
	switch k {
	case Meteor:
		return "meteor"
	case Asteroid:
		return "asteroid"
	case Enemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// ParseHazardKind maps a kind name to its value.
func ParseHazardKind(s string) (HazardKind, bool) {
	switch s {
	case "meteor":
		return Meteor, true
	case "asteroid":
		return Asteroid, true
	case "enemy":
		return Enemy, true
	}
	return Meteor, false
}

// hazardTraits holds the per-kind size range and whether contact hurts the player.
var hazardTraits = map[HazardKind]struct {
	minSize, maxSize float64
	contactDamage    bool
}{
	Meteor:   {minSize: 20, maxSize: 60, contactDamage: true},
	Asteroid: {minSize: 30, maxSize: 70, contactDamage: true},
	Enemy:    {minSize: 40, maxSize: 40, contactDamage: true},
}

// Motion bounds the random velocity a hazard spawns with.
type Motion struct {
	MinSpeedY float64
	MaxSpeedY float64
	MaxDriftX float64
}

// Hazard is anything that falls from the top of the playfield.
type Hazard struct {
	ID     ID
	Kind   HazardKind
	X, Y   float64
	VX, VY float64
	Size   float64

	// Vertices are radius factors for an irregular outline, used by frontends.
	Vertices []float64
}

// NewHazard creates a hazard of the given kind just above the playfield
// with a random size, column, and velocity drawn from r.
func NewHazard(id ID, kind HazardKind, field Playfield, m Motion, r *rand.Rand) *Hazard {
	traits := hazardTraits[kind]

	vy := m.MinSpeedY + r.Float64()*(m.MaxSpeedY-m.MinSpeedY)
	vx := r.Float64() * m.MaxDriftX
	if r.Intn(2) == 1 {
		vx = -vx
	}
	size := math.Round(traits.minSize + r.Float64()*(traits.maxSize-traits.minSize))
	x := math.Round(r.Float64() * math.Max(field.Width-size, 0))

	// Irregular polygon, 8-12 vertices each within 30% of the nominal radius.
	vertices := make([]float64, 8+r.Intn(5))
	for i := range vertices {
		vertices[i] = 0.7 + r.Float64()*0.6
	}

	return &Hazard{
		ID:       id,
		Kind:     kind,
		X:        x,
		Y:        -size,
		VX:       vx,
		VY:       vy,
		Size:     size,
		Vertices: vertices,
	}
}

// ContactDamage reports whether touching this hazard destroys the player.
func (h *Hazard) ContactDamage() bool {
	return hazardTraits[h.Kind].contactDamage
}

// Box returns the hazard's full box.
func (h *Hazard) Box() physics.Rect {
	return Box(h.X, h.Y, h.Size)
}

// HitBox returns the box used for collisions, shrunk by inset.
func (h *Hazard) HitBox(inset float64) physics.Rect {
	return h.Box().Inset(inset)
}

// InPlayfield reports whether the hazard is still worth simulating:
// horizontally within one size of the playfield, vertically from one
// size above the top to the bottom edge.
func (h *Hazard) InPlayfield(f Playfield) bool {
	return h.X > -h.Size && h.X < f.Width+h.Size &&
		h.Y >= -h.Size && h.Y < f.Height
}

// Move applies one tick of motion.
func (h *Hazard) Move() {
	h.X += h.VX
	h.Y += h.VY
}
