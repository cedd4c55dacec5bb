// Package object holds the entity records of the shooter: the player ship,
// bullets, falling hazards, and explosions. Entities are plain data plus the
// per-tick rules that move them; drawing lives in the frontends.
package object

import (
	"math"

	"github.com/alessiosferro/space-shooter-v1/internal/physics"
)

// ID identifies an entity for the lifetime of a game.
type ID uint64

// Playfield is the logical play area in game units.
type Playfield struct {
	Width  float64
	Height float64
}

// Bounds is a closed range of allowed top-left positions.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// PlayerBounds returns the region a player of the given size may occupy.
// The top band of one ship height and the bottom band of bottomMargin plus
// one ship height are off limits.
func (f Playfield) PlayerBounds(size, bottomMargin float64) Bounds {
	return Bounds{
		MinX: 0,
		MaxX: f.Width - size,
		MinY: size,
		MaxY: f.Height - size - bottomMargin,
	}
}

// ScrollBackground advances the background offset by v, keeping it inside
// one playfield height.
func (f Playfield) ScrollBackground(y, v float64) float64 {
	if f.Height > 0 {
		y = math.Mod(y, f.Height)
	}
	return y + v
}

// BoundaryPolicy selects how the player reacts to the edge of its bounds.
type BoundaryPolicy int

const (
	// FreezeAtBoundary drops a move on an axis that would leave the bounds.
	FreezeAtBoundary BoundaryPolicy = iota
	// WrapHorizontal teleports the player to the opposite horizontal edge.
	// Vertical movement still freezes.
	WrapHorizontal
)

func (p BoundaryPolicy) String() string {
	switch p {
	case FreezeAtBoundary:
		return "freeze"
	case WrapHorizontal:
		return "wrap"
	default:
		return "unknown"
	}
}

// ParseBoundaryPolicy maps a policy name to its value.
func ParseBoundaryPolicy(s string) (BoundaryPolicy, bool) {
	switch s {
	case "freeze":
		return FreezeAtBoundary, true
	case "wrap":
		return WrapHorizontal, true
	}
	return FreezeAtBoundary, false
}

// Box returns a square box of the given size at (x, y).
func Box(x, y, size float64) physics.Rect {
	return physics.Rect{X: x, Y: y, W: size, H: size}
}

// ShouldRenderBlink reports whether an entity with remaining protection
// ticks is visible this frame. Entities without protection always render.
func ShouldRenderBlink(remainingTicks, period int) bool {
	if remainingTicks <= 0 || period <= 0 {
		return true
	}
	return (remainingTicks/period)%2 != 0
}
