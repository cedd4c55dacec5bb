package loop

import (
	"math"

	"github.com/alessiosferro/space-shooter-v1/internal/audio"
	"github.com/alessiosferro/space-shooter-v1/internal/object"
	"github.com/alessiosferro/space-shooter-v1/internal/physics"
)

// findBulletHit returns the first overlapping bullet and hazard in store
// order, or -1s. Scanning stops at the first match, so a tick resolves at
// most one bullet hit however many pairs overlap.
func (g *Game) findBulletHit() (bullet, hazard int) {
	for bi, b := range g.bullets {
		box := b.Box()
		for hi, h := range g.hazards {
			if physics.Overlaps(box, h.HitBox(g.rules.HitboxInset)) {
				return bi, hi
			}
		}
	}
	return -1, -1
}

// findPlayerHit returns the first harmful hazard touching the player, or -1.
func (g *Game) findPlayerHit() int {
	box := g.player.Box()
	for i, h := range g.hazards {
		if !h.ContactDamage() {
			continue
		}
		if physics.Overlaps(box, h.HitBox(g.rules.HitboxInset)) {
			return i
		}
	}
	return -1
}

// destroyHazard removes a bullet and the hazard it hit, scores the hazard
// and leaves an explosion in its place.
func (g *Game) destroyHazard(bi, hi int) {
	h := g.hazards[hi]
	g.bullets = removeAt(g.bullets, bi)
	g.hazards = removeAt(g.hazards, hi)

	g.score += int(math.Round(h.Size))
	g.addExplosion(object.ExplosionHazard, h.X, h.Y, h.Size)
	g.sound.Play(audio.EffectExplosion)
}

// removeAt deletes index i preserving order.
func removeAt[T any](s []*T, i int) []*T {
	copy(s[i:], s[i+1:])
	s[len(s)-1] = nil
	return s[:len(s)-1]
}
