package loop

import (
	"github.com/alessiosferro/space-shooter-v1/internal/object"
)

// Tick runs exactly one simulation step. Stages run in a fixed order:
// background, player, bullets, hazards, explosions.
func (g *Game) Tick() {
	if g.closed || g.gameOver {
		return
	}
	g.tick++

	g.backgroundY = g.rules.Field.ScrollBackground(g.backgroundY, g.rules.BackgroundVelocity)
	g.updatePlayer()
	g.updateBullets()
	g.updateHazards()
	g.updateExplosions()
}

// updatePlayer counts down the shield or checks for a crash, then moves.
func (g *Game) updatePlayer() {
	p := g.player
	if p.Dead() {
		return
	}
	if p.InvulnerableTicks > 0 {
		p.InvulnerableTicks--
	} else if i := g.findPlayerHit(); i >= 0 {
		g.destroyPlayer(i)
		return
	}
	p.Move(g.bounds, g.rules.Boundary)
}

// updateBullets resolves at most one hit, then drops bullets past the top
// edge and moves the rest.
func (g *Game) updateBullets() {
	if bi, hi := g.findBulletHit(); bi >= 0 {
		g.destroyHazard(bi, hi)
	}

	kept := g.bullets[:0]
	for _, b := range g.bullets {
		if !b.Visible() {
			continue
		}
		b.Move()
		kept = append(kept, b)
	}
	clearTail(g.bullets, len(kept))
	g.bullets = kept
}

// updateHazards runs the phased spawner, then drops hazards that left the
// playfield and moves the rest.
func (g *Game) updateHazards() {
	if g.phased != nil {
		if kind, ok := g.phased.Tick(); ok {
			g.spawnHazard(kind)
		}
	}

	kept := g.hazards[:0]
	for _, h := range g.hazards {
		if !h.InPlayfield(g.rules.Field) {
			continue
		}
		h.Move()
		kept = append(kept, h)
	}
	clearTail(g.hazards, len(kept))
	g.hazards = kept
}

// updateExplosions advances every explosion and drops finished ones.
func (g *Game) updateExplosions() {
	kept := g.explosions[:0]
	for _, e := range g.explosions {
		if e.Step() {
			kept = append(kept, e)
		}
	}
	clearTail(g.explosions, len(kept))
	g.explosions = kept
}

func (g *Game) addExplosion(kind object.ExplosionKind, x, y, size float64) {
	anim := g.rules.HazardExplosion
	if kind == object.ExplosionPlayer {
		anim = g.rules.PlayerExplosion
	}
	g.explosions = append(g.explosions, object.NewExplosion(g.newID(), kind, x, y, size, anim))
}

// clearTail nils out the entries past n so filtered-out entities can be collected.
func clearTail[T any](s []*T, n int) {
	for i := n; i < len(s); i++ {
		s[i] = nil
	}
}
