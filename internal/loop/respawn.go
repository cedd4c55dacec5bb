package loop

import (
	"github.com/alessiosferro/space-shooter-v1/internal/audio"
	"github.com/alessiosferro/space-shooter-v1/internal/object"
)

// destroyPlayer handles a crash into hazard i: the hazard is consumed, the
// ship explodes and a respawn is scheduled.
func (g *Game) destroyPlayer(i int) {
	h := g.hazards[i]
	g.hazards = removeAt(g.hazards, i)

	p := g.player
	g.addExplosion(object.ExplosionPlayer, p.X, p.Y, p.Size)
	if g.rules.DualExplosion {
		g.addExplosion(object.ExplosionHazard, h.X, h.Y, h.Size)
	}
	p.Kill()
	g.sched.Cancel(g.fireTimer)
	g.fireTimer = 0
	g.sound.Play(audio.EffectExplosion)

	g.logger.Debug("player destroyed", "hazard", h.Kind, "hp", p.HP, "tick", g.tick)

	gen := g.generation
	g.sched.Cancel(g.respawnTimer)
	g.respawnTimer = g.sched.After(g.rules.RespawnDelay, func() {
		g.respawnTimer = 0
		g.respawn(gen)
	})
}

// respawn spends a hit point. With none left the game ends; otherwise a
// fresh ship appears at the start position behind a temporary shield.
func (g *Game) respawn(gen uint64) {
	if gen != g.generation || g.closed || g.gameOver {
		return
	}

	hp := max(g.player.HP-1, 0)
	if hp == 0 {
		g.player.HP = 0
		g.endGame()
		return
	}

	g.player = object.NewPlayer(g.rules.Player)
	g.player.HP = hp
	g.player.InvulnerableTicks = g.rules.InvulnerabilityTicks
	g.logger.Debug("player respawned", "hp", hp)
}

// endGame freezes the simulation. Frames keep coming but no longer tick,
// and no timer can add entities.
func (g *Game) endGame() {
	g.gameOver = true
	g.sched.Cancel(g.spawnTimer)
	g.sched.Cancel(g.fireTimer)
	g.spawnTimer, g.fireTimer = 0, 0
	g.logger.Info("game over", "score", g.score, "ticks", g.tick)
}
