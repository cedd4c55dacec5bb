package loop

import (
	"github.com/alessiosferro/space-shooter-v1/internal/input"
	"github.com/alessiosferro/space-shooter-v1/internal/loop/config"
	"github.com/alessiosferro/space-shooter-v1/internal/object"
)

// Snapshot is a read-only copy of the game state handed to renderers.
// Entities and hazard vertices are copied; mutating them has no effect on
// the game. A Runner reuses one Snapshot's buffers across frames, so a
// Renderer must not keep it past Render.
type Snapshot struct {
	Tick        uint64
	Variant     config.Variant
	Field       object.Playfield
	Player      object.Player
	Bullets     []object.Bullet
	Hazards     []object.Hazard
	Explosions  []object.Explosion
	BackgroundY float64
	Score       int
	GameOver    bool
	Visible     bool
}

// Renderer draws snapshots. Returning ErrQuit ends the run cleanly.
type Renderer interface {
	Render(s Snapshot) error
}

// IntentSource delivers intents from some input device. The callback may
// be invoked from any goroutine until unsubscribe returns.
type IntentSource interface {
	Subscribe(fn func(input.Intent)) (unsubscribe func())
}

// Snapshot returns a fresh copy of the game state.
func (g *Game) Snapshot() Snapshot {
	var s Snapshot
	g.SnapshotInto(&s)
	return s
}

// SnapshotInto copies the game state into s, reusing its slices.
func (g *Game) SnapshotInto(s *Snapshot) {
	s.Tick = g.tick
	s.Variant = g.rules.Variant
	s.Field = g.rules.Field
	s.Player = *g.player
	s.BackgroundY = g.backgroundY
	s.Score = g.score
	s.GameOver = g.gameOver
	s.Visible = g.visible

	s.Bullets = s.Bullets[:0]
	for _, b := range g.bullets {
		s.Bullets = append(s.Bullets, *b)
	}
	s.Hazards = s.Hazards[:0]
	for _, h := range g.hazards {
		// Vertex buffers left in the spare capacity are reused.
		var verts []float64
		if i := len(s.Hazards); i < cap(s.Hazards) {
			verts = s.Hazards[:i+1][i].Vertices[:0]
		}
		hv := *h
		hv.Vertices = append(verts, h.Vertices...)
		s.Hazards = append(s.Hazards, hv)
	}
	s.Explosions = s.Explosions[:0]
	for _, e := range g.explosions {
		s.Explosions = append(s.Explosions, *e)
	}
}
