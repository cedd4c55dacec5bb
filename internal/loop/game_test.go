package loop

import (
	"math/rand"
	"testing"
	"time"

	"github.com/alessiosferro/space-shooter-v1/internal/audio"
	"github.com/alessiosferro/space-shooter-v1/internal/input"
	"github.com/alessiosferro/space-shooter-v1/internal/loop/config"
	"github.com/alessiosferro/space-shooter-v1/internal/object"
)

var t0 = time.Unix(1000, 0)

// recorder counts played effects.
type recorder struct {
	played map[audio.Effect]int
}

func (r *recorder) Play(e audio.Effect) {
	if r.played == nil {
		r.played = make(map[audio.Effect]int)
	}
	r.played[e]++
}

func newTestGame(t *testing.T, mutate func(*config.Rules)) (*Game, *recorder) {
	t.Helper()
	return newTestGameAt(t, t0, mutate)
}

// newTestGameAt starts a game at the given time. Tests that drive a Runner
// must start at the wall clock, since its frames are stamped with time.Now.
func newTestGameAt(t *testing.T, start time.Time, mutate func(*config.Rules)) (*Game, *recorder) {
	t.Helper()
	rules := config.Classic()
	if mutate != nil {
		mutate(&rules)
	}
	rec := &recorder{}
	g := NewGame(Options{Rules: rules, Rand: rand.New(rand.NewSource(1)), Sound: rec}, start)
	t.Cleanup(g.Close)
	return g, rec
}

func addHazard(g *Game, kind object.HazardKind, x, y, size float64) *object.Hazard {
	h := &object.Hazard{ID: g.newID(), Kind: kind, X: x, Y: y, Size: size}
	g.hazards = append(g.hazards, h)
	return h
}

func addBullet(g *Game, x, y float64) *object.Bullet {
	b := object.NewBullet(g.newID(), x, y, g.rules.BulletSpeed, g.rules.BulletSize)
	g.bullets = append(g.bullets, b)
	return b
}

func TestNewGameInitialState(t *testing.T) {
	g, _ := newTestGame(t, nil)
	s := g.Snapshot()

	if s.Player.X != 150 || s.Player.Y != 400 || s.Player.HP != 5 || s.Player.Status != object.StatusIdle {
		t.Errorf("player = %+v", s.Player)
	}
	if len(s.Bullets) != 0 || len(s.Hazards) != 0 || len(s.Explosions) != 0 {
		t.Errorf("stores should start empty: %+v", s)
	}
	if s.Score != 0 || s.GameOver {
		t.Errorf("score=%d gameOver=%v", s.Score, s.GameOver)
	}
}

func TestTickWithEmptyStores(t *testing.T) {
	g, _ := newTestGame(t, nil)
	for i := 0; i < 100; i++ {
		g.Tick()
	}
	s := g.Snapshot()
	if s.Tick != 100 {
		t.Errorf("tick = %d", s.Tick)
	}
	if s.BackgroundY <= 0 {
		t.Errorf("background should scroll, got %v", s.BackgroundY)
	}
}

func TestPlayerStaysInBounds(t *testing.T) {
	for _, policy := range []object.BoundaryPolicy{object.FreezeAtBoundary, object.WrapHorizontal} {
		t.Run(policy.String(), func(t *testing.T) {
			g, _ := newTestGame(t, func(r *config.Rules) { r.Boundary = policy })
			b := g.rules.PlayerBounds()
			r := rand.New(rand.NewSource(3))
			moves := []input.Intent{
				input.IntentMoveLeft, input.IntentMoveRight, input.IntentMoveUp,
				input.IntentMoveDown, input.IntentStopHorizontal, input.IntentStopVertical,
			}

			for i := 0; i < 5000; i++ {
				if i%37 == 0 {
					g.Apply(moves[r.Intn(len(moves))], t0)
				}
				g.Tick()
				p := g.Player()
				if p.X < b.MinX || p.X > b.MaxX || p.Y < b.MinY || p.Y > b.MaxY {
					t.Fatalf("tick %d: player at (%v,%v) outside %+v", i, p.X, p.Y, b)
				}
			}
		})
	}
}

func TestOneBulletHitPerTick(t *testing.T) {
	g, rec := newTestGame(t, nil)
	for i := 0; i < 3; i++ {
		x := float64(i * 100)
		addHazard(g, object.Meteor, x, 100, 30)
		addBullet(g, x+5, 105)
	}
	first := g.hazards[0]

	g.Tick()

	if len(g.bullets) != 2 || len(g.hazards) != 2 {
		t.Fatalf("after one tick: %d bullets, %d hazards; want 2 and 2", len(g.bullets), len(g.hazards))
	}
	for _, h := range g.hazards {
		if h == first {
			t.Error("the first pair in store order should be the one resolved")
		}
	}
	if len(g.explosions) != 1 || g.explosions[0].Kind != object.ExplosionHazard {
		t.Errorf("explosions = %+v", g.explosions)
	}
	if g.score != 30 {
		t.Errorf("score = %d, want 30", g.score)
	}
	if rec.played[audio.EffectExplosion] != 1 {
		t.Errorf("explosion sounds = %d", rec.played[audio.EffectExplosion])
	}

	g.Tick()
	g.Tick()
	if len(g.bullets) != 0 || len(g.hazards) != 0 {
		t.Errorf("remaining pairs should resolve one per tick, left %d bullets %d hazards", len(g.bullets), len(g.hazards))
	}
}

func TestScoreRoundsHazardSize(t *testing.T) {
	g, _ := newTestGame(t, nil)
	addHazard(g, object.Meteor, 0, 100, 37.4)
	addBullet(g, 5, 105)
	g.Tick()
	addHazard(g, object.Meteor, 100, 100, 20.5)
	addBullet(g, 105, 105)
	g.Tick()

	if g.Score() != 37+21 {
		t.Errorf("score = %d, want %d", g.Score(), 37+21)
	}
}

func TestHitboxInset(t *testing.T) {
	g, _ := newTestGame(t, func(r *config.Rules) { r.HitboxInset = 0.4 })
	addHazard(g, object.Meteor, 0, 100, 50)
	// Touches the full box but not the inset one, which starts at x=10.
	addBullet(g, -6, 100)
	g.Tick()
	if len(g.hazards) != 1 {
		t.Error("bullet outside the inset box should miss")
	}
}

func TestInvulnerabilityGating(t *testing.T) {
	g, _ := newTestGame(t, nil)
	g.player.InvulnerableTicks = 5
	addHazard(g, object.Asteroid, 160, 410, 30)

	for i := 1; i <= 5; i++ {
		g.Tick()
		if g.player.Dead() {
			t.Fatalf("player destroyed on shielded tick %d", i)
		}
	}
	g.Tick()
	if !g.player.Dead() {
		t.Fatal("player should be destroyed on tick 6")
	}
	if len(g.hazards) != 0 {
		t.Error("the colliding hazard should be consumed")
	}
	if len(g.explosions) != 1 || g.explosions[0].Kind != object.ExplosionPlayer {
		t.Errorf("explosions = %+v", g.explosions)
	}
}

func TestMeteorDestroysPlayer(t *testing.T) {
	g, rec := newTestGame(t, nil)
	if g.rules.IntervalKind != object.Meteor {
		t.Fatalf("classic spawns %v, want meteors", g.rules.IntervalKind)
	}
	addHazard(g, object.Meteor, 160, 410, 30)
	g.Tick()
	if !g.player.Dead() {
		t.Fatal("a meteor on the ship should destroy it")
	}
	if len(g.explosions) != 1 || g.explosions[0].Kind != object.ExplosionPlayer {
		t.Errorf("explosions = %+v", g.explosions)
	}
	if rec.played[audio.EffectExplosion] != 1 {
		t.Errorf("explosion sounds = %d, want 1", rec.played[audio.EffectExplosion])
	}

	g.sched.Advance(t0.Add(g.rules.RespawnDelay))
	if g.player.Dead() || g.player.HP != 4 {
		t.Errorf("after respawn player = %+v, want alive with 4 hp", g.player)
	}
}

func TestClassicMeteorsEndTheGame(t *testing.T) {
	g, _ := newTestGame(t, nil)
	now := t0
	for i := 0; i < 5; i++ {
		g.player.InvulnerableTicks = 0
		addHazard(g, object.Meteor, 160, 410, 30)
		g.Tick()
		if !g.player.Dead() {
			t.Fatalf("crash %d did not destroy the ship", i+1)
		}
		now = now.Add(g.rules.RespawnDelay)
		g.sched.Advance(now)
	}
	if !g.GameOver() {
		t.Errorf("game should be over after five meteor crashes, hp = %d", g.player.HP)
	}
}

func TestDualExplosion(t *testing.T) {
	g, _ := newTestGame(t, func(r *config.Rules) { r.DualExplosion = true })
	addHazard(g, object.Enemy, 160, 410, 40)
	g.Tick()
	if len(g.explosions) != 2 {
		t.Fatalf("explosions = %d, want 2", len(g.explosions))
	}
	if g.explosions[0].Kind != object.ExplosionPlayer || g.explosions[1].Kind != object.ExplosionHazard {
		t.Errorf("kinds = %v, %v", g.explosions[0].Kind, g.explosions[1].Kind)
	}
}

func TestExplosionLifetime(t *testing.T) {
	g, _ := newTestGame(t, nil)
	addHazard(g, object.Meteor, 0, 100, 30)
	addBullet(g, 5, 105)

	g.Tick() // tick T: the hit happens
	for k := 1; k <= 29; k++ {
		g.Tick()
		if len(g.explosions) != 1 {
			t.Fatalf("T+%d: explosion missing", k)
		}
		if want := k / 10; g.explosions[0].Frame != want {
			t.Errorf("T+%d: frame = %d, want %d", k, g.explosions[0].Frame, want)
		}
	}
	g.Tick()
	if len(g.explosions) != 0 {
		t.Error("T+30: explosion should be gone")
	}
}

func TestBulletsLeaveThroughTop(t *testing.T) {
	g, _ := newTestGame(t, nil)
	addBullet(g, 10, 0)

	g.Tick()
	if len(g.bullets) != 1 || g.bullets[0].Y != -5 {
		t.Fatalf("bullet at y=0 should survive and move, got %+v", g.bullets)
	}
	g.Tick()
	if len(g.bullets) != 0 {
		t.Error("bullet above the top edge should be dropped")
	}
}

func TestHazardsLeaveThroughBottom(t *testing.T) {
	g, _ := newTestGame(t, nil)
	h := addHazard(g, object.Meteor, 10, 599, 20)
	h.VY = 2
	g.Tick()
	if len(g.hazards) != 1 {
		t.Fatal("hazard inside the playfield should survive this tick")
	}
	g.Tick()
	if len(g.hazards) != 0 {
		t.Error("hazard past the bottom edge should be dropped")
	}
}

func TestRespawnAfterDelay(t *testing.T) {
	g, _ := newTestGame(t, nil)
	g.Apply(input.IntentMoveLeft, t0)
	addHazard(g, object.Asteroid, 160, 410, 30)
	g.Tick()
	if !g.player.Dead() {
		t.Fatal("player should be destroyed")
	}

	g.Apply(input.IntentMoveRight, t0.Add(10*time.Millisecond))
	if g.player.SpeedX != 0 {
		t.Error("a dead player ignores movement")
	}

	g.sched.Advance(t0.Add(999 * time.Millisecond))
	if !g.player.Dead() {
		t.Fatal("respawned before the delay")
	}
	g.sched.Advance(t0.Add(1000 * time.Millisecond))

	p := g.player
	if p.Dead() || p.HP != 4 || p.X != 150 || p.Y != 400 || p.SpeedX != 0 {
		t.Errorf("respawned player = %+v", p)
	}
	if p.InvulnerableTicks != g.rules.InvulnerabilityTicks {
		t.Errorf("shield = %d, want %d", p.InvulnerableTicks, g.rules.InvulnerabilityTicks)
	}
}

func TestGameOverFreezesState(t *testing.T) {
	g, _ := newTestGame(t, func(r *config.Rules) { r.Player.HP = 1 })
	addHazard(g, object.Asteroid, 160, 410, 30)
	g.Tick()

	g.Frame(t0.Add(1001 * time.Millisecond))
	if !g.GameOver() {
		t.Fatal("game should be over after the last hit point")
	}
	before := g.Snapshot()

	g.Apply(input.IntentFire, t0.Add(1100*time.Millisecond))
	g.Apply(input.IntentMoveUp, t0.Add(1100*time.Millisecond))
	for ms := 1200; ms <= 10000; ms += 16 {
		if g.Frame(t0.Add(time.Duration(ms) * time.Millisecond)) {
			t.Fatalf("frame at +%dms ticked after game over", ms)
		}
	}
	after := g.Snapshot()

	if after.Tick != before.Tick || len(after.Hazards) != len(before.Hazards) ||
		len(after.Bullets) != len(before.Bullets) || len(after.Explosions) != len(before.Explosions) ||
		after.Player != before.Player || after.Score != before.Score {
		t.Errorf("state changed after game over:\nbefore %+v\nafter  %+v", before, after)
	}
	if g.sched.Pending() != 0 {
		t.Errorf("%d timers still pending after game over", g.sched.Pending())
	}
}

func TestFireDebounce(t *testing.T) {
	g, rec := newTestGame(t, nil)

	g.Apply(input.IntentFire, t0)
	g.Apply(input.IntentFire, t0.Add(50*time.Millisecond))

	g.Frame(t0.Add(149 * time.Millisecond))
	if len(g.bullets) != 0 {
		t.Fatal("no bullet before the debounce window closes")
	}
	g.Frame(t0.Add(150 * time.Millisecond))
	g.Frame(t0.Add(400 * time.Millisecond))
	if len(g.bullets) != 1 {
		t.Fatalf("bullets = %d, want exactly 1", len(g.bullets))
	}
	if rec.played[audio.EffectLaser] != 1 {
		t.Errorf("laser sounds = %d, want 1", rec.played[audio.EffectLaser])
	}
}

func TestBulletSpawnsAtShipNose(t *testing.T) {
	g, _ := newTestGame(t, nil)
	g.Apply(input.IntentFire, t0)
	g.sched.Advance(t0.Add(100 * time.Millisecond))
	if len(g.bullets) != 1 {
		t.Fatal("bullet not spawned")
	}
	b := g.bullets[0]
	if b.X != 170 || b.Y != 400 || b.VY != -5 || b.Size != 8 {
		t.Errorf("bullet = %+v", b)
	}
}

func TestDeathCancelsPendingShot(t *testing.T) {
	g, _ := newTestGame(t, nil)
	g.Apply(input.IntentFire, t0)
	addHazard(g, object.Asteroid, 160, 410, 30)
	g.Tick()
	g.sched.Advance(t0.Add(200 * time.Millisecond))
	if len(g.bullets) != 0 {
		t.Error("a shot requested before death should not fire")
	}
}

func TestResetIgnoresStaleTimers(t *testing.T) {
	g, _ := newTestGame(t, nil)
	addHazard(g, object.Asteroid, 160, 410, 30)
	g.Tick()
	g.Apply(input.IntentFire, t0)

	g.Reset(t0.Add(500 * time.Millisecond))
	g.Frame(t0.Add(2 * time.Second))

	p := g.player
	if p.Dead() || p.HP != 5 || p.InvulnerableTicks != 0 {
		t.Errorf("stale respawn touched the new run: %+v", p)
	}
	if len(g.bullets) != 0 {
		t.Error("stale shot fired after reset")
	}
	if g.GameOver() || g.Score() != 0 {
		t.Error("reset should clear game over and score")
	}
}

func TestConfirmOnlyRestartsWhenOver(t *testing.T) {
	g, _ := newTestGame(t, func(r *config.Rules) { r.Player.HP = 1 })
	g.score = 99

	g.Apply(input.IntentConfirm, t0)
	if g.Score() != 99 {
		t.Fatal("confirm during play should be ignored")
	}

	addHazard(g, object.Asteroid, 160, 410, 30)
	g.Tick()
	g.Frame(t0.Add(2 * time.Second))
	if !g.GameOver() {
		t.Fatal("expected game over")
	}
	g.Apply(input.IntentConfirm, t0.Add(3*time.Second))
	if g.GameOver() || g.Score() != 0 {
		t.Error("confirm after game over should start a new run")
	}
	if !g.Frame(t0.Add(3*time.Second + 20*time.Millisecond)) {
		t.Error("new run should tick again")
	}
}

func TestIntervalSpawnFollowsVisibility(t *testing.T) {
	g, _ := newTestGame(t, nil)

	g.Frame(t0.Add(799 * time.Millisecond))
	if len(g.hazards) != 0 {
		t.Fatal("spawned before the first interval")
	}
	g.Frame(t0.Add(800 * time.Millisecond))
	if len(g.hazards) != 1 {
		t.Fatalf("hazards = %d, want 1", len(g.hazards))
	}
	if h := g.hazards[0]; h.Kind != object.Meteor || h.Y >= 0 {
		t.Errorf("spawned hazard = %+v", h)
	}

	g.Apply(input.IntentHidden, t0.Add(900*time.Millisecond))
	g.Frame(t0.Add(5 * time.Second))
	if len(g.hazards) != 1 {
		t.Fatalf("spawned while hidden: %d", len(g.hazards))
	}

	g.Apply(input.IntentVisible, t0.Add(5*time.Second))
	g.Frame(t0.Add(5*time.Second + 799*time.Millisecond))
	if len(g.hazards) != 1 {
		t.Fatalf("spawned too early after becoming visible: %d", len(g.hazards))
	}
	g.Frame(t0.Add(5*time.Second + 800*time.Millisecond))
	if len(g.hazards) != 2 {
		t.Errorf("hazards = %d, want 2", len(g.hazards))
	}
}

func TestPhasedSpawning(t *testing.T) {
	g, _ := newTestGame(t, func(r *config.Rules) {
		*r = config.Arcade()
		r.Phases = []object.Phase{
			{Kind: object.Enemy, Duration: 10, Every: 5},
			{Kind: object.Asteroid, Duration: 4, Every: 2},
		}
	})

	g.Frame(t0.Add(10 * time.Second))
	if len(g.hazards) != 0 {
		t.Fatal("phased rules should not spawn on a timer")
	}

	var kinds []object.HazardKind
	seen := map[object.ID]bool{}
	for i := 0; i < 14; i++ {
		g.Tick()
		for _, h := range g.hazards {
			if !seen[h.ID] {
				seen[h.ID] = true
				kinds = append(kinds, h.Kind)
			}
		}
	}
	want := []object.HazardKind{object.Enemy, object.Enemy, object.Asteroid, object.Asteroid}
	if len(kinds) != len(want) {
		t.Fatalf("spawned %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("spawn %d = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestCloseStopsEverything(t *testing.T) {
	g, _ := newTestGame(t, nil)
	g.Apply(input.IntentFire, t0)
	g.Close()

	if g.sched.Pending() != 0 {
		t.Errorf("pending timers after close: %d", g.sched.Pending())
	}
	if g.Frame(t0.Add(time.Second)) {
		t.Error("closed game ticked")
	}
	g.Apply(input.IntentFire, t0.Add(2*time.Second))
	if g.sched.Pending() != 0 {
		t.Error("closed game accepted a timer")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	g, _ := newTestGame(t, nil)
	addBullet(g, 10, 10)
	s := g.Snapshot()
	s.Bullets[0].Y = 999
	s.Player.X = 0
	if g.bullets[0].Y == 999 || g.player.X == 0 {
		t.Error("snapshot shares state with the game")
	}
}

func TestSnapshotCopiesHazardVertices(t *testing.T) {
	g, _ := newTestGame(t, nil)
	h := addHazard(g, object.Meteor, 0, 100, 30)
	h.Vertices = []float64{1, 2, 3, 4, 5, 6, 7, 8}

	var s Snapshot
	g.SnapshotInto(&s)
	s.Hazards[0].Vertices[0] = 99
	if h.Vertices[0] != 1 {
		t.Fatal("snapshot shares hazard vertices with the game")
	}

	// A second snapshot into the same value must not write through to the
	// vertices of a hazard that has since been replaced.
	g.hazards = nil
	other := addHazard(g, object.Asteroid, 0, 100, 30)
	other.Vertices = []float64{9, 9, 9, 9, 9, 9, 9, 9}
	g.SnapshotInto(&s)
	if h.Vertices[0] != 1 {
		t.Errorf("reused snapshot wrote into old hazard: %v", h.Vertices)
	}
	if got := s.Hazards[0].Vertices; len(got) != 8 || got[0] != 9 {
		t.Errorf("snapshot vertices = %v", got)
	}
	s.Hazards[0].Vertices[1] = 0
	if other.Vertices[1] != 9 {
		t.Error("reused snapshot shares vertices with the game")
	}
}
