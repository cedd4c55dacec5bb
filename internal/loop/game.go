// Package loop runs the shooter simulation: a fixed-rate tick pipeline over
// the entity stores, timers for firing, spawning and respawning, and the
// frame loop that feeds snapshots to a renderer.
package loop

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alessiosferro/space-shooter-v1/internal/audio"
	"github.com/alessiosferro/space-shooter-v1/internal/input"
	"github.com/alessiosferro/space-shooter-v1/internal/loop/config"
	"github.com/alessiosferro/space-shooter-v1/internal/object"
)

// Options configures a Game. Zero fields get defaults: classic rules, a
// clock-seeded random source, no sound and a discarding logger.
type Options struct {
	Rules  config.Rules
	Rand   *rand.Rand
	Sound  audio.Player
	Logger *log.Logger
}

// Game owns all simulation state for one player. It is not safe for
// concurrent use: intents, frames and timers all run on one goroutine.
type Game struct {
	rules  config.Rules
	bounds object.Bounds
	rng    *rand.Rand
	sound  audio.Player
	logger *log.Logger

	sched *Scheduler
	clock *Clock

	player      *object.Player
	bullets     []*object.Bullet
	hazards     []*object.Hazard
	explosions  []*object.Explosion
	backgroundY float64
	score       int
	tick        uint64
	nextID      object.ID

	gameOver bool
	visible  bool
	closed   bool

	// generation changes on every reset so timers armed before it can
	// recognise themselves as stale.
	generation uint64

	phased       *object.PhasedSpawner
	spawnTimer   Token
	fireTimer    Token
	respawnTimer Token
}

// NewGame creates a game that starts running at now.
func NewGame(opts Options, now time.Time) *Game {
	rules := opts.Rules
	if rules.TickRate == 0 {
		rules = config.Classic()
	}
	rules = rules.Normalize()

	rng := opts.Rand
	if rng == nil {
		seed := rules.Seed
		if seed == 0 {
			seed = now.UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	sound := opts.Sound
	if sound == nil {
		sound = audio.Silent{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	g := &Game{
		rules:   rules,
		bounds:  rules.PlayerBounds(),
		rng:     rng,
		sound:   sound,
		logger:  logger,
		sched:   NewScheduler(now),
		clock:   NewClock(rules.TickRate, now),
		visible: true,
	}
	g.start()
	g.logger.Debug("game created", "variant", rules.Variant, "tickRate", rules.TickRate, "spawn", rules.Spawn)
	return g
}

// start puts the game in its initial state and arms the spawner.
func (g *Game) start() {
	g.player = object.NewPlayer(g.rules.Player)
	g.bullets = g.bullets[:0]
	g.hazards = g.hazards[:0]
	g.explosions = g.explosions[:0]
	g.backgroundY = 0
	g.score = 0
	g.tick = 0
	g.gameOver = false
	g.spawnTimer, g.fireTimer, g.respawnTimer = 0, 0, 0

	g.phased = nil
	if g.rules.Spawn == config.SpawnPhased {
		g.phased = object.NewPhasedSpawner(g.rules.Phases, g.rules.LoopPhases)
	}
	g.armSpawnTimer()
}

// Rules returns the ruleset the game runs with.
func (g *Game) Rules() config.Rules {
	return g.rules
}

// Score returns the current score.
func (g *Game) Score() int {
	return g.score
}

// GameOver reports whether the player has run out of hit points.
func (g *Game) GameOver() bool {
	return g.gameOver
}

// Player returns the live player record.
func (g *Game) Player() *object.Player {
	return g.player
}

// Apply consumes one intent observed at now. Timers that fell due before
// now run first.
func (g *Game) Apply(in input.Intent, now time.Time) {
	if g.closed {
		return
	}
	g.sched.Advance(now)

	p := g.player
	switch in {
	case input.IntentMoveLeft:
		p.StartLeft()
	case input.IntentMoveRight:
		p.StartRight()
	case input.IntentMoveUp:
		p.StartUp()
	case input.IntentMoveDown:
		p.StartDown()
	case input.IntentStopHorizontal:
		p.StopHorizontal()
	case input.IntentStopVertical:
		p.StopVertical()
	case input.IntentFire:
		g.fire()
	case input.IntentConfirm:
		if g.gameOver {
			g.Reset(now)
		}
	case input.IntentReset:
		g.Reset(now)
	case input.IntentHidden:
		g.setVisible(false)
	case input.IntentVisible:
		g.setVisible(true)
	}
}

// Frame is the display-refresh callback. It runs due timers and at most
// one tick, and reports whether a tick ran. Once the game is over frames
// keep arriving but never tick.
func (g *Game) Frame(now time.Time) bool {
	if g.closed {
		return false
	}
	g.sched.Advance(now)
	if g.gameOver {
		g.clock.Resync(now)
		return false
	}
	if !g.clock.Due(now) {
		return false
	}
	g.Tick()
	return true
}

// Reset discards the current run and starts a new one at now. Timers armed
// by the previous run are cancelled, and any that still fire are ignored.
func (g *Game) Reset(now time.Time) {
	if g.closed {
		return
	}
	g.sched.CancelAll()
	g.sched.Advance(now)
	g.generation++
	g.start()
	g.clock.Resync(now)
	g.logger.Info("game reset", "generation", g.generation)
}

// Close tears the game down. Pending timers are dropped and later calls
// have no effect.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.sched.CancelAll()
	g.logger.Debug("game closed", "score", g.score, "ticks", g.tick)
}

// fire (re)arms the debounced shot. Only the last request in a burst fires.
func (g *Game) fire() {
	if g.player.Dead() || g.gameOver {
		return
	}
	g.sched.Cancel(g.fireTimer)
	gen := g.generation
	g.fireTimer = g.sched.After(g.rules.FireDelay, func() {
		g.fireTimer = 0
		if gen != g.generation || g.closed || g.gameOver || g.player.Dead() {
			return
		}
		g.spawnBullet()
	})
}

func (g *Game) spawnBullet() {
	p := g.player
	g.bullets = append(g.bullets, object.NewBullet(g.newID(), p.X+g.rules.BulletOffsetX, p.Y, g.rules.BulletSpeed, g.rules.BulletSize))
	g.sound.Play(audio.EffectLaser)
}

// setVisible pauses or resumes interval spawning with the page visibility.
func (g *Game) setVisible(visible bool) {
	if g.visible == visible {
		return
	}
	g.visible = visible
	if visible {
		g.armSpawnTimer()
	} else {
		g.sched.Cancel(g.spawnTimer)
		g.spawnTimer = 0
	}
	g.logger.Debug("visibility changed", "visible", visible)
}

func (g *Game) armSpawnTimer() {
	if g.rules.Spawn != config.SpawnTimed || !g.visible || g.gameOver || g.spawnTimer != 0 {
		return
	}
	gen := g.generation
	g.spawnTimer = g.sched.Every(g.rules.SpawnInterval, func() {
		if gen != g.generation || g.closed || g.gameOver {
			return
		}
		g.spawnHazard(g.rules.IntervalKind)
	})
}

func (g *Game) spawnHazard(kind object.HazardKind) {
	g.hazards = append(g.hazards, object.NewHazard(g.newID(), kind, g.rules.Field, g.rules.Motion, g.rng))
}

func (g *Game) newID() object.ID {
	g.nextID++
	return g.nextID
}
